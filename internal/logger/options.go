// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import "maps"

// Option configures a single CreateLogger call.
type Option func(*options)

type options struct {
	directory    string
	filePrefix   string
	level        string
	format       string
	dateFormat   string
	sinks        []Sink
	colour       bool
	colourCoding map[string]string
}

func defaultOptions() options {
	return options{
		level:      DEBUG.String(),
		format:     DefaultFormat,
		dateFormat: DefaultDateFormat,
		colour:     true,
	}
}

// WithDirectory overrides the directory under the logs root; it defaults to the logger name.
func WithDirectory(directory string) Option {
	return func(o *options) {
		o.directory = directory
	}
}

// WithFilePrefix sets the text placed before the date in the log file name.
func WithFilePrefix(prefix string) Option {
	return func(o *options) {
		o.filePrefix = prefix
	}
}

// WithLevel sets the minimum severity by name, case-insensitively.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithFormat sets the record template. See DefaultFormat for the placeholders.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithDateFormat sets the Go time layout used for the {time} placeholder.
func WithDateFormat(layout string) Option {
	return func(o *options) {
		o.dateFormat = layout
	}
}

// WithSinks replaces the default file and console sinks. Calling it without
// arguments leaves the logger with no sinks at all.
func WithSinks(sinks ...Sink) Option {
	return func(o *options) {
		o.sinks = append(make([]Sink, 0, len(sinks)), sinks...)
	}
}

// WithColour enables or disables colour-coding of console sinks.
func WithColour(enabled bool) Option {
	return func(o *options) {
		o.colour = enabled
	}
}

// WithColourCoding overrides the escape sequence used for each severity name.
func WithColourCoding(coding map[string]string) Option {
	return func(o *options) {
		o.colourCoding = maps.Clone(coding)
	}
}
