// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"maps"
	"strings"
	"time"
)

const (
	// DefaultFormat renders "[time] [component] [LEVEL] message".
	DefaultFormat = "[{time}] [{component}] [{level}] {message}"
	// DefaultDateFormat is the layout used for the {time} placeholder.
	DefaultDateFormat = "2006-01-02 15:04:05,000"

	timePlaceholder      = "{time}"
	componentPlaceholder = "{component}"
	levelPlaceholder     = "{level}"
	messagePlaceholder   = "{message}"
)

// Record is a single log event ready to be rendered.
type Record struct {
	Time      time.Time
	Component string
	Severity  Severity
	Message   string
}

// Formatter renders a Record as one line of text without the trailing newline.
type Formatter interface {
	Format(record Record) string
}

// PlainFormatter renders records with a placeholder template and no escape codes.
type PlainFormatter struct {
	template   string
	dateFormat string
}

// NewPlainFormatter returns a formatter for template. Empty arguments fall
// back to DefaultFormat and DefaultDateFormat.
func NewPlainFormatter(template, dateFormat string) *PlainFormatter {
	if template == "" {
		template = DefaultFormat
	}
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	return &PlainFormatter{template: template, dateFormat: dateFormat}
}

func (f *PlainFormatter) Format(record Record) string {
	return f.render(record, record.Severity.String())
}

// render substitutes placeholders in one pass, so placeholder text inside the
// message is left as written.
func (f *PlainFormatter) render(record Record, level string) string {
	return strings.NewReplacer(
		timePlaceholder, record.Time.Format(f.dateFormat),
		componentPlaceholder, record.Component,
		levelPlaceholder, level,
		messagePlaceholder, record.Message,
	).Replace(f.template)
}

// ColourFormatter renders the same template as PlainFormatter but wraps the
// level token in the escape sequence configured for its severity.
type ColourFormatter struct {
	plain  *PlainFormatter
	coding map[string]string
}

// NewColourFormatter returns a colour formatter; a nil coding uses DefaultColourCoding.
func NewColourFormatter(template, dateFormat string, coding map[string]string) *ColourFormatter {
	if coding == nil {
		coding = DefaultColourCoding()
	} else {
		coding = maps.Clone(coding)
	}
	return &ColourFormatter{
		plain:  NewPlainFormatter(template, dateFormat),
		coding: coding,
	}
}

func (f *ColourFormatter) Format(record Record) string {
	level := record.Severity.String()
	if code, ok := f.coding[level]; ok {
		level = code + level + Reset
	}
	return f.plain.render(record, level)
}
