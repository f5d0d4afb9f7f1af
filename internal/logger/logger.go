// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger = &ComponentLogger{log: zerolog.Nop(), severity: CRITICAL + 1, now: time.Now}
)

// Logger describes the interface that must be implemented by all loggers
type Logger interface {
	// Name returns the component name attached to every record.
	Name() string

	// Enabled reports whether a record at severity would be emitted.
	Enabled(severity Severity) bool

	// Log emits msg at severity; args are applied to msg as fmt verbs.
	Log(severity Severity, msg string, args ...any)

	// Debug emit a message at the DEBUG level.
	Debug(msg string, args ...any)

	// Info emit a message at the INFO level.
	Info(msg string, args ...any)

	// Warning emit a message at the WARNING level.
	Warning(msg string, args ...any)

	// Error emit a message at the ERROR level.
	Error(msg string, args ...any)

	// Critical emit a message at the CRITICAL level.
	Critical(msg string, args ...any)
}

// Make sure that ComponentLogger is a Logger.
var _ Logger = &ComponentLogger{}

// ComponentLogger is the Logger handed out by a Registry. The same instance is
// returned for every creation under the same name; creating it again replaces
// its level and sinks in place.
type ComponentLogger struct {
	name string
	now  func() time.Time

	lock     sync.RWMutex
	severity Severity
	log      zerolog.Logger
	sinks    []Sink
	// owned are the sinks opened by the registry for this logger.
	owned []Sink
}

func newComponentLogger(name string, now func() time.Time) *ComponentLogger {
	return &ComponentLogger{
		name: name,
		now:  now,
		log:  zerolog.Nop(),
	}
}

// configure swaps in a new sink set and returns the previously owned sinks that
// are not part of the new set, so the caller can close them.
func (l *ComponentLogger) configure(severity Severity, sinks []Sink, formatterFor func(Sink) Formatter, owned []Sink) []Sink {
	log := zerolog.New(io.Discard).
		Level(severity.zerologLevel()).
		Hook(newSinkHook(l.name, l.now, sinks, formatterFor)).
		With().
		Str(componentField, l.name).
		Logger()
	if len(sinks) == 0 {
		log = zerolog.Nop()
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	stale := make([]Sink, 0, len(l.owned))
	for _, previous := range l.owned {
		if !slices.Contains(sinks, previous) {
			stale = append(stale, previous)
		}
	}

	l.severity = severity
	l.log = log
	l.sinks = slices.Clone(sinks)
	l.owned = slices.Clone(owned)
	return stale
}

func (l *ComponentLogger) Name() string {
	return l.name
}

// Level returns the minimum severity the logger emits.
func (l *ComponentLogger) Level() Severity {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.severity
}

// Sinks returns a copy of the attached sinks.
func (l *ComponentLogger) Sinks() []Sink {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return slices.Clone(l.sinks)
}

func (l *ComponentLogger) Enabled(severity Severity) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return severity >= l.severity && len(l.sinks) > 0
}

func (l *ComponentLogger) Log(severity Severity, msg string, args ...any) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	event := l.log.WithLevel(severity.zerologLevel())
	if event == nil {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	event.Msg(msg)
}

func (l *ComponentLogger) Debug(msg string, args ...any) {
	l.Log(DEBUG, msg, args...)
}

func (l *ComponentLogger) Info(msg string, args ...any) {
	l.Log(INFO, msg, args...)
}

func (l *ComponentLogger) Warning(msg string, args ...any) {
	l.Log(WARNING, msg, args...)
}

func (l *ComponentLogger) Error(msg string, args ...any) {
	l.Log(ERROR, msg, args...)
}

func (l *ComponentLogger) Critical(msg string, args ...any) {
	l.Log(CRITICAL, msg, args...)
}

// close releases the sinks opened for this logger and detaches every sink.
func (l *ComponentLogger) close() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	var errs []error
	for _, sink := range l.owned {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.owned = nil
	l.sinks = nil
	l.log = zerolog.Nop()
	return errors.Join(errs...)
}
