// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import "fmt"

// requestLogger appends the request id to every message of the wrapped Logger.
type requestLogger struct {
	Logger
	suffix string
}

// WithRequestID returns a Logger that ends every message with
// "(request <requestID>)", the same marker used by the request middleware.
func WithRequestID(base Logger, requestID string) Logger {
	return &requestLogger{Logger: base, suffix: " (request " + requestID + ")"}
}

func (l *requestLogger) Log(severity Severity, msg string, args ...any) {
	if !l.Enabled(severity) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.Logger.Log(severity, msg+l.suffix)
}

func (l *requestLogger) Debug(msg string, args ...any) {
	l.Log(DEBUG, msg, args...)
}

func (l *requestLogger) Info(msg string, args ...any) {
	l.Log(INFO, msg, args...)
}

func (l *requestLogger) Warning(msg string, args ...any) {
	l.Log(WARNING, msg, args...)
}

func (l *requestLogger) Error(msg string, args ...any) {
	l.Log(ERROR, msg, args...)
}

func (l *requestLogger) Critical(msg string, args ...any) {
	l.Log(CRITICAL, msg, args...)
}
