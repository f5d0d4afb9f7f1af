// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Severity is the ordered importance of a log record.
type Severity int

const (
	DEBUG Severity = iota
	INFO
	WARNING
	ERROR
	CRITICAL
)

var severityNames = [...]string{
	DEBUG:    "DEBUG",
	INFO:     "INFO",
	WARNING:  "WARNING",
	ERROR:    "ERROR",
	CRITICAL: "CRITICAL",
}

// AllSeverities lists every severity from the least to the most important.
func AllSeverities() []Severity {
	return []Severity{DEBUG, INFO, WARNING, ERROR, CRITICAL}
}

func (s Severity) String() string {
	if s < DEBUG || s > CRITICAL {
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
	return severityNames[s]
}

// ParseSeverity maps a case-insensitive level name to its Severity.
func ParseSeverity(level string) (Severity, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARNING":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	case "CRITICAL":
		return CRITICAL, nil
	default:
		return DEBUG, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// zerologLevel converts the severity to the level used for filtering. CRITICAL
// is carried as zerolog fatal and always emitted through WithLevel, which never
// exits the process.
func (s Severity) zerologLevel() zerolog.Level {
	switch s {
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARNING:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	case CRITICAL:
		return zerolog.FatalLevel
	default:
		return zerolog.DebugLevel
	}
}

func severityFromZerolog(level zerolog.Level) (Severity, bool) {
	switch level {
	case zerolog.DebugLevel:
		return DEBUG, true
	case zerolog.InfoLevel:
		return INFO, true
	case zerolog.WarnLevel:
		return WARNING, true
	case zerolog.ErrorLevel:
		return ERROR, true
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return CRITICAL, true
	default:
		return DEBUG, false
	}
}
