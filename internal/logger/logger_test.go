// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	buffer := new(safeBuffer)
	registry := newTestRegistry(t, buffer)
	logger, err := registry.CreateLogger("test_logger", WithSinks(NewConsoleSink(buffer)), WithColour(false), WithFormat("{component} {level} {message}"))
	require.NoError(t, err)

	logger.Debug("new log line for DEBUG level")
	logger.Info("student %s entered room %d", "s-42", 7)
	logger.Warning("literal %d without args")
	logger.Error("new log line for ERROR level")
	logger.Critical("new log line for CRITICAL level")

	assert.Equal(t, []string{
		"test_logger DEBUG new log line for DEBUG level",
		"test_logger INFO student s-42 entered room 7",
		"test_logger WARNING literal %d without args",
		"test_logger ERROR new log line for ERROR level",
		"test_logger CRITICAL new log line for CRITICAL level",
	}, buffer.lines())
}

func TestLoggerWithoutSinks(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(t, new(safeBuffer))
	logger, err := registry.CreateLogger("silent", WithSinks([]Sink{}...))
	require.NoError(t, err)

	assert.Empty(t, logger.Sinks())
	assert.False(t, logger.Enabled(CRITICAL))
	logger.Critical("nobody listens")
}

func TestLoggerKeepsMessageBytes(t *testing.T) {
	t.Parallel()

	buffer := new(safeBuffer)
	registry := newTestRegistry(t, buffer)
	logger, err := registry.CreateLogger("raw", WithSinks(NewConsoleSink(buffer)), WithColour(false), WithFormat("{message}"))
	require.NoError(t, err)

	logger.Info("bad \xff byte")
	logger.Info("quotes \" and \\ backslash\ttab")

	assert.Equal(t, "bad \xff byte\nquotes \" and \\ backslash\ttab\n", buffer.String())
}

type failingSink struct{}

func (failingSink) Kind() SinkKind { return FileSink }

func (failingSink) Write(string) error { return errors.New("disk full") }

func (failingSink) Close() error { return nil }

func TestSinkHookReportsWriteErrors(t *testing.T) {
	t.Parallel()

	console := new(safeBuffer)
	errOutput := new(safeBuffer)
	hook := newSinkHook("Database", func() time.Time { return time.Time{} },
		[]Sink{failingSink{}, NewConsoleSink(console)},
		func(Sink) Formatter { return NewPlainFormatter("{component} {level} {message}", "") },
	)
	hook.errOutput = errOutput

	log := zerolog.New(io.Discard).Hook(hook)
	log.WithLevel(zerolog.FatalLevel).Msg("boom")

	assert.Equal(t, "Database CRITICAL boom\n", console.String(), "a failing sink does not stop the others")
	assert.Equal(t, "Database: writing record to file sink: disk full\n", errOutput.String())
}
