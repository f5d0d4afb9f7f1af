// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// SinkKind tags the concrete destination of a Sink.
type SinkKind int

const (
	// ConsoleSink writes to a terminal or any other stream.
	ConsoleSink SinkKind = iota
	// FileSink appends to a file on disk.
	FileSink
)

func (k SinkKind) String() string {
	switch k {
	case ConsoleSink:
		return "console"
	case FileSink:
		return "file"
	default:
		return fmt.Sprintf("SinkKind(%d)", int(k))
	}
}

// Sink accepts formatted log lines.
type Sink interface {
	Kind() SinkKind
	// Write emits one line; the newline is appended by the sink.
	Write(line string) error
	Close() error
}

var (
	_ Sink = &consoleSink{}
	_ Sink = &fileSink{}
)

type consoleSink struct {
	writer io.Writer

	lock sync.Mutex
}

// NewConsoleSink returns a sink writing to w. Closing it leaves w open.
func NewConsoleSink(w io.Writer) Sink {
	return &consoleSink{writer: w}
}

func (s *consoleSink) Kind() SinkKind { return ConsoleSink }

func (s *consoleSink) Write(line string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := io.WriteString(s.writer, line+"\n")
	return err
}

func (s *consoleSink) Close() error { return nil }

type fileSink struct {
	path string
	file *os.File

	lock sync.Mutex
}

// NewFileSink opens path for append, creating it when missing.
func NewFileSink(path string) (Sink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSinkOpen, path, err)
	}
	return &fileSink{path: path, file: file}, nil
}

func (s *fileSink) Kind() SinkKind { return FileSink }

func (s *fileSink) Write(line string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.file == nil {
		return fmt.Errorf("write %s: %w", s.path, os.ErrClosed)
	}
	_, err := s.file.WriteString(line + "\n")
	return err
}

func (s *fileSink) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Path returns the file the sink appends to.
func (s *fileSink) Path() string {
	return s.path
}

// IsTerminal reports whether f is attached to a terminal that can render colours.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
