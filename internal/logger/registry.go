// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
)

const (
	// DefaultRoot is the top level folder holding every component directory.
	DefaultRoot = "Logs"

	fileDateFormat = "02.01.2006"
	fileExtension  = ".log"
	dirPermission  = 0o755
)

// Registry creates component loggers and owns them for its whole lifetime.
type Registry struct {
	root     string
	console  io.Writer
	defaults []Option
	now      func() time.Time

	lock    sync.Mutex
	loggers map[string]*ComponentLogger
}

// NewRegistry returns a registry writing log files under root and console
// output to console. An empty root uses DefaultRoot and a nil console uses
// the process standard output. defaults are applied to every CreateLogger
// call before its own options.
func NewRegistry(root string, console io.Writer, defaults ...Option) *Registry {
	if root == "" {
		root = DefaultRoot
	}
	if console == nil {
		console = colorable.NewColorableStdout()
	}
	return &Registry{
		root:     root,
		console:  console,
		defaults: defaults,
		now:      time.Now,
		loggers:  make(map[string]*ComponentLogger),
	}
}

// Root returns the folder containing the component log directories.
func (r *Registry) Root() string {
	return r.root
}

// CreateLogger builds the logger for the named component, or reconfigures the
// existing one. Without WithSinks the logger appends to
// <root>/<directory>/<prefix><DD.MM.YYYY>.log and prints to the console.
func (r *Registry) CreateLogger(name string, opts ...Option) (*ComponentLogger, error) {
	if name == "" {
		return nil, errMissingName
	}

	cfg := defaultOptions()
	for _, opt := range r.defaults {
		opt(&cfg)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.directory == "" {
		cfg.directory = name
	}

	severity, err := ParseSeverity(cfg.level)
	if err != nil {
		return nil, err
	}

	directory, err := r.bootstrap(cfg.directory)
	if err != nil {
		return nil, err
	}

	sinks := cfg.sinks
	var owned []Sink
	if sinks == nil {
		fileName := cfg.filePrefix + r.now().Format(fileDateFormat) + fileExtension
		file, err := NewFileSink(filepath.Join(directory, fileName))
		if err != nil {
			return nil, err
		}
		owned = []Sink{file}
		sinks = []Sink{file, NewConsoleSink(r.console)}
	}

	plain := NewPlainFormatter(cfg.format, cfg.dateFormat)
	var colour Formatter = plain
	if cfg.colour {
		colour = NewColourFormatter(cfg.format, cfg.dateFormat, cfg.colourCoding)
	}
	formatterFor := func(sink Sink) Formatter {
		if sink.Kind() == ConsoleSink {
			return colour
		}
		return plain
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	log, found := r.loggers[name]
	if !found {
		log = newComponentLogger(name, r.now)
		r.loggers[name] = log
	}
	stale := log.configure(severity, sinks, formatterFor, owned)

	// the new configuration is already in place; a replaced sink failing to
	// close is reported through it
	for _, sink := range stale {
		if err := sink.Close(); err != nil {
			log.Warning("closing replaced %s sink: %s", sink.Kind(), err)
		}
	}
	return log, nil
}

// Get returns the logger registered under name.
func (r *Registry) Get(name string) (*ComponentLogger, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	log, found := r.loggers[name]
	return log, found
}

// Len returns the number of registered loggers.
func (r *Registry) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.loggers)
}

// Close closes every file sink opened by the registry. Loggers stay
// registered but discard records until they are created again.
func (r *Registry) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	var errs []error
	for _, log := range r.loggers {
		if err := log.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// bootstrap makes sure both the root and the component directory exist.
func (r *Registry) bootstrap(directory string) (string, error) {
	if err := os.MkdirAll(r.root, dirPermission); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrDirectoryCreation, r.root, err)
	}

	path := filepath.Join(r.root, directory)
	if err := os.MkdirAll(path, dirPermission); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrDirectoryCreation, path, err)
	}
	return path, nil
}
