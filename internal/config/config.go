// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/mia-platform/roomlog/internal/logger"
)

const (
	// DefaultPath is where the configuration document lives unless overridden.
	DefaultPath = "Data/Config.json"
	// LoggerName is the component name used for the configuration logger.
	LoggerName = "Configuration"

	keyDelimiter = "."
)

var (
	// ErrKeyNotFound reports a key that is absent from the document.
	ErrKeyNotFound = errors.New("key not found")
	// ErrFileNotFound reports a missing configuration document.
	ErrFileNotFound = errors.New("configuration file not found")
	// ErrMalformedConfig reports a document that is not a JSON object.
	ErrMalformedConfig = errors.New("malformed configuration file")
)

// Configuration gives key based access to one JSON document on disk. Keys are
// split on "." to reach nested objects.
type Configuration struct {
	path string
	log  logger.Logger

	lock sync.Mutex
}

// New returns a Configuration backed by the document at path; an empty path
// uses DefaultPath. The file is not read until the first access.
func New(path string, log logger.Logger) *Configuration {
	if path == "" {
		path = DefaultPath
	}
	return &Configuration{path: path, log: log}
}

// Path returns the location of the configuration document.
func (c *Configuration) Path() string {
	return c.path
}

// GetValue returns the value stored under key. Numbers are returned as int64
// when they are integers that fit, as float64 otherwise; objects and lists
// are converted the same way.
func (c *Configuration) GetValue(key string) (any, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	k, err := c.load()
	if err != nil {
		return nil, err
	}
	if !k.Exists(key) {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	c.log.Debug("read configuration key %q", key)
	return normaliseNumbers(k.Get(key)), nil
}

// WriteNewValue stores value under key and rewrites the document.
func (c *Configuration) WriteNewValue(key string, value any) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	k, err := c.load()
	if err != nil {
		return err
	}
	if err := k.Set(key, value); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}

	data, err := k.Marshal(kjson.Parser())
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	indented := new(bytes.Buffer)
	if err := json.Indent(indented, data, "", "    "); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	indented.WriteByte('\n')

	if err := writeFileAtomically(c.path, indented.Bytes()); err != nil {
		return err
	}

	c.log.Info("updated configuration key %q", key)
	return nil
}

// load reads and parses the whole document.
func (c *Configuration) load() (*koanf.Koanf, error) {
	data, err := os.ReadFile(c.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.log.Error("configuration file %s does not exist", c.path)
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}

	document, err := decodeDocument(data)
	if err != nil {
		c.log.Error("configuration file %s is not valid: %s", c.path, err)
		return nil, fmt.Errorf("%w %s: %w", ErrMalformedConfig, c.path, err)
	}

	k := koanf.New(keyDelimiter)
	if err := k.Load(confmap.Provider(document, ""), nil); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformedConfig, c.path, err)
	}
	return k, nil
}

// decodeDocument parses data as a single JSON object keeping numbers as
// json.Number, so values nobody touches are written back unchanged.
func decodeDocument(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var document map[string]any
	if err := decoder.Decode(&document); err != nil {
		return nil, err
	}
	if document == nil {
		return nil, errors.New("document is not an object")
	}
	if err := decoder.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after the document")
	}
	return document, nil
}

// normaliseNumbers replaces every json.Number in value with an int64 or a float64.
func normaliseNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer
		}
		if float, err := typed.Float64(); err == nil {
			return float
		}
		return typed.String()
	case map[string]any:
		normalised := make(map[string]any, len(typed))
		for key, nested := range typed {
			normalised[key] = normaliseNumbers(nested)
		}
		return normalised
	case []any:
		normalised := make([]any, len(typed))
		for i, nested := range typed {
			normalised[i] = normaliseNumbers(nested)
		}
		return normalised
	default:
		return value
	}
}

// writeFileAtomically replaces path with data through a temporary file in the
// same directory, preserving the current file mode.
func writeFileAtomically(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
