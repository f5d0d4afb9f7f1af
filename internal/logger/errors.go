// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import "errors"

var (
	// ErrInvalidColour reports a colour name that is not one of the eight ANSI base colours.
	ErrInvalidColour = errors.New("invalid colour")
	// ErrInvalidLevel reports a severity string that does not name a known level.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrDirectoryCreation reports a failure while bootstrapping the logs directory tree.
	ErrDirectoryCreation = errors.New("cannot create logging directory")
	// ErrSinkOpen reports a failure while opening a file sink for append.
	ErrSinkOpen = errors.New("cannot open log sink")

	errMissingName = errors.New("logger name is required")
)
