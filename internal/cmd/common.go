// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mia-platform/roomlog/internal/access"
	"github.com/mia-platform/roomlog/internal/logger"
)

var (
	errNoArguments     = errors.New("no arguments provided")
	errWrongArguments  = errors.New("wrong number of arguments")
	errInvalidTime     = errors.New("invalid time")
	errInvalidArgument = errors.New("invalid argument")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errWrongArguments), errors.Is(err, errInvalidTime), errors.Is(err, access.ErrInvalidInstance):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// componentLogger returns the logger called name from the registry stored in
// ctx. Without a registry every record is discarded.
func componentLogger(ctx context.Context, name string) (logger.Logger, error) {
	registry := logger.RegistryFromContext(ctx)
	if registry == nil {
		return logger.FromContext(ctx), nil
	}

	log, err := registry.CreateLogger(name)
	if err != nil {
		return nil, err
	}
	return log, nil
}
