// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/roomlog/internal/config"
)

const (
	configPathFlagName  = "config-path"
	configPathFlagUsage = "path of the JSON configuration file"
)

// configFlags holds the flags shared by the "config" subcommands.
type configFlags struct {
	path string
}

// addFlags adds the cli flags to the cobra command.
func (f *configFlags) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.path, configPathFlagName, config.DefaultPath, configPathFlagUsage)
}

// toOptions builds configOptions after checking that exactly expectedArgs
// arguments have been passed.
func (f *configFlags) toOptions(cmd *cobra.Command, args []string, expectedArgs int) (*configOptions, error) {
	switch {
	case len(args) == 0:
		return nil, errNoArguments
	case len(args) != expectedArgs:
		return nil, fmt.Errorf("%w: expected %d, received %d", errWrongArguments, expectedArgs, len(args))
	}

	log, err := componentLogger(cmd.Context(), config.LoggerName)
	if err != nil {
		return nil, err
	}

	return &configOptions{
		configuration: config.New(f.path, log),
		args:          args,
		out:           cmd.OutOrStdout(),
	}, nil
}

// configOptions holds the options set for the current config function.
type configOptions struct {
	configuration *config.Configuration
	args          []string
	out           io.Writer
}

// get prints the value stored at the key found in args as JSON.
func (o *configOptions) get() error {
	value, err := o.configuration.GetValue(o.args[0])
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidArgument, err)
	}
	fmt.Fprintln(o.out, string(encoded))
	return nil
}

// set stores the value found in args at the key found in args.
func (o *configOptions) set() error {
	return o.configuration.WriteNewValue(o.args[0], parseValue(o.args[1]))
}

// parseValue decodes raw as a single JSON value, falling back to the raw
// string. Numbers stay json.Number so they are stored exactly as typed.
func parseValue(raw string) any {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return raw
	}
	if decoder.More() {
		return raw
	}
	return value
}
