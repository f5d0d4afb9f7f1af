// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	internalcmd "github.com/mia-platform/roomlog/internal/cmd"
	"github.com/mia-platform/roomlog/internal/info"
	"github.com/mia-platform/roomlog/internal/logger"
	"github.com/mia-platform/roomlog/internal/version"
)

var (
	// Version is injected at build time via the Makefile.
	Version = info.Version
	// BuildDate is injected at build time via the Makefile.
	BuildDate = info.BuildDate

	appName      = info.AppName
	versionShort = "Display the " + appName + " version"
)

const (
	appShort = "roomlog records and serves the room accesses of students"

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"
	logsDirFlagName       = "logs-dir"
	logsDirFlagUsage      = "folder containing one log directory per component"
	noColourFlagName      = "no-colour"
	noColourFlagUsage     = "disable colour-coding of the console output"

	versionCmdName = "version"
)

var (
	logLevelDefaultValue = logger.INFO.String()
	logLevelFlagUsage    = "set the logging level (possible values: " + strings.Join(severityNames(), ", ") + ")"
)

func severityNames() []string {
	names := make([]string, 0, len(logger.AllSeverities()))
	for _, severity := range logger.AllSeverities() {
		names = append(names, severity.String())
	}
	return names
}

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel string
	logsDir  string
	noColour bool

	registry *logger.Registry
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, logLevelDefaultValue, heredoc.Doc(logLevelFlagUsage))
	flags.StringVar(&f.logsDir, logsDirFlagName, logger.DefaultRoot, logsDirFlagUsage)
	flags.BoolVar(&f.noColour, noColourFlagName, false, noColourFlagUsage)
}

// newRegistry validates the flags and builds the registry shared by every command.
func (f *rootFlags) newRegistry() (*logger.Registry, error) {
	if _, err := logger.ParseSeverity(f.logLevel); err != nil {
		return nil, err
	}

	f.registry = logger.NewRegistry(f.logsDir, nil,
		logger.WithLevel(f.logLevel),
		logger.WithColour(!f.noColour && logger.IsTerminal(os.Stdout)),
	)
	return f.registry, nil
}

// close releases the files opened by the registry, if any.
func (f *rootFlags) close() error {
	if f.registry == nil {
		return nil
	}
	return f.registry.Close()
}

func main() {
	flags := &rootFlags{}
	cmd := rootCmd(flags)

	exitCode := 0
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		exitCode = 1
	}
	if err := flags.close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}

	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd(flag *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := flag.newRegistry()
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}
			cmd.SetContext(logger.WithRegistry(cmd.Context(), registry))
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd)
	cmd.AddCommand(
		internalcmd.ServeCmd(),
		internalcmd.ConfigCmd(),
		internalcmd.RecordCmd(),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Format(Version, BuildDate, runtime.Version()))
		},
	}
}
