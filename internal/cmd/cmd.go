// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "start the access log HTTP API"
	serveCmdLong  = `Start the access log HTTP API.
	The listener is configured with the HTTP_HOST, HTTP_PORT and
	DISABLE_STARTUP_MESSAGE environment variables. The server stops
	gracefully on SIGINT or SIGTERM.`

	serveCmdExample = `# Serve the access logs stored in the default database on port 8080
	HTTP_PORT=8080 roomlog serve`

	configCmdUsage = "config"
	configCmdShort = "read and update the application configuration file"

	configGetCmdUsage   = "get KEY"
	configGetCmdShort   = "print the value stored at KEY"
	configGetCmdExample = `# Print a nested value
	roomlog config get database.timeoutSeconds`

	configSetCmdUsage = "set KEY VALUE"
	configSetCmdShort = "store VALUE at KEY"
	configSetCmdLong  = `Store VALUE at KEY, creating intermediate objects when missing.
	VALUE is decoded as JSON when possible and stored as a plain string
	otherwise.`

	configSetCmdExample = `# Store a number
	roomlog config set database.timeoutSeconds 10

	# Store a string
	roomlog config set apiName "Room Access"`

	recordCmdUsage = "record"
	recordCmdShort = "store a single room access"
	recordCmdLong  = `Store a single room access.
	Entry and exit times are RFC 3339 timestamps and the exit time cannot be
	before the entry time.`

	recordCmdExample = `# Record a ninety minutes stay in room R101
	roomlog record --student S1 --room R101 --block B1 \
		--in 2024-03-04T09:00:00Z --out 2024-03-04T10:30:00Z`
)

// ServeCmd returns the Cobra command that exposes the access logs over HTTP.
func ServeCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions()
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// ConfigCmd returns the Cobra command grouping the configuration file commands.
func ConfigCmd() *cobra.Command {
	flags := &configFlags{}
	cmd := &cobra.Command{
		Use:   configCmdUsage,
		Short: heredoc.Doc(configCmdShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handleError(cmd, errNoArguments)
		},
	}

	flags.addFlags(cmd)
	cmd.AddCommand(
		configGetCmd(flags),
		configSetCmd(flags),
	)
	return cmd
}

func configGetCmd(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:     configGetCmdUsage,
		Short:   heredoc.Doc(configGetCmdShort),
		Example: heredoc.Doc(configGetCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args, 1)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.get(); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}
}

func configSetCmd(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:     configSetCmdUsage,
		Short:   heredoc.Doc(configSetCmdShort),
		Long:    heredoc.Doc(configSetCmdLong),
		Example: heredoc.Doc(configSetCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args, 2)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.set(); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}
}

// RecordCmd returns the Cobra command that stores an access from the command line.
func RecordCmd() *cobra.Command {
	flags := &recordFlags{}
	cmd := &cobra.Command{
		Use:     recordCmdUsage,
		Short:   heredoc.Doc(recordCmdShort),
		Long:    heredoc.Doc(recordCmdLong),
		Example: heredoc.Doc(recordCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
