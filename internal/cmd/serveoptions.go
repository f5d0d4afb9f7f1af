// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mia-platform/roomlog/internal/database"
	"github.com/mia-platform/roomlog/internal/info"
	"github.com/mia-platform/roomlog/internal/server"
	"github.com/mia-platform/roomlog/internal/version"
)

const (
	databasePathFlagName  = "database-path"
	databasePathFlagUsage = "path of the SQLite file holding the access logs"
)

// serveFlags holds the flags for the "serve" command.
type serveFlags struct {
	databasePath string
}

// addFlags adds the cli flags to the cobra command.
func (f *serveFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.databasePath, databasePathFlagName, database.DefaultPath, databasePathFlagUsage)
}

// toOptions converts the serve flags to serveOptions reading the listener
// configuration from the environment.
func (f *serveFlags) toOptions() (*serveOptions, error) {
	serverConfig, err := server.LoadServerConfig()
	if err != nil {
		return nil, err
	}

	return &serveOptions{
		databasePath: f.databasePath,
		serverConfig: serverConfig,
	}, nil
}

// serveOptions holds the options set for the current serve function.
type serveOptions struct {
	databasePath string
	serverConfig *server.Config
}

// execute opens the database and serves it until ctx is done or the process
// receives a termination signal.
func (o *serveOptions) execute(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseLog, err := componentLogger(ctx, database.LoggerName)
	if err != nil {
		return err
	}
	store, err := database.Open(ctx, o.databasePath, databaseLog)
	if err != nil {
		return err
	}
	defer store.Close()

	serverLog, err := componentLogger(ctx, server.LoggerName)
	if err != nil {
		return err
	}
	serverLog.Info("starting %s %s", info.AppName, version.ServiceVersionInformation())
	srv := server.NewServer(o.serverConfig, store, serverLog)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(srv.Start)
	group.Go(func() error {
		<-groupCtx.Done()
		return srv.Stop()
	})

	return group.Wait()
}
