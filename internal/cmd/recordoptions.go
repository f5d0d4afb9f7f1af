// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mia-platform/roomlog/internal/access"
	"github.com/mia-platform/roomlog/internal/database"
)

const (
	recordLoggerName = "Record"

	studentFlagName  = "student"
	studentFlagUsage = "identifier of the student"
	roomFlagName     = "room"
	roomFlagUsage    = "identifier of the room"
	blockFlagName    = "block"
	blockFlagUsage   = "identifier of the block containing the room"
	inFlagName       = "in"
	inFlagUsage      = "entry time in RFC 3339 format"
	outFlagName      = "out"
	outFlagUsage     = "exit time in RFC 3339 format"
)

// recordFlags holds the flags for the "record" command.
type recordFlags struct {
	databasePath string
	studentID    string
	roomID       string
	blockID      string
	inTime       string
	outTime      string
}

// addFlags adds the cli flags to the cobra command.
func (f *recordFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.databasePath, databasePathFlagName, database.DefaultPath, databasePathFlagUsage)
	flags.StringVar(&f.studentID, studentFlagName, "", studentFlagUsage)
	flags.StringVar(&f.roomID, roomFlagName, "", roomFlagUsage)
	flags.StringVar(&f.blockID, blockFlagName, "", blockFlagUsage)
	flags.StringVar(&f.inTime, inFlagName, "", inFlagUsage)
	flags.StringVar(&f.outTime, outFlagName, "", outFlagUsage)
}

// toOptions converts the record flags to recordOptions parsing the timestamps.
func (f *recordFlags) toOptions(cmd *cobra.Command) (*recordOptions, error) {
	inTime, err := parseTime(inFlagName, f.inTime)
	if err != nil {
		return nil, err
	}
	outTime, err := parseTime(outFlagName, f.outTime)
	if err != nil {
		return nil, err
	}

	return &recordOptions{
		databasePath: f.databasePath,
		instance: access.AccessInstance{
			StudentID: f.studentID,
			RoomID:    f.roomID,
			BlockID:   f.blockID,
			InTime:    inTime,
			OutTime:   outTime,
		},
		out: cmd.OutOrStdout(),
	}, nil
}

// parseTime parses an optional RFC 3339 flag value; empty stays the zero time.
func parseTime(flagName, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w for --%s: %q", errInvalidTime, flagName, value)
	}
	return parsed, nil
}

// recordOptions holds the options set for the current record function.
type recordOptions struct {
	databasePath string
	instance     access.AccessInstance
	out          io.Writer
}

// validate validates the access to record and returns an error if something is wrong.
func (o *recordOptions) validate() error {
	return o.instance.Validate()
}

// execute stores the access in the database.
func (o *recordOptions) execute(ctx context.Context) error {
	log, err := componentLogger(ctx, recordLoggerName)
	if err != nil {
		return err
	}

	databaseLog, err := componentLogger(ctx, database.LoggerName)
	if err != nil {
		return err
	}
	store, err := database.Open(ctx, o.databasePath, databaseLog)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordAccess(ctx, o.instance); err != nil {
		log.Error("recording access of %s: %s", o.instance.StudentID, err)
		return err
	}

	log.Info("access of %s to %s/%s recorded", o.instance.StudentID, o.instance.BlockID, o.instance.RoomID)
	fmt.Fprintf(o.out, "recorded access of %s to room %s in block %s\n", o.instance.StudentID, o.instance.RoomID, o.instance.BlockID)
	return nil
}
