// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/mia-platform/roomlog/internal/access"
	"github.com/mia-platform/roomlog/internal/logger"
)

const (
	// DefaultPath is the SQLite file used unless overridden.
	DefaultPath = "Data/AccessLogs.db"
	// LoggerName is the component name used for the database logger.
	LoggerName = "Database"

	driverName = "sqlite"
	tableName  = "access_logs"

	studentIDColumn = "student_id"
	roomIDColumn    = "room_id"
	blockIDColumn   = "block_id"
	inTimeColumn    = "in_time"
	outTimeColumn   = "out_time"

	schema = `CREATE TABLE IF NOT EXISTS access_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id TEXT NOT NULL,
	room_id TEXT NOT NULL,
	block_id TEXT NOT NULL,
	in_time INTEGER NOT NULL,
	out_time INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS access_logs_student_in_time ON access_logs (student_id, in_time);`
)

var (
	// ErrStorageUnavailable reports a failure of the underlying database.
	ErrStorageUnavailable = errors.New("access log storage unavailable")
	// ErrInvalidStudentID reports an empty student identifier.
	ErrInvalidStudentID = errors.New("invalid student id")
	// ErrInvalidAccess reports an access event rejected by validation.
	ErrInvalidAccess = errors.New("invalid access event")

	accessColumns = []string{studentIDColumn, roomIDColumn, blockIDColumn, inTimeColumn, outTimeColumn}
)

// Database stores access events. Times are kept as unix nanoseconds so that
// ordering by entry time is numeric.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// Open opens the SQLite file at path, creating it and its schema when missing.
func Open(ctx context.Context, path string, log logger.Logger) (*Database, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	// SQLite accepts a single writer at a time
	db.SetMaxOpenConns(1)

	database := New(db, log)
	if err := database.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// New wraps an already opened handle.
func New(db *sql.DB, log logger.Logger) *Database {
	log.Info("Initialising Database")
	return &Database{db: db, log: log}
}

// Migrate creates the access log table when it does not exist.
func (d *Database) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		d.log.Error("creating schema: %s", err)
		return fmt.Errorf("%w: creating schema: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// GetAccessLogs returns every access of studentID ordered by entry time. A
// student without accesses yields an empty slice.
func (d *Database) GetAccessLogs(ctx context.Context, studentID string) ([]access.AccessInstance, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrInvalidStudentID
	}

	query, args, err := squirrel.
		Select(accessColumns...).
		From(tableName).
		Where(squirrel.Eq{studentIDColumn: studentID}).
		OrderBy(inTimeColumn+" ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		d.log.Error("querying access logs of %s: %s", studentID, err)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	instances := make([]access.AccessInstance, 0)
	for rows.Next() {
		var (
			instance access.AccessInstance
			inTime   int64
			outTime  int64
		)
		if err := rows.Scan(&instance.StudentID, &instance.RoomID, &instance.BlockID, &inTime, &outTime); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		instance.InTime = time.Unix(0, inTime).UTC()
		instance.OutTime = time.Unix(0, outTime).UTC()
		instances = append(instances, instance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	d.log.Debug("found %d access logs for student %s", len(instances), studentID)
	return instances, nil
}

// RecordAccess validates and stores a single access event.
func (d *Database) RecordAccess(ctx context.Context, instance access.AccessInstance) error {
	if err := instance.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAccess, err)
	}

	query, args, err := squirrel.
		Insert(tableName).
		Columns(accessColumns...).
		Values(instance.StudentID, instance.RoomID, instance.BlockID, instance.InTime.UnixNano(), instance.OutTime.UnixNano()).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		d.log.Error("recording access of %s: %s", instance.StudentID, err)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	d.log.Info("recorded access of student %s to room %s in block %s", instance.StudentID, instance.RoomID, instance.BlockID)
	return nil
}

// Close releases the underlying handle.
func (d *Database) Close() error {
	return d.db.Close()
}
