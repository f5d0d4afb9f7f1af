// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/roomlog/internal/logger"
	"github.com/mia-platform/roomlog/internal/version"
)

func TestVersionCommand(t *testing.T) {
	Version = "test"
	BuildDate = "2024-06-01"
	t.Cleanup(func() {
		Version = "DEV"
		BuildDate = ""
	})

	logsDir := filepath.Join(t.TempDir(), "Logs")
	flags := &rootFlags{}
	cmd := rootCmd(flags)
	buffer := new(bytes.Buffer)
	cmd.SetOut(buffer)

	cmd.SetArgs([]string{"--log-level", "warning", "--logs-dir", logsDir, "version"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Equal(t, version.Format(Version, BuildDate, runtime.Version())+"\n", buffer.String())
	require.NotNil(t, flags.registry)
	assert.Equal(t, logsDir, flags.registry.Root())
	assert.NoDirExists(t, logsDir, "no component logger has been created")

	buffer.Reset()
	BuildDate = ""
	cmd.SetArgs([]string{"--log-level", "warning", "--logs-dir", logsDir, "version"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	assert.Equal(t, version.Format(Version, "", runtime.Version())+"\n", buffer.String())
	require.NoError(t, flags.close())
}

func TestInvalidLogLevel(t *testing.T) {
	t.Parallel()

	flags := &rootFlags{}
	cmd := rootCmd(flags)
	errBuffer := new(bytes.Buffer)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(errBuffer)

	cmd.SetArgs([]string{"--log-level", "TRACE", "version"})
	err := cmd.ExecuteContext(t.Context())
	require.ErrorIs(t, err, logger.ErrInvalidLevel)
	assert.Contains(t, errBuffer.String(), "TRACE")
	assert.Nil(t, flags.registry)
	assert.NoError(t, flags.close())
}

func TestRecordThroughRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logsDir := filepath.Join(dir, "Logs")
	flags := &rootFlags{}
	cmd := rootCmd(flags)
	buffer := new(bytes.Buffer)
	cmd.SetOut(buffer)
	cmd.SetErr(buffer)

	cmd.SetArgs([]string{
		"--logs-dir", logsDir, "--no-colour",
		"record", "--database-path", filepath.Join(dir, "AccessLogs.db"),
		"--student", "S1", "--room", "R101", "--block", "B1",
		"--in", "2024-03-04T09:00:00Z", "--out", "2024-03-04T10:00:00Z",
	})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
	require.NoError(t, flags.close())

	entries, err := os.ReadDir(filepath.Join(logsDir, "Record"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(logsDir, "Record", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[Record] [INFO] access of S1 to B1/R101 recorded")
}
