// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	buffer := new(safeBuffer)
	registry := newTestRegistry(t, buffer)
	base, err := registry.CreateLogger("Server", WithLevel("INFO"), WithSinks(NewConsoleSink(buffer)), WithColour(false), WithFormat("{level} {message}"))
	require.NoError(t, err)

	log := WithRequestID(base, "request-7")
	assert.Equal(t, "Server", log.Name())

	log.Debug("filtered out")
	log.Info("looking up %s", "S1")
	log.Warning("100% literal")
	log.Critical("store down")

	assert.Equal(t, []string{
		"INFO looking up S1 (request request-7)",
		"WARNING 100% literal (request request-7)",
		"CRITICAL store down (request request-7)",
	}, buffer.lines())
}
