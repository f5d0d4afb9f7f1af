// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		envVars, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, &Config{HTTPPort: 3000, DisableStartupMessage: true}, envVars)
		assert.Equal(t, ":3000", envVars.Address())
	})

	t.Run("values from the environment", func(t *testing.T) {
		t.Setenv("HTTP_HOST", "127.0.0.1")
		t.Setenv("HTTP_PORT", "8080")
		t.Setenv("DISABLE_STARTUP_MESSAGE", "false")

		envVars, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8080", envVars.Address())
		assert.False(t, envVars.DisableStartupMessage)
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "655350")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})

	t.Run("port is not a number", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "http")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})
}

func TestValidateEnvironmentVariables(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		envVars     *Config
		expectError bool
	}{
		"negative port": {
			envVars:     &Config{HTTPPort: -1},
			expectError: true,
		},
		"port above range": {
			envVars:     &Config{HTTPPort: 655350},
			expectError: true,
		},
		"host with spaces": {
			envVars:     &Config{HTTPHost: "local host", HTTPPort: 3000},
			expectError: true,
		},
		"valid": {
			envVars: &Config{HTTPHost: "0.0.0.0", HTTPPort: 3000},
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := validateEnvironmentVariables(test.envVars)
			if test.expectError {
				require.ErrorIs(t, err, ErrEnvVariablesNotValid)
				return
			}
			require.NoError(t, err)
		})
	}
}
