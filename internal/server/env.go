// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// Config holds the listener settings read from the environment.
type Config struct {
	HTTPHost              string `env:"HTTP_HOST"`
	HTTPPort              int    `env:"HTTP_PORT" envDefault:"3000"`
	DisableStartupMessage bool   `env:"DISABLE_STARTUP_MESSAGE" envDefault:"true"`
}

// Address returns the host:port pair the server listens on.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

func LoadServerConfig() (*Config, error) {
	var envVars Config
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := validateEnvironmentVariables(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

func validateEnvironmentVariables(envVars *Config) error {
	envError := make([]string, 0)

	if envVars.HTTPPort < 1 || envVars.HTTPPort > 65535 {
		envError = append(envError, "HTTP_PORT is out of valid range (1-65535)")
	}
	if strings.ContainsAny(envVars.HTTPHost, " /") {
		envError = append(envError, "HTTP_HOST is not a valid host")
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}
