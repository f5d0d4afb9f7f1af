// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
)

// WithContext returns a new context with the provided logger.
func WithContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// FromContext retrieves the logger from the context. If no logger is found, a null logger is returned.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey).(Logger); ok {
			return logger
		}
	}

	return nullLogger
}

// WithRegistry returns a new context carrying the registry that owns the component loggers.
func WithRegistry(ctx context.Context, registry *Registry) context.Context {
	return context.WithValue(ctx, registryKey, registry)
}

// RegistryFromContext retrieves the registry from the context, or nil when none is set.
func RegistryFromContext(ctx context.Context) *Registry {
	if ctx != nil {
		if registry, ok := ctx.Value(registryKey).(*Registry); ok {
			return registry
		}
	}

	return nil
}

// Unexported new type so that our context keys never collide with another.
type contextKeyType int

const (
	// contextKey is the key used for the context to store the logger.
	contextKey contextKeyType = iota
	// registryKey is the key used for the context to store the registry.
	registryKey
)
