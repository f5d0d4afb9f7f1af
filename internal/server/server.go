// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/roomlog/internal/logger"
)

const (
	// LoggerName is the component name used for the server logger.
	LoggerName = "Server"

	statusPrefix = "/-/"
)

type Server interface {
	Start() error
	Stop() error
	StartAsync(ctx context.Context)
	App() *fiber.App
}

type impServer struct {
	Config

	app *fiber.App
	log logger.Logger
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer builds the application serving the access logs found in store.
func NewServer(cfg *Config, store AccessLogStore, log logger.Logger) Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.DisableStartupMessage,
		UnescapePath:          true,
		ErrorHandler:          errorHandler,
	})
	app.Use(logger.RequestMiddlewareLogger(log, []string{statusPrefix}))

	statusRoutes(app, store)
	accessLogRoutes(app, store)

	return &impServer{
		Config: *cfg,
		app:    app,
		log:    log,
	}
}

func (s *impServer) App() *fiber.App {
	return s.app
}

func (s *impServer) Start() error {
	s.log.Info("listening on %s", s.Address())
	if err := s.app.Listen(s.Address()); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	s.log.Info("shutting down")
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

// StartAsync starts listening in the background and stops the server when
// ctx is done.
func (s *impServer) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(); err != nil {
			s.log.Error("%s", err)
		}
	}()
	go func() {
		<-ctx.Done()
		if err := s.Stop(); err != nil {
			s.log.Error("%s", err)
		}
	}()
}
