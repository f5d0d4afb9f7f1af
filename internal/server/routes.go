// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/roomlog/internal/access"
	"github.com/mia-platform/roomlog/internal/database"
	"github.com/mia-platform/roomlog/internal/info"
	"github.com/mia-platform/roomlog/internal/logger"
)

const studentIDParam = "studentId"

// AccessLogStore is the read side of the access log database.
type AccessLogStore interface {
	GetAccessLogs(ctx context.Context, studentID string) ([]access.AccessInstance, error)
	Ping(ctx context.Context) error
}

func statusRoutes(app *fiber.App, store AccessLogStore) {
	app.Get(statusPrefix+"healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"name":    info.AppName,
			"version": info.Version,
		})
	})

	app.Get(statusPrefix+"ready", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "KO",
				"name":   info.AppName,
			})
		}
		return c.JSON(fiber.Map{
			"status": "OK",
			"name":   info.AppName,
		})
	})
}

func accessLogRoutes(app *fiber.App, store AccessLogStore) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Query GET /getaccesslogs/{studentId} to list the room accesses of a student",
		})
	})

	app.Get("/getaccesslogs/:"+studentIDParam, func(c *fiber.Ctx) error {
		studentID := c.Params(studentIDParam)
		instances, err := store.GetAccessLogs(c.UserContext(), studentID)
		if err != nil {
			logger.FromContext(c.UserContext()).Error("retrieving access logs of %q: %s", studentID, err)
			return err
		}
		return c.JSON(instances)
	})
}

// errorHandler renders every handler error as the standard error body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, database.ErrInvalidStudentID):
		code = http.StatusBadRequest
	case errors.Is(err, database.ErrStorageUnavailable):
		code = http.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"statusCode": code,
		"error":      http.StatusText(code),
		"message":    err.Error(),
	})
}
