// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	requestIDHeaderName    = "x-request-id"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

type fiberLoggingContext struct {
	c *fiber.Ctx
}

type loggingContext interface {
	Request() requestLoggingContext
	Response() responseLoggingContext
}

type requestLoggingContext interface {
	GetHeader(string) string
	URI() string
	Host() string
	Method() string
}

type responseLoggingContext interface {
	BodySize() int
	StatusCode() int
}

func removePort(host string) string {
	return strings.Split(host, ":")[0]
}

// GetReqID returns the request id sent by the client, or a new random one.
func GetReqID(ctx loggingContext) string {
	if requestID := ctx.Request().GetHeader(requestIDHeaderName); requestID != "" {
		return requestID
	}
	// Generate a random uuid string. e.g. 16c9c1f2-c001-40d3-bbfe-48857367e7b5
	requestID, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return requestID.String()
}

func logIncomingRequest(ctx loggingContext, logger Logger, requestID string) {
	if !logger.Enabled(DEBUG) {
		return
	}
	logger.Debug("%s %s %s (request %s, host %s, forwarded host %q, ip %q, user agent %q)",
		IncomingRequestMessage,
		ctx.Request().Method(),
		ctx.Request().URI(),
		requestID,
		removePort(ctx.Request().Host()),
		ctx.Request().GetHeader(forwardedHostHeaderKey),
		ctx.Request().GetHeader(forwardedForHeaderKey),
		ctx.Request().GetHeader("user-agent"),
	)
}

func logRequestCompleted(ctx loggingContext, logger Logger, requestID string, startTime time.Time) {
	logger.Info("%s %s %s %d %dB %dms (request %s)",
		RequestCompletedMessage,
		ctx.Request().Method(),
		ctx.Request().URI(),
		ctx.Response().StatusCode(),
		ctx.Response().BodySize(),
		time.Since(startTime).Milliseconds(),
		requestID,
	)
}

func (flc *fiberLoggingContext) Request() requestLoggingContext {
	return flc
}

func (flc *fiberLoggingContext) Response() responseLoggingContext {
	return flc
}

func (flc *fiberLoggingContext) GetHeader(key string) string {
	return flc.c.Get(key, "")
}

func (flc *fiberLoggingContext) URI() string {
	return string(flc.c.Request().URI().RequestURI())
}

func (flc *fiberLoggingContext) Host() string {
	return string(flc.c.Request().Host())
}

func (flc *fiberLoggingContext) Method() string {
	return flc.c.Method()
}

func (flc *fiberLoggingContext) BodySize() int {
	if content := flc.c.GetRespHeader("Content-Length"); content != "" {
		if length, err := strconv.Atoi(content); err == nil {
			return length
		}
	}
	return len(flc.c.Response().Body())
}

func (flc *fiberLoggingContext) StatusCode() int {
	return flc.c.Response().StatusCode()
}

// RequestMiddlewareLogger is a fiber middleware to log all requests
// It logs the incoming request and when request is completed, adding latency of the request.
// Handler errors are rendered by the app error handler before the completion line
// so that the logged status matches the response.
func RequestMiddlewareLogger(logger Logger, excludedPrefix []string) func(*fiber.Ctx) error {
	return func(fiberCtx *fiber.Ctx) error {
		fiberLoggingContext := &fiberLoggingContext{c: fiberCtx}

		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(fiberLoggingContext.Request().URI(), prefix) {
				return fiberCtx.Next()
			}
		}

		start := time.Now()

		requestID := GetReqID(fiberLoggingContext)
		fiberCtx.Set(requestIDHeaderName, requestID)

		ctx := WithContext(fiberCtx.UserContext(), WithRequestID(logger, requestID))
		fiberCtx.SetUserContext(ctx)

		logIncomingRequest(fiberLoggingContext, logger, requestID)
		if err := fiberCtx.Next(); err != nil {
			if handlerErr := fiberCtx.App().ErrorHandler(fiberCtx, err); handlerErr != nil {
				_ = fiberCtx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logRequestCompleted(fiberLoggingContext, logger, requestID, start)
		return nil
	}
}
