// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server exposes the access log store over HTTP using the Fiber
// framework. Besides the access log routes it serves the liveness and
// readiness probes under the /-/ prefix, which are excluded from request
// logging.
package server
