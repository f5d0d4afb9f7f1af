// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger provides named component loggers that write every record to a
// colour-coded console sink and to a plain per-component log file.
// Loggers are created and owned by a Registry, keyed by component name, and made
// available to request handlers through context helpers.
package logger
