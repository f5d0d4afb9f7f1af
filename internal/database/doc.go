// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package database persists room access events in SQLite and retrieves them
// per student.
package database
