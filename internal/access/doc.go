// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package access holds the data model of a student entering and leaving a room.
package access
