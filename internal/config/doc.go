// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config reads and updates single keys of the application JSON
// configuration document.
package config
