// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package version formats the build metadata of the application.
package version

import (
	"runtime"

	"github.com/mia-platform/roomlog/internal/info"
)

// ServiceVersionInformation describes the running binary using the values in
// the info package.
func ServiceVersionInformation() string {
	return Format(info.Version, info.BuildDate, runtime.Version())
}

// Format joins the version, the optional build date and the Go runtime version.
func Format(version, buildDate, runtimeVersion string) string {
	outputString := version
	if buildDate != "" {
		outputString += " (" + buildDate + ")"
	}

	return outputString + ", Go Version: " + runtimeVersion
}
