// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const (
	// Reset is the escape sequence that restores the default terminal style.
	Reset = "\033[0m"

	highIntensitySuffix = "_H"
	highIntensityOffset = color.FgHiBlack - color.FgBlack

	boldPrefix      = "1;"
	underlinePrefix = "4;"
)

var baseColours = map[string]color.Attribute{
	"BLACK":  color.FgBlack,
	"RED":    color.FgRed,
	"GREEN":  color.FgGreen,
	"YELLOW": color.FgYellow,
	"BLUE":   color.FgBlue,
	"PURPLE": color.FgMagenta,
	"CYAN":   color.FgCyan,
	"WHITE":  color.FgWhite,
}

// ColourCode returns the ANSI escape sequence for baseColour. A trailing "_H"
// selects the high intensity variant. When both bold and underline are set,
// bold is used.
func ColourCode(baseColour string, bold, underline bool) (string, error) {
	name := strings.ToUpper(baseColour)
	highIntensity := false
	if trimmed, found := strings.CutSuffix(name, highIntensitySuffix); found {
		name = trimmed
		highIntensity = true
	}

	code, ok := baseColours[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidColour, baseColour)
	}
	if highIntensity {
		code += highIntensityOffset
	}

	prefix := ""
	switch {
	case bold:
		prefix = boldPrefix
	case underline:
		prefix = underlinePrefix
	}

	return "\033[" + prefix + strconv.Itoa(int(code)) + "m", nil
}

// DefaultColourCoding returns the console colour of every severity.
func DefaultColourCoding() map[string]string {
	return map[string]string{
		DEBUG.String():    mustColourCode("CYAN"),
		INFO.String():     mustColourCode("GREEN"),
		WARNING.String():  mustColourCode("YELLOW"),
		ERROR.String():    mustColourCode("RED"),
		CRITICAL.String(): mustColourCode("RED_H"),
	}
}

func mustColourCode(name string) string {
	code, err := ColourCode(name, false, false)
	if err != nil {
		panic(err)
	}
	return code
}
