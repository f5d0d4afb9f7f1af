// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColourCode(t *testing.T) {
	t.Parallel()

	colours := []string{"BLACK", "RED", "GREEN", "YELLOW", "BLUE", "PURPLE", "CYAN", "WHITE"}
	styles := map[string]struct {
		bold      bool
		underline bool
		prefix    string
	}{
		"no style":                 {},
		"bold":                     {bold: true, prefix: "1;"},
		"underline":                {underline: true, prefix: "4;"},
		"bold wins over underline": {bold: true, underline: true, prefix: "1;"},
	}

	for index, colour := range colours {
		for _, highIntensity := range []bool{false, true} {
			name := colour
			code := 30 + index
			if highIntensity {
				name += "_H"
				code += 60
			}

			for styleName, style := range styles {
				t.Run(name+" "+styleName, func(t *testing.T) {
					t.Parallel()

					escape, err := ColourCode(name, style.bold, style.underline)
					require.NoError(t, err)
					assert.Equal(t, "\033["+style.prefix+strconv.Itoa(code)+"m", escape)
				})
			}
		}
	}
}

func TestColourCodeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	upper, err := ColourCode("RED_H", false, false)
	require.NoError(t, err)
	lower, err := ColourCode("red_h", false, false)
	require.NoError(t, err)

	assert.Equal(t, "\033[91m", upper)
	assert.Equal(t, upper, lower)
}

func TestColourCodeInvalidColour(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"ORANGE", "", "_H", "RED_HH", "MAGENTA"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			escape, err := ColourCode(name, true, false)
			require.ErrorIs(t, err, ErrInvalidColour)
			assert.Empty(t, escape)
		})
	}
}

func TestDefaultColourCoding(t *testing.T) {
	t.Parallel()

	coding := DefaultColourCoding()
	assert.Equal(t, map[string]string{
		"DEBUG":    "\033[36m",
		"INFO":     "\033[32m",
		"WARNING":  "\033[33m",
		"ERROR":    "\033[31m",
		"CRITICAL": "\033[91m",
	}, coding)

	for _, severity := range AllSeverities() {
		assert.Contains(t, coding, severity.String())
	}
}
