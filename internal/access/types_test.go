// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package access

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInstance() AccessInstance {
	in := time.Date(2024, time.May, 6, 8, 0, 0, 0, time.UTC)
	return AccessInstance{
		StudentID: "s-001",
		RoomID:    "lab-3",
		BlockID:   "B",
		InTime:    in,
		OutTime:   in.Add(90 * time.Minute),
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		mutate        func(*AccessInstance)
		expectedError string
	}{
		"valid instance": {
			mutate: func(*AccessInstance) {},
		},
		"out time equal to in time": {
			mutate: func(a *AccessInstance) { a.OutTime = a.InTime },
		},
		"missing student": {
			mutate:        func(a *AccessInstance) { a.StudentID = "" },
			expectedError: "invalid access instance: StudentID failed required",
		},
		"missing room and block": {
			mutate:        func(a *AccessInstance) { a.RoomID, a.BlockID = "", "" },
			expectedError: "invalid access instance: RoomID failed required, BlockID failed required",
		},
		"out time before in time": {
			mutate:        func(a *AccessInstance) { a.OutTime = a.InTime.Add(-time.Second) },
			expectedError: "invalid access instance: OutTime failed gtefield",
		},
		"missing in time": {
			mutate:        func(a *AccessInstance) { a.InTime = time.Time{} },
			expectedError: "invalid access instance: InTime failed required",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			instance := validInstance()
			test.mutate(&instance)

			err := instance.Validate()
			if test.expectedError == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidInstance)
			assert.EqualError(t, err, test.expectedError)
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(validInstance())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"studentId": "s-001",
		"roomId": "lab-3",
		"blockId": "B",
		"inTime": "2024-05-06T08:00:00Z",
		"outTime": "2024-05-06T09:30:00Z"
	}`, string(data))
}
