// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package access

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidInstance reports an AccessInstance that fails validation.
	ErrInvalidInstance = errors.New("invalid access instance")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// AccessInstance records a student being inside a room of a block between
// InTime and OutTime.
type AccessInstance struct {
	StudentID string    `json:"studentId" validate:"required"`
	RoomID    string    `json:"roomId" validate:"required"`
	BlockID   string    `json:"blockId" validate:"required"`
	InTime    time.Time `json:"inTime" validate:"required"`
	OutTime   time.Time `json:"outTime" validate:"required,gtefield=InTime"`
}

// Validate checks that every field is set and OutTime is not before InTime.
func (a AccessInstance) Validate() error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidInstance, err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		problems = append(problems, fieldError.Field()+" failed "+fieldError.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInstance, strings.Join(problems, ", "))
}
