// Package apperrors holds the error taxonomy shared by the service and API layers.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports malformed input or a forbidden transition
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for the given fields
func NewValidationError(message string, fields ...string) error {
	return &ValidationError{Message: message, Fields: fields}
}

// NewMissingFieldsError names every missing field in the message
func NewMissingFieldsError(fields []string) error {
	return &ValidationError{
		Message: "Missing required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// InvalidIdentifierError reports an id that is not well formed
type InvalidIdentifierError struct {
	ID string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q", e.ID)
}

// NewInvalidIdentifier is a helper constructor
func NewInvalidIdentifier(id string) error {
	return &InvalidIdentifierError{ID: id}
}

// NotFoundError reports an absent (or soft-deleted) resource
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NewCampaignNotFound is a helper constructor
func NewCampaignNotFound(id string) error {
	return &NotFoundError{Resource: "campaign", ID: id}
}

// GenerationError reports a failed or empty upstream message generation
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return "message generation failed"
	}
	return "message generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err belongs to the client-error class
func IsValidation(err error) bool {
	var verr *ValidationError
	var iderr *InvalidIdentifierError
	return errors.As(err, &verr) || errors.As(err, &iderr)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsGeneration reports whether err is a GenerationError
func IsGeneration(err error) bool {
	var gerr *GenerationError
	return errors.As(err, &gerr)
}
