// Package apperr defines the engine's error taxonomy. Every failure is local to
// a single request; none of them corrupts shared state because none exists.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Key identifies a specific failure for callers and UI mapping. Don't change
// these values without a corresponding change on the consuming side.
type Key string

const (
	KeyAgeOutOfRange     Key = "ErrorAgeOutOfRange"
	KeyInvalidProfile    Key = "ErrorInvalidProfile"
	KeyUnknownFrequency  Key = "ErrorUnknownFrequency"
	KeyMissingIdentifier Key = "ErrorMissingIdentifier"
	KeyUnknownPlan       Key = "ErrorUnknownPlan"
	KeyUnknownProduct    Key = "ErrorUnknownProduct"
	KeyPlanInactive      Key = "ErrorPlanInactive"
	KeyNoPlansAvailable  Key = "ErrorNoPlansAvailable"
	KeyDegenerateRequest Key = "ErrorDegenerateRequest"
	KeyGenericInternal   Key = "ErrorGenericInternal"
)

// Category groups keys for HTTP status mapping and logging
type Category string

const (
	CategoryValidation  Category = "validation"
	CategoryNotFound    Category = "not_found"
	CategoryNoPlans     Category = "no_plans"
	CategoryComputation Category = "computation"
	CategoryInternal    Category = "internal"
)

// Error holds enough context for a caller to reprompt the user: which
// constraint failed and, via Extras, the allowed range.
type Error struct {
	Err      error          `json:"-"`
	Key      Key            `json:"key"`
	Category Category       `json:"-"`
	Message  string         `json:"message"`
	Extras   map[string]any `json:"extras,omitempty"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the category to a response status
func (e *Error) HTTPStatus() int {
	switch e.Category {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound, CategoryNoPlans:
		return http.StatusNotFound
	case CategoryComputation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New returns an Error with its key, category and message set
func New(key Key, category Category, message string) *Error {
	return &Error{Key: key, Category: category, Message: message}
}

// NewValidation returns a validation error for a single rejected request
func NewValidation(key Key, message string) *Error {
	return New(key, CategoryValidation, message)
}

// NewAgeOutOfRange reports an applicant age outside the plan's allowed bounds
func NewAgeOutOfRange(age, minAge, maxAge int) *Error {
	e := New(KeyAgeOutOfRange, CategoryValidation,
		fmt.Sprintf("age %d is outside the plan's allowed range [%d, %d]", age, minAge, maxAge))
	e.Extras = map[string]any{"age": age, "min_age": minAge, "max_age": maxAge}
	return e
}

// NewNotFound reports a missing or inactive plan/product reference
func NewNotFound(key Key, message string) *Error {
	return New(key, CategoryNotFound, message)
}

// NewNoPlansAvailable reports a nearest-plan match attempted over an empty set
func NewNoPlansAvailable(productID string) *Error {
	e := New(KeyNoPlansAvailable, CategoryNoPlans, "no plans available to match against")
	if productID != "" {
		e.Extras = map[string]any{"product_id": productID}
	}
	return e
}

// NewComputation reports a degenerate configuration that would make the
// premium formula undefined
func NewComputation(message string) *Error {
	return New(KeyDegenerateRequest, CategoryComputation, message)
}

// Wrap attaches an underlying cause
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// As extracts an *Error from an error chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCategory reports whether err carries an Error of the given category
func IsCategory(err error, category Category) bool {
	if appErr, ok := As(err); ok {
		return appErr.Category == category
	}
	return false
}
