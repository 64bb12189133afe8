package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("product not found in cart")
)

type ValidationKind string

const (
	KindMissingField ValidationKind = "missing_field"
	KindNonPositive  ValidationKind = "non_positive"
	KindOutOfRange   ValidationKind = "out_of_range"
)

// ValidationError reports input the cart refuses to store. Kind separates an
// absent field from a present but unacceptable one.
type ValidationError struct {
	Kind    ValidationKind
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Fields)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found in cart", e.ProductID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IsMissingField reports whether err is a ValidationError for absent input.
func IsMissingField(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == KindMissingField
}

func missingFields(fields ...string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingField,
		Fields:  fields,
		Message: fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", ")),
	}
}

func nonPositive(fields ...string) *ValidationError {
	return &ValidationError{
		Kind:    KindNonPositive,
		Fields:  fields,
		Message: fmt.Sprintf("%s must be greater than zero", strings.Join(fields, ", ")),
	}
}

func quantityTooLarge() *ValidationError {
	return &ValidationError{
		Kind:    KindOutOfRange,
		Fields:  []string{"quantity"},
		Message: fmt.Sprintf("quantity must not exceed %d", maxQuantity),
	}
}

func totalTooLarge() *ValidationError {
	return &ValidationError{
		Kind:    KindOutOfRange,
		Fields:  []string{"price", "quantity"},
		Message: "price times quantity overflows the cart total",
	}
}
