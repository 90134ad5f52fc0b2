package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingCart     = errors.New("cart is required")
	ErrMissingDelivery = errors.New("delivery is required")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidCategory = errors.New("category does not exist")
	ErrMissingImage    = errors.New("no image was uploaded")
)

// ValidationError carries a user-facing message for a rejected input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validationError converts the first validator failure into a ValidationError
func validationError(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	field := verrs[0].Field()
	msg, ok := messages[field]
	if !ok {
		msg = "Campo inválido: " + field
	}
	return &ValidationError{Field: field, Message: msg}
}
