package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Sentinel error kinds. Use errors.Is to classify a returned error.
var (
	ErrValidation = errors.New(config.ErrValidation)
	ErrNotFound   = errors.New(config.ErrNotFound)
)

// ValidationError reports a rejected field value or a malformed command.
// MessageID is the translation key the console shows to the user.
type ValidationError struct {
	Field     string
	Value     string
	MessageID string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", config.ErrValidation, e.MessageID)
	}
	return fmt.Sprintf("%s: %s %q", config.ErrValidation, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrValidation) hold for every *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewUsageError returns a ValidationError for a wrong argument count.
func NewUsageError(messageID string) error {
	return &ValidationError{MessageID: messageID}
}

// NotFoundError reports an unknown contact name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", config.ErrNotFound, e.Name)
}

// Is makes errors.Is(err, ErrNotFound) hold for every *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
