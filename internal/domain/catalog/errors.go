package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NotFoundError reports a missing farm or crop. Query is set instead of ID
// when a search produced no match.
type NotFoundError struct {
	Kind  Kind
	ID    uuid.UUID
	Query string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.ID == uuid.Nil && e.Query != "" {
		return fmt.Sprintf("no %s matches %q", e.Kind, e.Query)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ValidationError reports the first attribute that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidArgumentError reports a parameter outside its allowed set.
type InvalidArgumentError struct {
	Parameter string
	Value     string
	Allowed   []string
}

func (e *InvalidArgumentError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s %q", e.Parameter, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: must be one of %s", e.Parameter, e.Value, strings.Join(e.Allowed, ", "))
}

func NotFound(kind Kind, id uuid.UUID) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func InvalidArgument(parameter, value string, allowed ...string) error {
	return &InvalidArgumentError{Parameter: parameter, Value: value, Allowed: allowed}
}
