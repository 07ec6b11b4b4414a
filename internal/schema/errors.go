package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrFrozen is returned when the schema is modified after it has been built
var ErrFrozen = errors.New("schema is frozen")

// DuplicateFieldError is returned when two contributions to an object type have a field with the same name
type DuplicateFieldError struct {
	Type  string
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("field %q of type %s is declared more than once", e.Field, e.Type)
}

// DuplicateTypeError is returned when a type is registered with a name already in use
type DuplicateTypeError struct {
	Name string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("type %s is already registered", e.Name)
}

// UnknownTypeError is returned when a type is looked up by a name that is not registered
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("type %s is not registered", e.Name)
}
