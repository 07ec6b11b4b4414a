package binder

import "fmt"

const reasonNoTarget = "either a resolve function or a target method on the source object is required"

// MissingArgumentError is returned when a request has no value for an argument that has no default.
// The execution engine validates required arguments, so this means the schema and
// the resolver disagree - it is a server bug, not a client error.
type MissingArgumentError struct {
	Field    string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("expected argument %q was not provided (field %q)", e.Argument, e.Field)
}

// InvalidFieldConfigurationError means a FieldSpec cannot be resolved - eg it has no dispatch target
type InvalidFieldConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldConfigurationError) Error() string {
	if e.Field == "" {
		return "invalid field configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration of field %q: %s", e.Field, e.Reason)
}
