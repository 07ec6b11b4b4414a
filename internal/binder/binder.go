// Package binder turns a field's static description (FieldSpec) into a resolver function that a
// GraphQL execution engine invokes for each request.
//
// A resolver validates and converts the request arguments, optionally passes on the source (parent)
// object, then dispatches to either a free function (FieldSpec.Resolve) or a method of the source
// object (FieldSpec.TargetMethod).  The two dispatch paths have different calling conventions:
//
//	Resolve:      params = [info, source?, arg1, arg2, ...]
//	TargetMethod: source.Method(source?, arg1, arg2, ...)   // no info, source is also the receiver
package binder

import (
	"context"
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"
)

type (
	// Resolver is the per-request function for one field, as called by the host execution engine
	Resolver func(ctx context.Context, source any, rawArgs map[string]any, info *ResolveInfo) (any, error)

	// ResolveFunc is a "free function" field implementation.  params[0] is always the *ResolveInfo,
	// followed by the source object (if injected) then the converted arguments in declaration order.
	ResolveFunc func(ctx context.Context, params []any) (any, error)

	// ResolveInfo holds per-request metadata about the field being resolved (filled in by the host engine)
	ResolveInfo struct {
		ParentType string // name of the object type that owns the field
		FieldName  string
		Path       []any                    // response path: strings (field aliases) and ints (list indexes)
		Field      *ast.Field               // the field of the query document (may be nil)
		Operation  *ast.OperationDefinition // the operation being executed (may be nil)
		Variables  map[string]any           // coerced operation variables
	}

	// Argument describes one argument of a field
	Argument struct {
		Name        string
		Description string
		Type        *ast.Type    // GraphQL input type
		GoType      reflect.Type // type the raw (transport) value is converted to
		Default     any          // already of GoType; only used if HasDefault
		HasDefault  bool

		// DefaultLiteral is the GraphQL text of the default (eg `[1, 2]` or `RED`), if known
		DefaultLiteral string
	}

	// FieldSpec is the immutable description of one resolvable field.
	// Exactly one of Resolve or TargetMethod should be set.  If both are set Resolve is used.
	FieldSpec struct {
		Name         string
		Description  string
		Type         *ast.Type // GraphQL output type
		Args         []Argument
		Resolve      ResolveFunc
		TargetMethod string // name of the Go method to call on the source object
		InjectSource bool   // pass the source object (before the arguments)
	}

	// ArgumentResolver converts a raw (transport) argument value to the argument's declared type.
	// Implementations must be pure (no side effects beyond conversion and validation).
	ArgumentResolver interface {
		Resolve(raw any, arg *Argument) (any, error)
	}

	// Passthrough is an ArgumentResolver that does no conversion
	Passthrough struct{}
)

// Resolve returns the raw value unchanged
func (Passthrough) Resolve(raw any, _ *Argument) (any, error) { return raw, nil }

// Bind creates the resolver for a field.  The returned function only uses data captured here
// (which is never modified) so it is safe to call concurrently.
// If args is nil then argument values are passed on without conversion.
func Bind(spec *FieldSpec, args ArgumentResolver) Resolver {
	if args == nil {
		args = Passthrough{}
	}
	name := spec.Name
	arguments := spec.Args
	resolve, method, injectSource := spec.Resolve, spec.TargetMethod, spec.InjectSource

	return func(ctx context.Context, source any, rawArgs map[string]any, info *ResolveInfo) (any, error) {
		params := make([]any, 0, len(arguments)+2)
		if resolve != nil {
			params = append(params, info) // a resolve function always gets the info first
		}
		if injectSource {
			params = append(params, source)
		}
		for i := range arguments {
			arg := &arguments[i]
			if raw, ok := rawArgs[arg.Name]; ok && raw != nil {
				value, err := args.Resolve(raw, arg)
				if err != nil {
					return nil, err
				}
				params = append(params, value)
			} else if arg.HasDefault {
				params = append(params, arg.Default)
			} else {
				return nil, &MissingArgumentError{Field: name, Argument: arg.Name}
			}
		}

		if resolve != nil {
			return resolve(ctx, params)
		}
		if method != "" {
			return CallMethod(ctx, source, method, params)
		}
		return nil, &InvalidFieldConfigurationError{Field: name, Reason: reasonNoTarget}
	}
}

// Validate checks a FieldSpec when the schema is built, so that configuration
// problems are found before the first request.
func (spec *FieldSpec) Validate() error {
	if spec.Name == "" {
		return &InvalidFieldConfigurationError{Reason: "field has no name"}
	}
	if spec.Resolve == nil && spec.TargetMethod == "" {
		return &InvalidFieldConfigurationError{Field: spec.Name, Reason: reasonNoTarget}
	}
	seen := make(map[string]struct{}, len(spec.Args))
	for _, arg := range spec.Args {
		if _, ok := seen[arg.Name]; ok {
			return &InvalidFieldConfigurationError{Field: spec.Name, Reason: "argument " + arg.Name + " is declared more than once"}
		}
		seen[arg.Name] = struct{}{}
	}
	return nil
}
