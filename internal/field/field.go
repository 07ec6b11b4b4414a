// Package field is for analysing Go struct fields (and their "egg" tags) for use as GraphQL fields
package field

// field.go extracts GraphQL field info from a Go struct field

import (
	"context"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

type (
	// TagHolder is the type of a blank (_) field used to attach metadata to the enclosing struct
	TagHolder struct{}

	// Method is the type of a blank (_) field whose tag declares a GraphQL field resolved by a Go method
	Method struct{}

	// ID is a string type that maps to the GraphQL ID scalar
	ID string

	// Unmarshaler is implemented by (a pointer to) a custom scalar type so it can be decoded from a string
	Unmarshaler interface {
		UnmarshalGraphQL(string) error
	}

	// Marshaler is implemented by custom scalars that are not encoded using their String method
	Marshaler interface {
		MarshalGraphQL() (string, error)
	}
)

var (
	// TagHolderType etc are used to recognise the special placeholder field types
	TagHolderType = reflect.TypeOf(TagHolder{})
	MethodType    = reflect.TypeOf(Method{})
	IDType        = reflect.TypeOf(ID(""))

	// UnmarshalerType is used to recognise custom scalars
	UnmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

	// ContextType is used to check if a resolver function takes a context.Context (1st) parameter
	ContextType = reflect.TypeOf((*context.Context)(nil)).Elem()

	// ErrorType is used to check if a resolver function returns a (2nd) error return value
	ErrorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Info is returned by Get with info extracted from a struct field to be used as a GraphQL field.
// The info is obtained from the field's name, type and "egg" (metadata) tag.
type Info struct {
	Name        string // field name for use in GraphQL queries - based on metadata (tag) or Go struct field name
	GQLTypeName string // GraphQL type name (may be empty but is required for GraphQL enums)

	// The following are for function (and method) resolvers only
	Args            []string // name(s) of args to resolver function obtained from metadata
	ArgTypes        []string // corresp. GraphQL type name (if not derived from the parameter type)
	ArgDefaults     []string // corresp. default value(s) (GraphQL literals) where an empty string means there is no default
	ArgDescriptions []string // corresp. description of the argument

	Nullable bool   // pointer fields or those with the "nullable" option are allowed to be null
	Source   bool   // "source" option - the source (parent) object is passed to the resolver before the args
	Method   string // "method=" option - name of the Go method implementing the field

	// Description is text used as a GraphQL description for the field - taken from the tag string after any # character (outside brackets)
	Description string
}

// Get checks if a field in a Go struct is exported and, if so, returns the GraphQL field info. incl. the
// GQL field name, derived from the Go field name (with 1st char lower-cased) or taken from the tag (metadata).
// A blank (_) field of type Method is also returned, but with no name derived from the Go field.
// If the field is not exported or the tag is a dash (-) then nil is returned, but no error.
func Get(f *reflect.StructField) (fieldInfo *Info, err error) {
	if f.Name == "_" {
		if f.Type != MethodType {
			return // other blank fields are annotations of the struct
		}
	} else if f.PkgPath != "" {
		return // unexported field
	}

	if fieldInfo, err = GetInfoFromTag(f.Tag.Get(TagName)); err != nil {
		return nil, fmt.Errorf("%w getting tag info from field %q", err, f.Name)
	}
	if fieldInfo == nil {
		return // explicitly omitted field
	}

	if f.Name == "_" {
		if fieldInfo.Name == "" && fieldInfo.Method == "" {
			return nil, fmt.Errorf("a Method field needs a name or method option (tag %q)", f.Tag.Get(TagName))
		}
		if fieldInfo.Method == "" {
			fieldInfo.Method = GoName(fieldInfo.Name)
		}
		if fieldInfo.Name == "" {
			fieldInfo.Name = GraphQLName(fieldInfo.Method)
		}
		return
	}
	if fieldInfo.Method != "" {
		return nil, fmt.Errorf("method option can only be used on a Method field (not %q)", f.Name)
	}

	// if no name was provided in the tag generate a GraphQL name from the field name
	if fieldInfo.Name == "" {
		fieldInfo.Name = GraphQLName(f.Name)
	}
	if f.Type.Kind() == reflect.Ptr {
		fieldInfo.Nullable = true // Pointer types can be null
	}
	if f.Type.Kind() != reflect.Func {
		if fieldInfo.Args != nil {
			return nil, fmt.Errorf("arguments cannot be supplied for non-function field %q", f.Name)
		}
		if fieldInfo.Source {
			return nil, fmt.Errorf("source option cannot be used with non-function field %q", f.Name)
		}
	}
	return
}

// GraphQLName makes a GraphQL name from a Go name (can't be empty string) with lower-case first letter
func GraphQLName(s string) string {
	first, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(first)) + s[n:]
}

// GoName is the reverse of GraphQLName, ie it upper-cases the 1st letter
func GoName(s string) string {
	first, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[n:]
}
