// Package schema holds the GraphQL type model that is built from Go types, the registry of all types
// of a schema, and the code to render the registry as SDL (schema definition language) text.
package schema

// types.go has the GraphQL types that can be registered: objects, input objects, enums and scalars

import (
	"fmt"
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/LiuXiaoZhuang/graphql/internal/binder"
)

// Kind is the GraphQL kind of a named type (as used in introspection)
type Kind string

const (
	KindObject      Kind = "OBJECT"
	KindInputObject Kind = "INPUT_OBJECT"
	KindEnum        Kind = "ENUM"
	KindScalar      Kind = "SCALAR"
)

// Type is any named type of the schema
type Type interface {
	TypeName() string
	Kind() Kind
}

type (
	// Field is a field of an object type together with the resolver that produces its value
	Field struct {
		Name        string
		Description string
		Type        *ast.Type
		Args        []binder.Argument
		Spec        *binder.FieldSpec
		Resolver    binder.Resolver
	}

	// FieldsThunk produces one contribution of fields to an object type.
	// It is not called until the fields of the type are first needed.
	FieldsThunk func() ([]*Field, error)

	// ObjectType is a GraphQL object type whose fields are accumulated from one or more contributions
	// (the type's own fields plus those of any extensions).  It may only be modified during the build.
	ObjectType struct {
		Name        string
		Description string
		Class       reflect.Type // the Go type that values of this object type have (may be nil for root types)

		pending   []FieldsThunk
		fields    []*Field
		index     map[string]*Field
		resolving bool
		frozen    bool
	}

	// InputField is a field of an input object
	InputField struct {
		Name           string
		Description    string
		Type           *ast.Type
		DefaultLiteral string
	}

	// InputObjectType is a GraphQL input type made from a Go struct that is used as an argument
	InputObjectType struct {
		Name        string
		Description string
		Class       reflect.Type
		Fields      []*InputField
	}

	// EnumType has the values (in order) of a GraphQL enum.  A Go integer holds the index of the value.
	EnumType struct {
		Name        string
		Description string
		Values      []string
	}

	// ScalarType is a custom scalar (the built-in scalars are not registered)
	ScalarType struct {
		Name        string
		Description string
		Class       reflect.Type
	}
)

// NewObjectType creates an object type with no fields
func NewObjectType(name, description string, class reflect.Type) *ObjectType {
	return &ObjectType{Name: name, Description: description, Class: class, index: make(map[string]*Field)}
}

func (o *ObjectType) TypeName() string { return o.Name }
func (o *ObjectType) Kind() Kind       { return KindObject }

// AddFields appends a contribution of fields.  Contributions are evaluated in the order they were added.
func (o *ObjectType) AddFields(thunk FieldsThunk) error {
	if o.frozen {
		return fmt.Errorf("%w: cannot add fields to %s", ErrFrozen, o.Name)
	}
	o.pending = append(o.pending, thunk)
	return nil
}

// Fields returns all the fields of the type, first evaluating any contributions not yet seen.
// If two contributions provide a field with the same name a *DuplicateFieldError is returned.
func (o *ObjectType) Fields() ([]*Field, error) {
	if len(o.pending) == 0 {
		return o.fields, nil
	}
	if o.resolving {
		return nil, fmt.Errorf("fields of %s were requested while they were being built", o.Name)
	}
	o.resolving = true
	defer func() { o.resolving = false }()

	if o.index == nil {
		o.index = make(map[string]*Field)
	}
	for len(o.pending) > 0 {
		contribution, err := o.pending[0]()
		if err != nil {
			return nil, err
		}
		for i, f := range contribution {
			if _, ok := o.index[f.Name]; ok {
				return nil, &DuplicateFieldError{Type: o.Name, Field: f.Name}
			}
			for _, other := range contribution[:i] {
				if other.Name == f.Name {
					return nil, &DuplicateFieldError{Type: o.Name, Field: f.Name}
				}
			}
		}
		o.pending = o.pending[1:]
		for _, f := range contribution {
			o.index[f.Name] = f
			o.fields = append(o.fields, f)
		}
	}
	return o.fields, nil
}

// Field returns the field called name or nil if there is no such field
func (o *ObjectType) Field(name string) (*Field, error) {
	if _, err := o.Fields(); err != nil {
		return nil, err
	}
	return o.index[name], nil
}

// Pending returns the number of contributions that have not been evaluated
func (o *ObjectType) Pending() int { return len(o.pending) }

func (i *InputObjectType) TypeName() string { return i.Name }
func (i *InputObjectType) Kind() Kind       { return KindInputObject }

func (e *EnumType) TypeName() string { return e.Name }
func (e *EnumType) Kind() Kind       { return KindEnum }

// Index returns the position of value in the enum, or -1 if it is not a value of the enum
func (e *EnumType) Index(value string) int {
	for i, v := range e.Values {
		if v == value {
			return i
		}
	}
	return -1
}

func (s *ScalarType) TypeName() string { return s.Name }
func (s *ScalarType) Kind() Kind       { return KindScalar }
