// Package typemapper maps Go types to GraphQL type references, creating (and registering) the
// object, input, scalar and enum types that they need.
package typemapper

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/LiuXiaoZhuang/graphql/internal/field"
	"github.com/LiuXiaoZhuang/graphql/internal/naming"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
	"github.com/LiuXiaoZhuang/graphql/internal/typegen"
)

// Mapper implements typegen.RecursiveTypeMapper
type Mapper struct {
	gen      *typegen.Generator
	reader   typegen.AnnotationReader
	registry *schema.Registry
	naming   naming.Default

	classes map[reflect.Type]reflect.Type // Go type of values -> annotated struct
	inputs  map[reflect.Type]string       // structs used as input -> name of input type
}

func New(gen *typegen.Generator, reader typegen.AnnotationReader, registry *schema.Registry) *Mapper {
	return &Mapper{
		gen:      gen,
		reader:   reader,
		registry: registry,
		classes:  make(map[reflect.Type]reflect.Type),
		inputs:   make(map[reflect.Type]string),
	}
}

// Add makes an annotated struct known to the mapper.  Values of the annotation's class
// are then mapped to the object type created from annotated.
func (m *Mapper) Add(annotated reflect.Type) error {
	ann, err := m.reader.GetTypeAnnotation(annotated)
	if err != nil {
		return err
	}
	if ann == nil {
		return &typegen.MissingTypeAnnotationError{Class: annotated}
	}
	if previous, ok := m.classes[ann.Class]; ok && previous != ann.Annotated {
		return fmt.Errorf("both %v and %v provide the type for %v", previous, ann.Annotated, ann.Class)
	}
	m.classes[ann.Class] = ann.Annotated
	return nil
}

// Annotated returns the annotated struct for a class
func (m *Mapper) Annotated(class reflect.Type) (reflect.Type, bool) {
	annotated, ok := m.classes[deref(class)]
	return annotated, ok
}

// AddEnum registers an enum type that can be used by name (eg `egg:"unit:Unit"`)
func (m *Mapper) AddEnum(enum *schema.EnumType) error {
	return m.registry.Register(enum)
}

func (m *Mapper) CanMapClassToType(class reflect.Type) bool {
	_, ok := m.classes[deref(class)]
	return ok
}

func (m *Mapper) MapClassToType(class reflect.Type) (*schema.ObjectType, error) {
	annotated, ok := m.classes[deref(class)]
	if !ok {
		return nil, fmt.Errorf("%v cannot be mapped to a GraphQL type as no type annotation is known for it", class)
	}
	return m.gen.MapAnnotatedObject(annotated, m)
}

// MapOutputType returns the GraphQL type of a field with Go type t.  If override is not empty it
// is used as the GraphQL type (eg for enums) but any object type in t is still mapped.
func (m *Mapper) MapOutputType(t reflect.Type, nullable bool, override string) (*ast.Type, error) {
	if override != "" {
		if base := baseType(t); base.Kind() == reflect.Struct && m.CanMapClassToType(base) {
			if _, err := m.MapClassToType(base); err != nil {
				return nil, err
			}
		}
		return overrideType(override, nullable)
	}
	return m.mapType(t, nullable, false)
}

// MapInputType returns the GraphQL type of an argument or input field with Go type t
func (m *Mapper) MapInputType(t reflect.Type, nullable bool, override string) (*ast.Type, error) {
	if override != "" {
		if base := baseType(t); base.Kind() == reflect.Struct && !isScalar(base) {
			if _, err := m.mapInput(base); err != nil {
				return nil, err
			}
		}
		return overrideType(override, nullable)
	}
	return m.mapType(t, nullable, true)
}

func (m *Mapper) mapType(t reflect.Type, nullable, input bool) (*ast.Type, error) {
	if t.Kind() == reflect.Ptr {
		return m.mapType(t.Elem(), true, input)
	}

	var name string
	switch {
	case t == field.IDType:
		name = "ID"
	case isScalar(t):
		if name = naming.TypeName(t); !m.registry.HasType(name) {
			if err := m.registry.Register(&schema.ScalarType{Name: name, Class: t}); err != nil {
				return nil, err
			}
		}
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		elem, err := m.mapType(t.Elem(), false, input)
		if err != nil {
			return nil, err
		}
		retval := ast.ListType(elem, nil)
		retval.NonNull = !nullable
		return retval, nil
	case t.Kind() == reflect.Bool:
		name = "Boolean"
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Uint64:
		name = "Int"
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		name = "Float"
	case t.Kind() == reflect.String:
		name = "String"
	case t.Kind() == reflect.Struct && input:
		var err error
		if name, err = m.mapInput(t); err != nil {
			return nil, err
		}
	case t.Kind() == reflect.Struct:
		obj, err := m.MapClassToType(t)
		if err != nil {
			return nil, err
		}
		name = obj.Name
	default:
		return nil, fmt.Errorf("%v (kind %v) cannot be used as a GraphQL type", t, t.Kind())
	}
	retval := ast.NamedType(name, nil)
	retval.NonNull = !nullable
	return retval, nil
}

// mapInput registers (once) an input type made from the struct t
func (m *Mapper) mapInput(t reflect.Type) (string, error) {
	if name, ok := m.inputs[t]; ok {
		return name, nil
	}
	name := m.naming.GetInputTypeName(t)
	input := &schema.InputObjectType{Name: name, Class: t}
	if err := m.registry.Register(input); err != nil {
		return "", errors.Wrapf(err, "registering input type for %v", t)
	}
	m.inputs[t] = name // before fields are added, in case of recursive input types

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fieldInfo, err := field.Get(&f)
		if err != nil {
			return "", errors.Wrapf(err, "getting field %q of input %s", f.Name, name)
		}
		if fieldInfo == nil || f.Name == "_" || f.Type.Kind() == reflect.Func {
			continue
		}
		typ, err := m.MapInputType(f.Type, fieldInfo.Nullable, fieldInfo.GQLTypeName)
		if err != nil {
			return "", errors.Wrapf(err, "type of field %q of input %s", f.Name, name)
		}
		input.Fields = append(input.Fields, &schema.InputField{
			Name:        fieldInfo.Name,
			Description: fieldInfo.Description,
			Type:        typ,
		})
	}
	return name, nil
}

// overrideType parses a GraphQL type given in a tag.  The type is made non-null unless nullable.
func overrideType(override string, nullable bool) (*ast.Type, error) {
	typ, err := schema.ParseTypeRef(override)
	if err != nil {
		return nil, err
	}
	if nullable {
		typ.NonNull = false
	} else if override[len(override)-1] != '!' {
		typ.NonNull = true
	}
	return typ, nil
}

// isScalar returns true for custom scalar types (that can be decoded from a string)
func isScalar(t reflect.Type) bool {
	return t.Kind() != reflect.Ptr && reflect.PointerTo(t).Implements(field.UnmarshalerType)
}

// baseType gets the type ignoring any pointers, slices etc
func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	return t
}

func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
