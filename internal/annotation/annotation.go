// Package annotation reads the type annotations of Go structs.  Go has no annotations so they are
// attached to a blank (_) field of the struct using an "egg" tag:
//
//	_ graphql.TagHolder `egg:"type=User # a registered user"` // the struct itself is the GraphQL type
//	_ *User             `egg:"type"`                         // the struct provides the fields of User
//	_ *User             `egg:"extend"`                       // the struct adds fields to the User type
package annotation

import (
	"fmt"
	"reflect"

	"github.com/LiuXiaoZhuang/graphql/internal/field"
)

type (
	// Type declares a GraphQL object type
	Type struct {
		Name        string       // explicit type name (may be empty)
		Description string       // description for the schema (may be empty)
		Class       reflect.Type // the Go type that values of the GraphQL type have
		Annotated   reflect.Type // the struct carrying the annotation
		Self        bool         // Class is the annotated struct (rather than a separate provider struct)
	}

	// ExtendType declares that a struct adds fields to another type
	ExtendType struct {
		Name      string       // explicit name of the extended type (may be empty)
		Class     reflect.Type // the Go type of the extended type
		Annotated reflect.Type // the struct carrying the annotation
	}

	// Reader finds annotations using reflection on the struct fields
	Reader struct{}
)

// GetTypeAnnotation returns the type annotation of t, which is nil (with no error) if there is none
func (Reader) GetTypeAnnotation(t reflect.Type) (*Type, error) {
	t, f, tag, err := find(t, field.TypeKeyword)
	if tag == nil || err != nil {
		return nil, err
	}
	retval := &Type{Name: tag.Name, Description: tag.Description, Class: t, Annotated: t}
	if f.Type == field.TagHolderType {
		retval.Self = true
	} else if retval.Class, err = target(f); err != nil {
		return nil, fmt.Errorf("%w in type annotation of %v", err, t)
	}
	return retval, nil
}

// GetExtendTypeAnnotation returns the extend annotation of t, which is nil (with no error) if there is none
func (Reader) GetExtendTypeAnnotation(t reflect.Type) (*ExtendType, error) {
	t, f, tag, err := find(t, field.ExtendKeyword)
	if tag == nil || err != nil {
		return nil, err
	}
	if f.Type == field.TagHolderType {
		return nil, fmt.Errorf("extend annotation of %v must use the type being extended (not TagHolder)", t)
	}
	class, err := target(f)
	if err != nil {
		return nil, fmt.Errorf("%w in extend annotation of %v", err, t)
	}
	return &ExtendType{Name: tag.Name, Class: class, Annotated: t}, nil
}

// find looks for the one blank field of struct t (or pointer to struct) with an annotation of kind
func find(t reflect.Type, kind string) (reflect.Type, *reflect.StructField, *field.TypeTag, error) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return t, nil, nil, nil
	}
	var (
		found    *reflect.StructField
		foundTag *field.TypeTag
	)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name != "_" {
			continue
		}
		tag, err := field.GetTypeTag(f.Tag.Get(field.TagName))
		if err != nil {
			return t, nil, nil, fmt.Errorf("%w in annotation of %v", err, t)
		}
		if tag == nil || tag.Kind != kind {
			continue
		}
		if found != nil {
			return t, nil, nil, fmt.Errorf("%v has more than one %s annotation", t, kind)
		}
		found, foundTag = &f, tag
	}
	return t, found, foundTag, nil
}

// target gets the struct type named by the type of an annotation field
func target(f *reflect.StructField) (reflect.Type, error) {
	t := f.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("annotated type %v is not a struct", f.Type)
	}
	return t, nil
}
