// Package typegen creates GraphQL object types from annotated Go structs and adds the fields
// of "extend" structs to existing types.
package typegen

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"

	"github.com/LiuXiaoZhuang/graphql/internal/annotation"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
)

type (
	// AnnotationReader returns the annotation of a struct type (nil if there is none)
	AnnotationReader interface {
		GetTypeAnnotation(t reflect.Type) (*annotation.Type, error)
		GetExtendTypeAnnotation(t reflect.Type) (*annotation.ExtendType, error)
	}

	// NamingStrategy decides the GraphQL name of an annotated type
	NamingStrategy interface {
		GetOutputTypeName(class reflect.Type, ann *annotation.Type) string
	}

	// TypeRegistry stores types by name
	TypeRegistry interface {
		HasType(name string) bool
		Lookup(name string) (schema.Type, bool)
		GetMutableType(name string) (*schema.ObjectType, error)
		Register(t schema.Type) error
	}

	// Container supplies the instances of (non-self) annotated structs
	Container interface {
		Get(t reflect.Type) (any, error)
	}

	// RecursiveTypeMapper maps Go types to GraphQL types, creating object types as needed
	RecursiveTypeMapper interface {
		CanMapClassToType(class reflect.Type) bool
		MapClassToType(class reflect.Type) (*schema.ObjectType, error)
		MapOutputType(t reflect.Type, nullable bool, override string) (*ast.Type, error)
		MapInputType(t reflect.Type, nullable bool, override string) (*ast.Type, error)
	}

	// FieldProvider gets the fields of an instance of an annotated struct, or of a self type
	FieldProvider interface {
		GetFields(instance any) ([]*schema.Field, error)
		GetSelfFields(class reflect.Type) ([]*schema.Field, error)
	}

	// FieldsBuilderFactory makes a FieldProvider that uses mapper for the types of fields and arguments
	FieldsBuilderFactory interface {
		BuildFieldsBuilder(mapper RecursiveTypeMapper) FieldProvider
	}
)

// MissingTypeAnnotationError is returned when a struct used as a type has no type annotation
type MissingTypeAnnotationError struct {
	Class reflect.Type
}

func (e *MissingTypeAnnotationError) Error() string {
	return fmt.Sprintf("%v has no type annotation (eg _ graphql.TagHolder `egg:\"type\"`)", e.Class)
}

// MissingExtendTypeAnnotationError is returned when a struct used as an extension has no extend annotation
type MissingExtendTypeAnnotationError struct {
	Class reflect.Type
}

func (e *MissingExtendTypeAnnotationError) Error() string {
	return fmt.Sprintf("%v has no extend annotation (eg _ *User `egg:\"extend\"`)", e.Class)
}

// TypeConflictError is returned when a type name is already used by a different Go type (or a non-object type)
type TypeConflictError struct {
	Name     string
	Class    reflect.Type
	Existing schema.Type
}

func (e *TypeConflictError) Error() string {
	if obj, ok := e.Existing.(*schema.ObjectType); ok {
		return fmt.Sprintf("type %s of %v is already used by %v", e.Name, e.Class, obj.Class)
	}
	return fmt.Sprintf("type %s of %v is already used by a %v type", e.Name, e.Class, e.Existing.Kind())
}

// Generator creates object types.  It is not safe for concurrent use, which is not needed
// as types are only created while the schema is built.
type Generator struct {
	reader    AnnotationReader
	factory   FieldsBuilderFactory
	naming    NamingStrategy
	registry  TypeRegistry
	container Container
	logger    *zap.Logger
}

// New creates a type generator.  If logger is nil nothing is logged.
func New(reader AnnotationReader, factory FieldsBuilderFactory, naming NamingStrategy,
	registry TypeRegistry, container Container, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		reader:    reader,
		factory:   factory,
		naming:    naming,
		registry:  registry,
		container: container,
		logger:    logger,
	}
}

// MapAnnotatedObject returns the object type for the struct annotated, creating and registering it
// the first time.  Repeated calls return the same *schema.ObjectType.
// The fields of a new type are not built until they are first needed, so types may refer to each other.
func (g *Generator) MapAnnotatedObject(annotated reflect.Type, mapper RecursiveTypeMapper) (*schema.ObjectType, error) {
	ann, err := g.reader.GetTypeAnnotation(annotated)
	if err != nil {
		return nil, err
	}
	if ann == nil {
		return nil, &MissingTypeAnnotationError{Class: annotated}
	}

	name := g.naming.GetOutputTypeName(annotated, ann)
	if existing, ok := g.registry.Lookup(name); ok {
		obj, isObject := existing.(*schema.ObjectType)
		if !isObject || obj.Class != ann.Class {
			return nil, &TypeConflictError{Name: name, Class: ann.Class, Existing: existing}
		}
		g.logger.Debug("type already mapped", zap.String("type", name))
		return obj, nil
	}

	var instance any
	if !ann.Self {
		if instance, err = g.container.Get(ann.Annotated); err != nil {
			return nil, errors.Wrapf(err, "getting fields provider of type %s", name)
		}
	}

	obj := schema.NewObjectType(name, ann.Description, ann.Class)
	if err := g.registry.Register(obj); err != nil {
		return nil, err
	}
	provider := g.factory.BuildFieldsBuilder(mapper)
	if ann.Self {
		err = obj.AddFields(func() ([]*schema.Field, error) { return provider.GetSelfFields(ann.Class) })
	} else {
		err = obj.AddFields(func() ([]*schema.Field, error) { return provider.GetFields(instance) })
	}
	if err != nil {
		return nil, err
	}
	g.logger.Debug("mapped type", zap.String("type", name), zap.Stringer("class", ann.Class), zap.Bool("self", ann.Self))
	return obj, nil
}

// ExtendAnnotatedObject adds the fields of instance, which has an extend annotation, to target.
// The fields are not built until the fields of target are needed.
func (g *Generator) ExtendAnnotatedObject(instance any, target *schema.ObjectType, mapper RecursiveTypeMapper) error {
	t := reflect.TypeOf(instance)
	ann, err := g.reader.GetExtendTypeAnnotation(t)
	if err != nil {
		return err
	}
	if ann == nil {
		return &MissingExtendTypeAnnotationError{Class: t}
	}

	provider := g.factory.BuildFieldsBuilder(mapper)
	if err := target.AddFields(func() ([]*schema.Field, error) { return provider.GetFields(instance) }); err != nil {
		return err
	}
	g.logger.Debug("extended type", zap.String("type", target.Name), zap.Stringer("extension", t))
	return nil
}
