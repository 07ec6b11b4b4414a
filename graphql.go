package graphql

// graphql.go provides the Builder type which maps annotated Go structs to a GraphQL schema with resolvers

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/LiuXiaoZhuang/graphql/internal/annotation"
	"github.com/LiuXiaoZhuang/graphql/internal/argument"
	"github.com/LiuXiaoZhuang/graphql/internal/binder"
	"github.com/LiuXiaoZhuang/graphql/internal/container"
	"github.com/LiuXiaoZhuang/graphql/internal/fields"
	"github.com/LiuXiaoZhuang/graphql/internal/naming"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
	"github.com/LiuXiaoZhuang/graphql/internal/typegen"
	"github.com/LiuXiaoZhuang/graphql/internal/typemapper"
)

const (
	QueryName    = "Query"
	MutationName = "Mutation"
)

type (
	// Builder collects annotated types, extensions, root controllers and enums and builds the Schema
	Builder struct {
		mu sync.Mutex // only one Build at a time

		logger   *zap.Logger
		tracer   trace.Tracer
		validate *validator.Validate

		types, extensions  []any
		queries, mutations []any
		provided           []any
		enums              []enum
	}

	enum struct {
		name, description string
		values            []string
	}

	// build has the components used by one call to Build
	build struct {
		*Builder
		registry *schema.Registry
		store    *container.Container
		reader   annotation.Reader
		factory  *fields.Factory
		gen      *typegen.Generator
		mapper   *typemapper.Mapper
	}
)

// New creates a schema builder.  Options are applied in order.
func New(opts ...Option) *Builder {
	b := &Builder{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddType adds annotated structs.  A self type (with a TagHolder annotation) may be given as a zero
// value.  A provider of fields for another type (eg `_ *User egg:"type"`) should be a pointer to the
// instance whose func fields and methods resolve the fields.
func (b *Builder) AddType(annotated ...any) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types = append(b.types, annotated...)
	return b
}

// AddExtension adds instances of structs with an extend annotation (eg `_ *User egg:"extend"`) whose
// fields are added to the extended type.  Extensions of the same type are applied in the order added.
func (b *Builder) AddExtension(instances ...any) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.extensions = append(b.extensions, instances...)
	return b
}

// AddQuery adds controllers whose fields make up the root query type
func (b *Builder) AddQuery(controllers ...any) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queries = append(b.queries, controllers...)
	return b
}

// AddMutation adds controllers whose fields make up the root mutation type
func (b *Builder) AddMutation(controllers ...any) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mutations = append(b.mutations, controllers...)
	return b
}

// AddEnum adds an enum that can be used as the type of a field or argument (using its name in the tag).
// A description may follow the name after a hash, eg "Unit # unit of length".
func (b *Builder) AddEnum(name string, values ...string) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := enum{name: name, values: values}
	if hash := strings.IndexByte(name, '#'); hash >= 0 {
		e.name, e.description = strings.TrimSpace(name[:hash]), strings.TrimSpace(name[hash+1:])
	}
	b.enums = append(b.enums, e)
	return b
}

// Provide adds instances used for the fields of container-managed types (ie not self types)
func (b *Builder) Provide(instances ...any) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.provided = append(b.provided, instances...)
	return b
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Build maps all the types, adds the root controllers and applies extensions, then builds every field
// returning the schema.  No types can be added to the schema after it is built.
func (b *Builder) Build() (*Schema, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bld, err := b.newBuild()
	if err != nil {
		return nil, err
	}
	if err := bld.mapTypes(); err != nil {
		return nil, err
	}
	var roots schema.Roots
	if roots.Query, err = bld.root(QueryName, b.queries); err != nil {
		return nil, err
	}
	if roots.Mutation, err = bld.root(MutationName, b.mutations); err != nil {
		return nil, err
	}
	if err := bld.extend(); err != nil {
		return nil, err
	}
	if roots.Query == "" && bld.registry.HasType(QueryName) {
		roots.Query = QueryName // a type annotated with the name Query
	}
	if roots.Mutation == "" && bld.registry.HasType(MutationName) {
		roots.Mutation = MutationName
	}
	if roots.Query == "" {
		return nil, errors.New("a schema needs a query type")
	}

	if err := bld.registry.Freeze(); err != nil {
		return nil, err
	}
	b.logger.Debug("froze schema types", zap.Int("types", len(bld.registry.Types())))

	sdl, err := schema.Render(bld.registry, roots)
	if err != nil {
		return nil, err
	}
	doc, err := schema.Load(sdl)
	if err != nil {
		return nil, errors.Wrapf(err, "generated schema is invalid:\n%s", sdl)
	}
	return newSchema(sdl, doc, bld.registry, b.tracer)
}

func (b *Builder) newBuild() (*build, error) {
	bld := &build{
		Builder:  b,
		registry: schema.NewRegistry(),
		store:    container.New(),
	}
	for _, instance := range b.provided {
		if instance == nil {
			return nil, errors.New("cannot provide a nil instance")
		}
		bld.store.Provide(instance)
	}

	enums := make(map[string][]string, len(b.enums))
	enumTypes := make([]*schema.EnumType, 0, len(b.enums))
	for _, e := range b.enums {
		enumType, err := schema.NewEnum(e.name, e.description, e.values)
		if err != nil {
			return nil, err
		}
		enums[enumType.Name] = enumType.Values
		enumTypes = append(enumTypes, enumType)
	}

	bld.factory = &fields.Factory{Args: argument.New(enums, b.validate), Logger: b.logger}
	bld.gen = typegen.New(bld.reader, bld.factory, naming.Default{}, bld.registry, bld.store, b.logger)
	bld.mapper = typemapper.New(bld.gen, bld.reader, bld.registry)
	for _, enumType := range enumTypes {
		if err := bld.mapper.AddEnum(enumType); err != nil {
			return nil, err
		}
	}
	return bld, nil
}

// mapTypes makes the mapper aware of all the annotated types before any are mapped, since the
// fields of one type may refer to any other
func (bld *build) mapTypes() error {
	annotated := make([]reflect.Type, 0, len(bld.types))
	for _, v := range bld.types {
		t := reflect.TypeOf(v)
		if t == nil {
			return errors.New("cannot add a nil type")
		}
		ann, err := bld.reader.GetTypeAnnotation(t)
		if err != nil {
			return err
		}
		if ann == nil {
			return &typegen.MissingTypeAnnotationError{Class: t}
		}
		if err := bld.mapper.Add(t); err != nil {
			return err
		}
		if !ann.Self && !bld.store.Has(ann.Annotated) {
			bld.store.Provide(v)
		}
		annotated = append(annotated, ann.Annotated)
	}
	for _, t := range annotated {
		if _, err := bld.gen.MapAnnotatedObject(t, bld.mapper); err != nil {
			return errors.Wrapf(err, "mapping %v", t)
		}
	}
	return nil
}

// extend applies the extensions in the order they were added
func (bld *build) extend() error {
	for _, instance := range bld.extensions {
		t := reflect.TypeOf(instance)
		if t == nil {
			return errors.New("cannot add a nil extension")
		}
		ann, err := bld.reader.GetExtendTypeAnnotation(t)
		if err != nil {
			return err
		}
		if ann == nil {
			return &typegen.MissingExtendTypeAnnotationError{Class: t}
		}

		var target *schema.ObjectType
		if ann.Name != "" {
			target, err = bld.registry.GetMutableType(ann.Name)
		} else {
			target, err = bld.mapper.MapClassToType(ann.Class)
		}
		if err != nil {
			return errors.Wrapf(err, "finding type extended by %v", t)
		}
		if err := bld.gen.ExtendAnnotatedObject(instance, target, bld.mapper); err != nil {
			return errors.Wrapf(err, "extending %s", target.Name)
		}
	}
	return nil
}

// root adds the fields of the controllers to the root operation type called name, returning the
// name (or an empty string if there are no controllers)
func (bld *build) root(name string, controllers []any) (string, error) {
	if len(controllers) == 0 {
		return "", nil
	}
	var obj *schema.ObjectType
	if bld.registry.HasType(name) {
		var err error
		if obj, err = bld.registry.GetMutableType(name); err != nil {
			return "", err
		}
	} else {
		obj = schema.NewObjectType(name, "", nil)
		if err := bld.registry.Register(obj); err != nil {
			return "", err
		}
	}

	provider := bld.factory.BuildFieldsBuilder(bld.mapper)
	for _, controller := range controllers {
		if controller == nil {
			return "", fmt.Errorf("nil %s controller", name)
		}
		controller := controller
		if err := obj.AddFields(func() ([]*schema.Field, error) { return provider.GetFields(controller) }); err != nil {
			return "", err
		}
		bld.logger.Debug("added root controller", zap.String("type", name), zap.String("controller", fmt.Sprintf("%T", controller)))
	}
	return name, nil
}

// resolvers makes the lookup table of resolvers, wrapping each one in a span if tracer is not nil
func resolvers(registry *schema.Registry, tracer trace.Tracer) (map[string]map[string]binder.Resolver, error) {
	r := make(map[string]map[string]binder.Resolver)
	for _, t := range registry.Types() {
		obj, ok := t.(*schema.ObjectType)
		if !ok {
			continue
		}
		list, err := obj.Fields()
		if err != nil {
			return nil, err
		}
		byField := make(map[string]binder.Resolver, len(list))
		for _, f := range list {
			resolver := f.Resolver
			if tracer != nil {
				resolver = binder.Traced(tracer, obj.Name, f.Name, resolver)
			}
			byField[f.Name] = resolver
		}
		r[obj.Name] = byField
	}
	return r, nil
}
