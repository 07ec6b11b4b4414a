package graphql

// schema.go has the Schema type, the result of building, which an execution engine uses to find resolvers

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"go.opentelemetry.io/otel/trace"

	"github.com/LiuXiaoZhuang/graphql/internal/binder"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
)

// Schema is a built GraphQL schema.  It is immutable and its resolvers may be called concurrently.
type Schema struct {
	SDL string      // schema text
	AST *ast.Schema // validated schema used to parse and validate queries

	resolvers map[string]map[string]binder.Resolver // by type name then field name
}

// UnknownFieldError is returned by Resolve for a field that is not in the schema
type UnknownFieldError struct {
	Type, Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("no field %q in type %q", e.Field, e.Type)
}

func newSchema(sdl string, doc *ast.Schema, registry *schema.Registry, tracer trace.Tracer) (*Schema, error) {
	r, err := resolvers(registry, tracer)
	if err != nil {
		return nil, err
	}
	return &Schema{SDL: sdl, AST: doc, resolvers: r}, nil
}

// Resolver returns the resolver of a field of an object type
func (s *Schema) Resolver(typeName, fieldName string) (Resolver, bool) {
	r, ok := s.resolvers[typeName][fieldName]
	return r, ok
}

// Resolve calls the resolver of a field.  If info is nil one is made with the type and field name.
func (s *Schema) Resolve(ctx context.Context, typeName, fieldName string, source any, rawArgs map[string]any, info *ResolveInfo) (any, error) {
	r, ok := s.Resolver(typeName, fieldName)
	if !ok {
		return nil, &UnknownFieldError{Type: typeName, Field: fieldName}
	}
	if info == nil {
		info = &ResolveInfo{ParentType: typeName, FieldName: fieldName}
	}
	return r(ctx, source, rawArgs, info)
}

// Type returns the definition of a named type (including built-in scalars)
func (s *Schema) Type(name string) (*ast.Definition, bool) {
	def, ok := s.AST.Types[name]
	return def, ok
}
