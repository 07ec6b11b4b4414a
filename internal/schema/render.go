package schema

// render.go generates the schema (SDL) text from the registered types

import (
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/LiuXiaoZhuang/graphql/internal/binder"
)

// Roots has the names of the root operation types (an empty name means there is no such operation)
type Roots struct {
	Query    string
	Mutation string
}

// Render returns the schema as a string.  Types are written in order of name but the fields
// of an object are in the order they were contributed.
func Render(reg *Registry, roots Roots) (string, error) {
	builder := &strings.Builder{}

	if roots.Query != "" || roots.Mutation != "" {
		builder.WriteString("schema {\n")
		for _, root := range [...]struct{ operation, name string }{{"query", roots.Query}, {"mutation", roots.Mutation}} {
			if root.name == "" {
				continue
			}
			if !reg.HasType(root.name) {
				return "", &UnknownTypeError{Name: root.name}
			}
			builder.WriteString("  " + root.operation + ": " + root.name + "\n")
		}
		builder.WriteString("}\n")
	}

	types := reg.Types()
	sort.Slice(types, func(i, j int) bool { return types[i].TypeName() < types[j].TypeName() })
	for _, t := range types {
		builder.WriteRune('\n')
		switch t := t.(type) {
		case *ObjectType:
			fields, err := t.Fields()
			if err != nil {
				return "", errors.Wrapf(err, "rendering type %s", t.Name)
			}
			writeDescription(builder, "", t.Description)
			builder.WriteString("type " + t.Name + " {\n")
			for _, f := range fields {
				writeDescription(builder, "  ", f.Description)
				builder.WriteString("  " + f.Name)
				writeArgs(builder, reg, f.Args)
				builder.WriteString(": " + f.Type.String() + "\n")
			}
			builder.WriteString("}\n")
		case *InputObjectType:
			writeDescription(builder, "", t.Description)
			builder.WriteString("input " + t.Name + " {\n")
			for _, f := range t.Fields {
				writeDescription(builder, "  ", f.Description)
				builder.WriteString("  " + f.Name + ": " + f.Type.String())
				if f.DefaultLiteral != "" {
					builder.WriteString(" = " + f.DefaultLiteral)
				}
				builder.WriteRune('\n')
			}
			builder.WriteString("}\n")
		case *EnumType:
			writeDescription(builder, "", t.Description)
			builder.WriteString("enum " + t.Name + " {\n")
			for _, v := range t.Values {
				builder.WriteString("  " + v + "\n")
			}
			builder.WriteString("}\n")
		case *ScalarType:
			writeDescription(builder, "", t.Description)
			builder.WriteString("scalar " + t.Name + "\n")
		}
	}
	return builder.String(), nil
}

func writeDescription(builder *strings.Builder, indent, desc string) {
	if desc != "" {
		builder.WriteString(indent + quote(desc) + "\n")
	}
}

func writeArgs(builder *strings.Builder, reg *Registry, args []binder.Argument) {
	if len(args) == 0 {
		return
	}
	builder.WriteRune('(')
	for i, arg := range args {
		if i > 0 {
			builder.WriteString(", ")
		}
		if arg.Description != "" {
			builder.WriteString(quote(arg.Description) + " ")
		}
		builder.WriteString(arg.Name + ": " + arg.Type.String())
		if arg.DefaultLiteral != "" {
			builder.WriteString(" = " + arg.DefaultLiteral)
		} else if arg.HasDefault && arg.Default != nil {
			builder.WriteString(" = " + literal(reg, arg.Type, reflect.ValueOf(arg.Default)))
		}
	}
	builder.WriteRune(')')
}

// Load parses and validates schema text, returning the schema AST used by execution engines
func Load(sdl string) (*ast.Schema, error) {
	s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema", Input: sdl})
	if err != nil {
		return nil, errors.Wrap(err, "loading schema")
	}
	return s, nil
}
