package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/LiuXiaoZhuang/graphql/internal/binder"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
)

func TestRender(t *testing.T) {
	reg := schema.NewRegistry()
	query := schema.NewObjectType("Query", "", nil)
	user := schema.NewObjectType("User", "a registered user", nil)
	unit := &schema.EnumType{Name: "Unit", Values: []string{"METER", "FOOT"}}
	filter := &schema.InputObjectType{Name: "FilterInput", Fields: []*schema.InputField{
		{Name: "prefix", Type: ast.NamedType("String", nil), DefaultLiteral: `""`},
		{Name: "limit", Description: "max users", Type: ast.NonNullNamedType("Int", nil)},
	}}
	for _, typ := range []schema.Type{query, user, unit, filter, &schema.ScalarType{Name: "Time"}} {
		require.NoError(t, reg.Register(typ))
	}

	require.NoError(t, query.AddFields(func() ([]*schema.Field, error) {
		return []*schema.Field{{
			Name: "users",
			Type: ast.NonNullListType(ast.NonNullNamedType("User", nil), nil),
			Args: []binder.Argument{
				{Name: "filter", Type: ast.NamedType("FilterInput", nil), HasDefault: true},
				{Name: "unit", Description: "for heights", Type: ast.NamedType("Unit", nil), HasDefault: true, Default: 1},
				{Name: "first", Type: ast.NamedType("Int", nil), HasDefault: true, Default: 10, DefaultLiteral: "10"},
			},
		}}, nil
	}))
	require.NoError(t, user.AddFields(func() ([]*schema.Field, error) {
		return []*schema.Field{
			{Name: "name", Type: ast.NonNullNamedType("String", nil)},
			{Name: "joined", Description: "when the user signed up", Type: ast.NamedType("Time", nil)},
		}, nil
	}))
	require.NoError(t, user.AddFields(func() ([]*schema.Field, error) {
		return []*schema.Field{{Name: "height", Type: ast.NamedType("Float", nil)}}, nil
	}))

	got, err := schema.Render(reg, schema.Roots{Query: "Query"})
	require.NoError(t, err)
	want := `schema {
  query: Query
}

input FilterInput {
  prefix: String = ""
  "max users"
  limit: Int!
}

type Query {
  users(filter: FilterInput, "for heights" unit: Unit = FOOT, first: Int = 10): [User!]!
}

scalar Time

enum Unit {
  METER
  FOOT
}

"a registered user"
type User {
  name: String!
  "when the user signed up"
  joined: Time
  height: Float
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Render() mismatch (-want +got):\n%s", diff)
	}

	s, err := schema.Load(got)
	require.NoError(t, err)
	require.NotNil(t, s.Query)
	assert.Equal(t, "Query", s.Query.Name)
	assert.NotNil(t, s.Types["User"].Fields.ForName("height"))
}

func TestRenderErrors(t *testing.T) {
	reg := schema.NewRegistry()
	_, err := schema.Render(reg, schema.Roots{Query: "Query"})
	var unknown *schema.UnknownTypeError
	assert.ErrorAs(t, err, &unknown)

	query := schema.NewObjectType("Query", "", nil)
	require.NoError(t, reg.Register(query))
	require.NoError(t, query.AddFields(fieldsNamed("a")))
	require.NoError(t, query.AddFields(fieldsNamed("a")))
	_, err = schema.Render(reg, schema.Roots{Query: "Query"})
	var dup *schema.DuplicateFieldError
	assert.ErrorAs(t, err, &dup)
}

func TestLoadError(t *testing.T) {
	_, err := schema.Load("type Query { a: Unknown }")
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	type point struct{ X, Y int }
	literalData := map[string]struct {
		in  any
		exp string
	}{
		"Nil":    {nil, "null"},
		"Int":    {42, "42"},
		"Neg":    {int8(-3), "-3"},
		"Uint":   {uint(7), "7"},
		"Float":  {1.5, "1.5"},
		"Bool":   {true, "true"},
		"String": {`a "b"`, `"a \"b\""`},
		"Ptr":    {new(int), "0"},
		"NilPtr": {(*int)(nil), "null"},
		"List":   {[]int{1, 2}, "[1, 2]"},
		"Map":    {map[string]any{"b": 1, "a": "x"}, `{a: "x", b: 1}`},
		"Struct": {point{1, 2}, "{x: 1, y: 2}"},
	}
	for name, data := range literalData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, data.exp, schema.Literal(data.in))
		})
	}
}

func TestParseLiteral(t *testing.T) {
	literalData := map[string]any{
		`1`:              int64(1),
		`1.5`:            1.5,
		`"a b"`:          "a b",
		`true`:           true,
		`null`:           nil,
		`RED`:            "RED",
		`[1, 2]`:         []interface{}{int64(1), int64(2)},
		`{a: 1, b: "x"}`: map[string]interface{}{"a": int64(1), "b": "x"},
	}
	for lit, exp := range literalData {
		v, err := schema.ParseLiteral(lit)
		require.NoError(t, err, lit)
		raw, err := v.Value(nil)
		require.NoError(t, err, lit)
		assert.Equal(t, exp, raw, lit)
	}
	for _, bad := range []string{``, `$v`, `[1, $v]`, `1) g(v: 2`, `"abc`} {
		_, err := schema.ParseLiteral(bad)
		assert.Error(t, err, bad)
	}
}
