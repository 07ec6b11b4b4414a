package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/LiuXiaoZhuang/graphql/internal/schema"
)

func fieldsNamed(names ...string) schema.FieldsThunk {
	return func() ([]*schema.Field, error) {
		r := make([]*schema.Field, len(names))
		for i, name := range names {
			r[i] = &schema.Field{Name: name, Type: ast.NamedType("String", nil)}
		}
		return r, nil
	}
}

func names(t *testing.T, obj *schema.ObjectType) []string {
	t.Helper()
	fields, err := obj.Fields()
	require.NoError(t, err)
	r := make([]string, len(fields))
	for i, f := range fields {
		r[i] = f.Name
	}
	return r
}

func TestObjectTypeLazy(t *testing.T) {
	obj := schema.NewObjectType("User", "", nil)
	calls := 0
	require.NoError(t, obj.AddFields(func() ([]*schema.Field, error) {
		calls++
		return fieldsNamed("x")()
	}))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, obj.Pending())

	assert.Equal(t, []string{"x"}, names(t, obj))
	assert.Equal(t, []string{"x"}, names(t, obj))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, obj.Pending())
}

func TestObjectTypeAccumulates(t *testing.T) {
	obj := schema.NewObjectType("Query", "", nil)
	require.NoError(t, obj.AddFields(fieldsNamed("x")))
	require.NoError(t, obj.AddFields(fieldsNamed("y")))
	assert.Equal(t, []string{"x", "y"}, names(t, obj))

	// a contribution after the fields have been read is still seen
	require.NoError(t, obj.AddFields(fieldsNamed("z")))
	assert.Equal(t, []string{"x", "y", "z"}, names(t, obj))

	f, err := obj.Field("y")
	require.NoError(t, err)
	assert.Equal(t, "y", f.Name)
	f, err = obj.Field("none")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestObjectTypeDuplicate(t *testing.T) {
	obj := schema.NewObjectType("Query", "", nil)
	require.NoError(t, obj.AddFields(fieldsNamed("x")))
	require.NoError(t, obj.AddFields(fieldsNamed("x")))
	_, err := obj.Fields()
	var dup *schema.DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Field)
	assert.Equal(t, "Query", dup.Type)

	obj = schema.NewObjectType("Query", "", nil)
	require.NoError(t, obj.AddFields(fieldsNamed("a", "a")))
	_, err = obj.Fields()
	assert.ErrorAs(t, err, &dup)
}

func TestObjectTypeError(t *testing.T) {
	obj := schema.NewObjectType("Query", "", nil)
	boom := errors.New("boom")
	failing := true
	require.NoError(t, obj.AddFields(func() ([]*schema.Field, error) {
		if failing {
			return nil, boom
		}
		return fieldsNamed("x")()
	}))
	_, err := obj.Fields()
	assert.ErrorIs(t, err, boom)

	// the contribution is retried
	failing = false
	assert.Equal(t, []string{"x"}, names(t, obj))
}

func TestObjectTypeReentrant(t *testing.T) {
	obj := schema.NewObjectType("Node", "", nil)
	require.NoError(t, obj.AddFields(func() ([]*schema.Field, error) {
		_, err := obj.Fields()
		return nil, err
	}))
	_, err := obj.Fields()
	assert.Error(t, err)
}

func TestEnumIndex(t *testing.T) {
	enum, err := schema.NewEnum("Unit", "", []string{"METER # base unit", "FOOT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"METER", "FOOT"}, enum.Values)
	assert.Equal(t, 1, enum.Index("FOOT"))
	assert.Equal(t, -1, enum.Index("INCH"))

	for name, values := range map[string][]string{
		"":       {"A"},
		"Empty":  nil,
		"Bad":    {"1A"},
		"Repeat": {"A", "A"},
		"Null":   {"null"},
	} {
		_, err := schema.NewEnum(name, "", values)
		assert.Error(t, err, name)
	}
}

func TestParseTypeRef(t *testing.T) {
	typeData := map[string]string{
		"Int":       "Int",
		"Int!":      "Int!",
		"[Int]":     "[Int]",
		" [ Int! ]!": "[Int!]!",
		"[[ID!]]":   "[[ID!]]",
	}
	for in, exp := range typeData {
		got, err := schema.ParseTypeRef(in)
		require.NoError(t, err, in)
		assert.Equal(t, exp, got.String())
	}
	for _, bad := range []string{"", "[Int", "Int]", "Int!!", "1x", "[]"} {
		_, err := schema.ParseTypeRef(bad)
		assert.Error(t, err, bad)
	}
}
