package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiuXiaoZhuang/graphql/internal/schema"
)

func TestRegistry(t *testing.T) {
	reg := schema.NewRegistry()
	user := schema.NewObjectType("User", "", nil)
	unit := &schema.EnumType{Name: "Unit", Values: []string{"METER"}}

	assert.False(t, reg.HasType("User"))
	require.NoError(t, reg.Register(user))
	require.NoError(t, reg.Register(unit))
	assert.True(t, reg.HasType("User"))

	got, err := reg.GetMutableType("User")
	require.NoError(t, err)
	assert.Same(t, user, got)

	_, err = reg.GetMutableType("Unit") // not an object
	assert.Error(t, err)

	var unknown *schema.UnknownTypeError
	_, err = reg.GetMutableType("Post")
	assert.ErrorAs(t, err, &unknown)

	var dup *schema.DuplicateTypeError
	assert.ErrorAs(t, reg.Register(schema.NewObjectType("User", "", nil)), &dup)
	assert.ErrorAs(t, reg.Register(&schema.ScalarType{Name: "Unit"}), &dup)
	assert.Error(t, reg.Register(&schema.ScalarType{Name: "__Bad"}))

	typ, ok := reg.Lookup("Unit")
	assert.True(t, ok)
	assert.Equal(t, schema.KindEnum, typ.Kind())
	assert.Equal(t, []schema.Type{user, unit}, reg.Types())
}

func TestRegistryFreeze(t *testing.T) {
	reg := schema.NewRegistry()
	user := schema.NewObjectType("User", "", nil)
	require.NoError(t, reg.Register(user))
	require.NoError(t, user.AddFields(fieldsNamed("name")))

	require.NoError(t, reg.Freeze())
	assert.True(t, reg.Frozen())
	assert.Equal(t, 0, user.Pending())

	assert.True(t, errors.Is(reg.Register(schema.NewObjectType("Post", "", nil)), schema.ErrFrozen))
	_, err := reg.GetMutableType("User")
	assert.ErrorIs(t, err, schema.ErrFrozen)
	assert.ErrorIs(t, user.AddFields(fieldsNamed("age")), schema.ErrFrozen)
	assert.NoError(t, reg.Freeze())
}

func TestRegistryFreezeError(t *testing.T) {
	reg := schema.NewRegistry()
	post := schema.NewObjectType("Post", "", nil)
	require.NoError(t, reg.Register(post))
	require.NoError(t, post.AddFields(fieldsNamed("title")))
	user := schema.NewObjectType("User", "", nil)
	require.NoError(t, reg.Register(user))
	require.NoError(t, user.AddFields(fieldsNamed("name")))
	require.NoError(t, user.AddFields(fieldsNamed("name")))

	var dup *schema.DuplicateFieldError
	assert.ErrorAs(t, reg.Freeze(), &dup)

	// nothing is frozen when building fails, even types built before the error
	assert.False(t, reg.Frozen())
	assert.NoError(t, post.AddFields(fieldsNamed("body")))
	_, err := reg.GetMutableType("Post")
	assert.NoError(t, err)
	assert.NoError(t, reg.Register(schema.NewObjectType("Comment", "", nil)))
}

func TestRegistryFreezeAddsFields(t *testing.T) {
	reg := schema.NewRegistry()
	user := schema.NewObjectType("User", "", nil)
	post := schema.NewObjectType("Post", "", nil)
	require.NoError(t, reg.Register(user))
	require.NoError(t, reg.Register(post))
	require.NoError(t, user.AddFields(fieldsNamed("name")))
	// building Post adds a field to User, which has already been built
	require.NoError(t, post.AddFields(func() ([]*schema.Field, error) {
		if err := user.AddFields(fieldsNamed("posts")); err != nil {
			return nil, err
		}
		return fieldsNamed("title")()
	}))

	require.NoError(t, reg.Freeze())
	assert.Equal(t, 0, user.Pending())
	fields, err := user.Fields()
	require.NoError(t, err)
	assert.Len(t, fields, 2)
}
