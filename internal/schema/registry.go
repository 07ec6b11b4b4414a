package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

// Registry stores every named type of the schema by name, remembering the order they were registered.
// It is only used by one goroutine while the schema is built, then frozen, after which it is read only.
type Registry struct {
	types  map[string]Type
	order  []string
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// HasType returns true if a type called name has been registered
func (r *Registry) HasType(name string) bool {
	_, ok := r.types[name]
	return ok
}

// Lookup returns the type called name (of any kind)
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// GetMutableType returns the object type called name so that fields can be added to it
func (r *Registry) GetMutableType(name string) (*ObjectType, error) {
	if r.frozen {
		return nil, errors.Wrapf(ErrFrozen, "getting type %s", name)
	}
	t, ok := r.types[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	obj, ok := t.(*ObjectType)
	if !ok {
		return nil, fmt.Errorf("type %s is an %s not an object", name, t.Kind())
	}
	return obj, nil
}

// Register adds a type.  Names must be unique across all kinds.
func (r *Registry) Register(t Type) error {
	if r.frozen {
		return errors.Wrapf(ErrFrozen, "registering type %s", t.TypeName())
	}
	name := t.TypeName()
	if !ValidName(name) {
		return fmt.Errorf("%q is not a valid type name", name)
	}
	if _, ok := r.types[name]; ok {
		return &DuplicateTypeError{Name: name}
	}
	r.types[name] = t
	r.order = append(r.order, name)
	return nil
}

// Types returns all the registered types in registration order
func (r *Registry) Types() []Type {
	retval := make([]Type, 0, len(r.order))
	for _, name := range r.order {
		retval = append(retval, r.types[name])
	}
	return retval
}

// Freeze evaluates the fields of all object types then prevents further changes
func (r *Registry) Freeze() error {
	if r.frozen {
		return nil
	}
	// Fields of all types are built before any type is frozen so that an error leaves nothing frozen.
	// Building fields can register more types (or add fields to types already built) so the
	// loop is repeated until there is nothing left to build.
	for built := false; !built; {
		built = true
		for i := 0; i < len(r.order); i++ {
			name := r.order[i]
			if obj, ok := r.types[name].(*ObjectType); ok && obj.Pending() > 0 {
				built = false
				if _, err := obj.Fields(); err != nil {
					return errors.Wrapf(err, "building fields of %s", name)
				}
			}
		}
	}
	for _, name := range r.order {
		if obj, ok := r.types[name].(*ObjectType); ok {
			obj.frozen = true
		}
	}
	r.frozen = true
	return nil
}

func (r *Registry) Frozen() bool { return r.frozen }
