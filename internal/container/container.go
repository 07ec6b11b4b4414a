// Package container is a minimal dependency container: it holds one instance (singleton) of each
// Go type that provides GraphQL fields, creating it on first use if a constructor was registered.
package container

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// NotFoundError is returned by Get for a type that has no instance or constructor
type NotFoundError struct {
	Type reflect.Type
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no instance of %v in the container", e.Type)
}

// Container stores instances by type.  It is only used while the schema is built (by one goroutine).
type Container struct {
	instances    map[reflect.Type]any
	constructors map[reflect.Type]func() (any, error)
}

func New() *Container {
	return &Container{
		instances:    make(map[reflect.Type]any),
		constructors: make(map[reflect.Type]func() (any, error)),
	}
}

// Provide adds an instance, which can then be obtained using its type or (if the instance
// is a pointer) the type it points to.
func (c *Container) Provide(instance any) {
	t := reflect.TypeOf(instance)
	c.instances[t] = instance
	if t.Kind() == reflect.Ptr {
		c.instances[t.Elem()] = instance
	}
}

// ProvideFunc registers a constructor that is called (once) the first time an instance of t is needed
func (c *Container) ProvideFunc(t reflect.Type, constructor func() (any, error)) {
	c.constructors[t] = constructor
}

// Has returns true if an instance of t is available
func (c *Container) Has(t reflect.Type) bool {
	if _, ok := c.instances[t]; ok {
		return true
	}
	_, ok := c.constructors[t]
	return ok
}

// Get returns the instance for type t
func (c *Container) Get(t reflect.Type) (any, error) {
	if instance, ok := c.instances[t]; ok {
		return instance, nil
	}
	constructor, ok := c.constructors[t]
	if !ok {
		return nil, &NotFoundError{Type: t}
	}
	instance, err := constructor()
	if err != nil {
		return nil, errors.Wrapf(err, "constructing %v", t)
	}
	if instance == nil {
		return nil, fmt.Errorf("constructor of %v returned nil", t)
	}
	c.instances[t] = instance
	delete(c.constructors, t)
	return instance, nil
}
