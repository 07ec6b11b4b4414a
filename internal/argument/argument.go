// Package argument converts the "raw" values of resolver arguments, as decoded by a JSON decoder
// or from a GraphQL literal, into the Go types of the resolver's parameters.
//
// Raw values use the same representation as encoding/json: a GraphQL input object is a
// map[string]interface{} (one entry per field), a list is a []interface{}, and scalars are bool,
// string, element types of int, float64 or json.Number.  Enum values are strings (the enum value
// name) which are converted to the index of the value if the Go type is an integer.
package argument

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/LiuXiaoZhuang/graphql/internal/binder"
	"github.com/LiuXiaoZhuang/graphql/internal/field"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
)

// Resolver implements binder.ArgumentResolver
type Resolver struct {
	Enums    map[string][]string // enum values by enum name
	Validate *validator.Validate // if not nil, input objects (structs) are checked using `validate` tags
}

// New creates a resolver that knows about enums
func New(enums map[string][]string, validate *validator.Validate) *Resolver {
	return &Resolver{Enums: enums, Validate: validate}
}

// Resolve converts the raw value of an argument to its Go type then validates it.
// If the argument has no Go type then the raw value is returned as is.
func (r *Resolver) Resolve(raw any, arg *binder.Argument) (any, error) {
	if arg.GoType == nil {
		return raw, nil
	}
	v, err := r.value(arg.GoType, arg.Type, arg.Name, raw)
	if err != nil {
		return nil, err
	}
	if err := r.validate(v); err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Convert converts a raw value to type t, where gql is the GraphQL type (used to find enums) and may be nil.
// It does not validate the result.
func (r *Resolver) Convert(raw any, t reflect.Type, gql *ast.Type) (any, error) {
	v, err := r.value(t, gql, "value", raw)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// validate checks a struct (or pointer to or list of) using the struct tags
func (r *Resolver) validate(v reflect.Value) error {
	if r.Validate == nil {
		return nil
	}
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return r.Validate.Struct(v.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := r.validate(v.Index(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// value returns a value of type t made from raw
// Parameters:
//   t = the Go type required
//   gql = the GraphQL type (may be nil) - it is only used to find enums
//   name = name of the argument (or input field) for error messages
//   raw = the value to convert
func (r *Resolver) value(t reflect.Type, gql *ast.Type, name string, raw any) (reflect.Value, error) {
	if raw == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%q cannot be null", name)
	}

	// custom scalars are decoded from a string
	if t.Kind() != reflect.Ptr && reflect.PointerTo(t).Implements(field.UnmarshalerType) {
		s, err := scalarString(name, raw)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t)
		if err := p.Interface().(field.Unmarshaler).UnmarshalGraphQL(s); err != nil {
			return reflect.Value{}, fmt.Errorf("%w decoding %q", err, name)
		}
		return p.Elem(), nil
	}

	switch t.Kind() {
	case reflect.Ptr:
		elem, err := r.value(t.Elem(), gql, name, raw)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	case reflect.Interface:
		v := reflect.ValueOf(raw)
		if !v.Type().Implements(t) {
			return reflect.Value{}, fmt.Errorf("%q of type %T does not implement %v", name, raw, t)
		}
		iface := reflect.New(t).Elem()
		iface.Set(v)
		return iface, nil
	case reflect.Slice, reflect.Array:
		list, ok := raw.([]any)
		if !ok {
			list = []any{raw} // a single value is accepted for a list
		}
		var elemGQL *ast.Type
		if gql != nil {
			elemGQL = gql.Elem
		}
		return r.getList(t, elemGQL, name, list)
	}

	// If it's an enum we need to convert the enum name (string) to int
	if gql != nil && gql.NamedType != "" && isInteger(t.Kind()) {
		if values, ok := r.Enums[gql.NamedType]; ok {
			toFind, ok := raw.(string)
			if !ok {
				return reflect.Value{}, fmt.Errorf("getting enum (%s) for %q expected string not %T", gql.NamedType, name, raw)
			}
			for i, v := range values {
				if v == toFind {
					return reflect.ValueOf(i).Convert(t), nil
				}
			}
			return reflect.Value{}, fmt.Errorf("%q is not a value of enum %s (for %q)", toFind, gql.NamedType, name)
		}
	}

	switch raw := raw.(type) {
	case map[string]any:
		return r.getStruct(t, name, raw)
	case json.Number:
		if i, err := raw.Int64(); err == nil {
			return getInt(t, name, i)
		}
		f, err := raw.Float64()
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w decoding number for %q", err, name)
		}
		return getFloat(t, name, f)
	case string:
		return getString(t, name, raw)
	case bool:
		if t.Kind() != reflect.Bool {
			return reflect.Value{}, fmt.Errorf("%q expected %v not a Boolean", name, t)
		}
		return reflect.ValueOf(raw).Convert(t), nil
	case int:
		return getInt(t, name, int64(raw))
	case int32:
		return getInt(t, name, int64(raw))
	case int64:
		return getInt(t, name, raw)
	case float32:
		return getFloat(t, name, float64(raw))
	case float64:
		return getFloat(t, name, raw)
	}

	v := reflect.ValueOf(raw)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Kind() == t.Kind() && v.Type().ConvertibleTo(t) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%q of type %T cannot be used as %v", name, raw, t)
}

// getStruct converts a map (eg from the JSON decoder) to a struct including any nested structs, and slices
func (r *Resolver) getStruct(t reflect.Type, name string, m map[string]any) (reflect.Value, error) {
	if t.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%q is an input object but expected %v", name, t)
	}

	// Create an instance of the struct and fill in the exported fields using m
	retval := reflect.New(t).Elem()
	used := make(map[string]struct{}, len(m))
	for idx := 0; idx < t.NumField(); idx++ {
		f := t.Field(idx)
		fieldInfo, err := field.Get(&f)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "getting field %q of %v", f.Name, t)
		}
		if fieldInfo == nil || f.Name == "_" {
			continue // ignore unexported field
		}
		value, ok := m[fieldInfo.Name]
		if !ok {
			continue
		}
		used[fieldInfo.Name] = struct{}{}

		var gql *ast.Type
		if fieldInfo.GQLTypeName != "" {
			if gql, err = schema.ParseTypeRef(fieldInfo.GQLTypeName); err != nil {
				return reflect.Value{}, errors.Wrapf(err, "type of field %q of %v", f.Name, t)
			}
		}
		v, err := r.value(f.Type, gql, name+"."+fieldInfo.Name, value)
		if err != nil {
			return reflect.Value{}, err
		}
		retval.Field(idx).Set(v)
	}
	if len(used) != len(m) {
		for k := range m {
			if _, ok := used[k]; !ok {
				return reflect.Value{}, fmt.Errorf("%q is not a field of input %q", k, name)
			}
		}
	}
	return retval, nil
}

// getList converts a list of values from a GraphQL variable or literal into a Go slice or array
func (r *Resolver) getList(t reflect.Type, elemGQL *ast.Type, name string, list []any) (reflect.Value, error) {
	var retval reflect.Value
	if t.Kind() == reflect.Array {
		if len(list) != t.Len() {
			return reflect.Value{}, fmt.Errorf("%q expected a list of %d values not %d", name, t.Len(), len(list))
		}
		retval = reflect.New(t).Elem()
	} else {
		retval = reflect.MakeSlice(t, len(list), len(list))
	}
	for i, value := range list {
		v, err := r.value(t.Elem(), elemGQL, name+"["+strconv.Itoa(i)+"]", value)
		if err != nil {
			return reflect.Value{}, err
		}
		retval.Index(i).Set(v)
	}
	return retval, nil
}

// getInt returns the integer i as a value of an integer, float or string (ID) type
func getInt(t reflect.Type, name string, i int64) (reflect.Value, error) {
	switch {
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Int64:
		if reflect.Zero(t).OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("%d overflows %v (for %q)", i, t, name)
		}
	case t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uintptr:
		if i < 0 || reflect.Zero(t).OverflowUint(uint64(i)) {
			return reflect.Value{}, fmt.Errorf("%d overflows %v (for %q)", i, t, name)
		}
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		return reflect.ValueOf(float64(i)).Convert(t), nil
	case t.Kind() == reflect.String:
		return reflect.ValueOf(strconv.FormatInt(i, 10)).Convert(t), nil // an ID may be supplied as an integer
	default:
		return reflect.Value{}, fmt.Errorf("%q expected %v not an Int", name, t)
	}
	return reflect.ValueOf(i).Convert(t), nil
}

// getFloat returns f as a value of a float type or, if f is integral, an integer type
func getFloat(t reflect.Type, name string, f float64) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(f).Convert(t), nil
	}
	if isInteger(t.Kind()) && f == float64(int64(f)) {
		return getInt(t, name, int64(f))
	}
	return reflect.Value{}, fmt.Errorf("%q expected %v not a Float (%g)", name, t, f)
}

// getString converts a string into a value of string type t
func getString(t reflect.Type, name string, s string) (reflect.Value, error) {
	if t.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("%q expected %v not a String", name, t)
	}
	return reflect.ValueOf(s).Convert(t), nil
}

// scalarString gets the string to decode a custom scalar from
func scalarString(name string, raw any) (string, error) {
	switch raw := raw.(type) {
	case string:
		return raw, nil
	case map[string]any, []any:
		return "", fmt.Errorf("%q expected a scalar not %T", name, raw)
	}
	return fmt.Sprint(raw), nil
}

func isInteger(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uintptr
}
