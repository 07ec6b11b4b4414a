package schema

// literal.go converts between Go values and GraphQL literals (as used for argument defaults)

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/LiuXiaoZhuang/graphql/internal/field"
)

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// quote makes a GraphQL string literal
func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

// ParseLiteral parses the text of a GraphQL constant value, such as an argument default.
// The raw value (eg int64, string, []interface{}) is available using the Value method (with nil variables).
func ParseLiteral(lit string) (*ast.Value, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "literal", Input: "{f(v: " + lit + ")}"})
	if err != nil {
		return nil, errors.Wrapf(err, "parsing literal %q", lit)
	}
	if len(doc.Operations) != 1 || len(doc.Operations[0].SelectionSet) != 1 {
		return nil, fmt.Errorf("%q is not a single GraphQL value", lit)
	}
	f, ok := doc.Operations[0].SelectionSet[0].(*ast.Field)
	if !ok || len(f.Arguments) != 1 || f.Arguments[0].Name != "v" {
		return nil, fmt.Errorf("%q is not a single GraphQL value", lit)
	}
	value := f.Arguments[0].Value
	if hasVariable(value) {
		return nil, fmt.Errorf("literal %q cannot use a variable", lit)
	}
	return value, nil
}

func hasVariable(v *ast.Value) bool {
	if v.Kind == ast.Variable {
		return true
	}
	for _, child := range v.Children {
		if hasVariable(child.Value) {
			return true
		}
	}
	return false
}

// Literal returns the GraphQL literal for a Go value
func Literal(v any) string {
	return literal(nil, nil, reflect.ValueOf(v))
}

// literal converts v into a GraphQL literal. If t names an enum of reg then an integer gives
// the name of the enum value.
func literal(reg *Registry, t *ast.Type, v reflect.Value) string {
	if !v.IsValid() {
		return "null"
	}
	var enum *EnumType
	if reg != nil && t != nil {
		if registered, ok := reg.Lookup(t.Name()); ok {
			enum, _ = registered.(*EnumType)
		}
	}
	var elemType *ast.Type
	if t != nil {
		elemType = t.Elem
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return "null"
		}
		return literal(reg, t, v.Elem())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if enum != nil && v.Int() >= 0 && v.Int() < int64(len(enum.Values)) {
			return enum.Values[v.Int()]
		}
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if enum != nil && v.Uint() < uint64(len(enum.Values)) {
			return enum.Values[v.Uint()]
		}
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.String:
		if enum != nil {
			return v.String()
		}
		return quote(v.String())
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return "null"
		}
		list := make([]string, v.Len())
		for i := range list {
			list[i] = literal(reg, elemType, v.Index(i))
		}
		return "[" + strings.Join(list, ", ") + "]"
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		values := make(map[string]string, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			values[k] = literal(reg, nil, iter.Value())
		}
		sort.Strings(keys)
		fields := make([]string, len(keys))
		for i, k := range keys {
			fields[i] = k + ": " + values[k]
		}
		return "{" + strings.Join(fields, ", ") + "}"
	case reflect.Struct:
		if v.CanInterface() {
			if s, ok := v.Interface().(fmt.Stringer); ok {
				return quote(s.String())
			}
		}
		var fields []string
		for i := 0; i < v.NumField(); i++ {
			f := v.Type().Field(i)
			info, err := field.Get(&f)
			if err != nil || info == nil || f.Name == "_" {
				continue
			}
			fields = append(fields, info.Name+": "+literal(reg, nil, v.Field(i)))
		}
		return "{" + strings.Join(fields, ", ") + "}"
	}
	return quote(v.String())
}
