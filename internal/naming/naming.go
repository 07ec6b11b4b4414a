// Package naming decides the GraphQL names of types made from Go types
package naming

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/LiuXiaoZhuang/graphql/internal/annotation"
)

const (
	typeSuffix  = "Type"
	inputSuffix = "Input"
)

// Default is the standard naming strategy
type Default struct{}

// GetOutputTypeName returns the annotation's name if it has one, else the name of the annotated Go
// type with any "Type" suffix removed (so UserType provides the fields of User)
func (Default) GetOutputTypeName(class reflect.Type, ann *annotation.Type) string {
	if ann != nil && ann.Name != "" {
		return ann.Name
	}
	t := class
	if ann != nil && ann.Annotated != nil {
		t = ann.Annotated
	}
	name := TypeName(t)
	if trimmed := strings.TrimSuffix(name, typeSuffix); trimmed != "" {
		name = trimmed
	}
	return name
}

// GetInputTypeName returns the name of the GraphQL input type made from a Go struct
func (Default) GetInputTypeName(t reflect.Type) string {
	name := TypeName(t)
	if strings.HasSuffix(name, inputSuffix) {
		return name
	}
	return name + inputSuffix
}

// TypeName is the name of a Go type, following pointers, without any punctuation from
// generic type arguments (eg "Page[main.User]" becomes "PageUser")
func TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if open := strings.IndexRune(name, '['); open > -1 {
		args := name[open:]
		name = name[:open]
		for _, arg := range strings.FieldsFunc(args, func(r rune) bool { return r == '[' || r == ']' || r == ',' }) {
			if dot := strings.LastIndexAny(arg, "./"); dot > -1 {
				arg = arg[dot+1:]
			}
			name += strings.Map(func(r rune) rune {
				if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
					return r
				}
				return -1
			}, arg)
		}
	}
	return name
}
