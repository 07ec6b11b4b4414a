package schema

// validate.go has functions to help check that schema names and values are valid

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

var nameRegex = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

// ValidName checks that a string contains a valid GraphQL identifier like a type, field or
// argument name or an enum value.
func ValidName(s string) bool {
	if strings.HasPrefix(s, "__") {
		return false // reserved names
	}
	return nameRegex.MatchString(s)
}

// NewEnum checks the enum name and values, returning the enum type.  Anything after a hash (#)
// in a value is ignored (for compatibility with enum lists that carry descriptions).
func NewEnum(name, description string, values []string) (*EnumType, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("enum %q is not a valid name", name)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("enum %q has no values", name)
	}
	r := &EnumType{Name: name, Description: description, Values: make([]string, 0, len(values))}
	inUse := make(map[string]struct{}, len(values)) // for repeated value check
	for _, v := range values {
		v = strings.TrimSpace(strings.Split(v, "#")[0])
		if v == "true" || v == "false" || v == "null" { // reserved names
			return nil, fmt.Errorf("%q is not an allowed enum value (enum %s)", v, name)
		}
		if !ValidName(v) {
			return nil, fmt.Errorf("%q is not a valid enum value (enum %s)", v, name)
		}
		if _, ok := inUse[v]; ok {
			return nil, fmt.Errorf("%q is a repeated enum value (enum %s)", v, name)
		}
		inUse[v] = struct{}{}
		r.Values = append(r.Values, v)
	}
	return r, nil
}

// ParseTypeRef converts a GraphQL type reference such as "[Int!]!" into an *ast.Type
func ParseTypeRef(s string) (*ast.Type, error) {
	t, rest, err := parseTypeRef(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("unexpected %q after type in %q", rest, s)
	}
	return t, nil
}

func parseTypeRef(s string) (t *ast.Type, rest string, err error) {
	if strings.HasPrefix(s, "[") {
		var elem *ast.Type
		if elem, rest, err = parseTypeRef(strings.TrimSpace(s[1:])); err != nil {
			return
		}
		if !strings.HasPrefix(rest, "]") {
			return nil, "", fmt.Errorf("missing closing bracket (]) in type %q", s)
		}
		rest = strings.TrimSpace(rest[1:])
		t = ast.ListType(elem, nil)
	} else {
		end := strings.IndexAny(s, "[]! ")
		if end == -1 {
			end = len(s)
		}
		if !ValidName(s[:end]) {
			return nil, "", fmt.Errorf("%q is not a valid type name", s[:end])
		}
		t, rest = ast.NamedType(s[:end], nil), strings.TrimSpace(s[end:])
	}
	if strings.HasPrefix(rest, "!") {
		t.NonNull = true
		rest = strings.TrimSpace(rest[1:])
	}
	return
}
