package field

// tag.go handles extracting info from the "egg:" tag string (from struct field metadata)

import (
	"errors"
	"fmt"
	"strings"
)

// TagName is the struct tag key holding GraphQL metadata
const TagName = "egg"

// GetInfoFromTag extracts GraphQL field name and type info from the field's tag (if any)
// If the tag just contains a dash (-) then nil is returned (no error).  If the tag string is empty
// (e.g. if no tag was supplied) then the returned Info is not nil but the Name field is empty.
// A tag may start with the method option, so that `method=FullName` is the same as `,method=FullName`.
func GetInfoFromTag(tag string) (*Info, error) {
	if tag == "-" {
		return nil, nil // this field is to be ignored
	}
	parts, description, err := SplitWithDesc(tag)
	if err != nil {
		return nil, fmt.Errorf("%w splitting tag %q", err, tag)
	}

	var fieldInfo *Info
	for i, part := range parts {
		if i == 0 { // first string is the name
			if method := getMethod(part); method != "" {
				fieldInfo = &Info{Method: method} // no name, just the method option
				continue
			}
			fieldInfo, err = getMain(part)
			if err != nil {
				return nil, fmt.Errorf("%w resolver %q of tag %q", err, part, tag)
			}
			continue
		}
		if part == "" {
			continue // ignore empty sections
		}
		if part == "nullable" {
			fieldInfo.Nullable = true
			continue
		}
		if part == "source" {
			fieldInfo.Source = true
			continue
		}
		if method := getMethod(part); method != "" {
			fieldInfo.Method = method
			continue
		}
		if strings.HasPrefix(part, "args") {
			return nil, errors.New(`args option is not supported - add arguments (in brackets) after the field name`)
		}
		return nil, fmt.Errorf("unknown option %q in %q", part, tag)
	}
	fieldInfo.Description = description

	return fieldInfo, nil
}

// getMain handles the first part of the tag which may just be the field name (or even empty), but can
// also include a type after a colon (:) and arguments (comma-separated and within brackets), where
// each argument can have a name, type (after :), default value (after =) and description (after #).
// Note that the field name and types can be deduced (from the Go field name/type) and left out
// (except for the names of arguments).
func getMain(s string) (r *Info, err error) {
	r = &Info{}

	// First check if there is a field name (if not it is later derived from the Go field name)
	if s == "" || s[0] != ':' && s[0] != '(' {
		i := strings.IndexAny(s, ":(")
		if i == -1 {
			r.Name = s // empty string or just name
			return
		}
		r.Name = s[:i]
		s = s[i:]
	}

	// Next check if there's a trailing type (if not then it is derived from the field type)
	colon := -1
loop:
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ':':
			colon = i
			break loop
		case ')': // stop at end of args so we don't find colons inside the args
			break loop
		}
	}
	if colon > -1 {
		r.GQLTypeName = strings.TrimSpace(s[colon+1:])
		s = s[:colon]
	}

	// Finally, if there are brackets then get the arguments
	list, err := getBracketedList(s)
	if err != nil {
		return nil, fmt.Errorf("%w getting field args", err)
	} else if list != nil {
		r.Args = make([]string, len(list))
		r.ArgTypes = make([]string, len(list))
		r.ArgDefaults = make([]string, len(list))
		r.ArgDescriptions = make([]string, len(list))
		for paramIndex, s := range list {
			// Strip description after hash (#)
			subParts, desc, err := SplitWithDesc(s)
			if err != nil {
				return nil, err
			}
			s = subParts[0]
			r.ArgDescriptions[paramIndex] = desc

			// Strip off default value (if any) after equals sign (=)
			if eq := strings.Index(s, "="); eq > -1 {
				r.ArgDefaults[paramIndex] = strings.TrimSpace(s[eq+1:])
				s = s[:eq]
			}
			// Strip off type name after colon (:)
			if colon := strings.Index(s, ":"); colon > -1 {
				r.ArgTypes[paramIndex] = strings.TrimSpace(s[colon+1:])
				s = s[:colon]
			}

			r.Args[paramIndex] = strings.TrimSpace(s)
		}
	}
	return
}

// getMethod checks for the "method=" option and returns the Go method name (or "" if not found)
func getMethod(s string) string {
	if strings.HasPrefix(s, "method=") {
		return strings.TrimSpace(strings.TrimPrefix(s, "method="))
	}
	return ""
}

// getBracketedList gets a list of values from a string enclosed in brackets.
// Eg for getBracketedList("(a,b=2)") it will return the list of strings {"a", "b=2"}.
// It may return an error for badly formatted metadata.  If s does not start with a bracket
// it returns nil (and no error).
func getBracketedList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") {
		if s != "" {
			return nil, fmt.Errorf("unexpected %q (arguments must be in brackets)", s)
		}
		return nil, nil
	}

	// Get the bracket-enclosed string and split using commas
	last := len(s) - 1
	if last < 1 || s[last] != ')' {
		return nil, errors.New("arguments not in brackets")
	}
	s = strings.TrimSpace(s[1:last])
	if s == "" {
		// Avoid behaviour of strings.Split on boundary condition (empty string)
		return []string{}, nil // empty parameter list
	}
	return SplitArgs(s)
}

// TypeTag is the info from the tag on a blank (_) field that annotates the enclosing struct
type TypeTag struct {
	Kind        string // TypeKeyword or ExtendKeyword
	Name        string // explicit GraphQL type name (may be empty)
	Description string
}

const (
	TypeKeyword   = "type"
	ExtendKeyword = "extend"
)

// GetTypeTag parses a struct (type) annotation - eg `egg:"type=User # a registered user"`.
// It returns nil (and no error) if the tag is not a type or extend annotation.
func GetTypeTag(tag string) (*TypeTag, error) {
	if tag == "" || tag == "-" {
		return nil, nil
	}
	parts, description, err := SplitWithDesc(tag)
	if err != nil {
		return nil, fmt.Errorf("%w splitting tag %q", err, tag)
	}
	kind, name := parts[0], ""
	if eq := strings.Index(kind, "="); eq > -1 {
		kind, name = strings.TrimSpace(kind[:eq]), strings.TrimSpace(kind[eq+1:])
		if name == "" {
			return nil, fmt.Errorf("empty type name in %q", tag)
		}
	}
	if kind != TypeKeyword && kind != ExtendKeyword {
		return nil, nil
	}
	for _, part := range parts[1:] {
		if part != "" {
			return nil, fmt.Errorf("unknown option %q in %q", part, tag)
		}
	}
	return &TypeTag{Kind: kind, Name: name, Description: description}, nil
}
