package field

// split.go has functions to split tag strings at a comma separator but allowing for brackets, quotes, etc

import (
	"fmt"
	"strings"
)

// SplitArgs splits a string on commas and returns the resulting slice of strings.
// It ignores commas within strings, round brackets, square brackets or braces, which
// allows for "nested" structures. For example "a,b(c,d),e"  => []string{ "a", "b(c,d)", "e" }
// An error is returned if there is a problem with the input string such as unmatched brackets.
func SplitArgs(s string) ([]string, error) {
	parts, _, err := split(s, false)
	return parts, err
}

// SplitWithDesc is like SplitArgs but also allows a trailing "description" (anything after the first #
// that is not inside brackets or a string).
// On success, it returns a list of strings, the description (if any) and a nil error.
func SplitWithDesc(s string) ([]string, string, error) {
	return split(s, true)
}

// split does a single pass over s, tracking nesting, and cuts it at top-level commas.
// If withDesc is true the first top-level hash (#) ends the list and the rest is returned as the description.
func split(s string, withDesc bool) ([]string, string, error) {
	var round, square, brace int
	var inString, escaped bool
	var parts []string
	start := 0
	desc := ""
	end := len(s)

loop:
	for i, c := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(':
			round++
		case '[':
			square++
		case '{':
			brace++
		case ')':
			round--
			if round < 0 {
				return nil, "", fmt.Errorf("unmatched right bracket ')' in %q", s)
			}
		case ']':
			square--
			if square < 0 {
				return nil, "", fmt.Errorf("unmatched right square bracket ']' in %q", s)
			}
		case '}':
			brace--
			if brace < 0 {
				return nil, "", fmt.Errorf("unmatched right brace '}' in %q", s)
			}
		case ',':
			if round == 0 && square == 0 && brace == 0 { // only split at "top-level" commas
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		case '#':
			if withDesc && round == 0 && square == 0 && brace == 0 {
				desc = strings.TrimSpace(s[i+1:])
				end = i
				break loop
			}
		}
	}
	if inString {
		return nil, "", fmt.Errorf("unmatched quote (unterminated string) in %q", s)
	}
	if round > 0 {
		return nil, "", fmt.Errorf("unmatched left bracket '(' in %q", s)
	}
	if square > 0 {
		return nil, "", fmt.Errorf("unmatched left square bracket '[' in %q", s)
	}
	if brace > 0 {
		return nil, "", fmt.Errorf("unmatched left brace '{' in %q", s)
	}

	// Add last (or only) segment
	parts = append(parts, strings.TrimSpace(s[start:end]))
	return parts, desc, nil
}
