package level

import (
	"fmt"
	"strconv"
	"strings"
)

// Tuple is a (column, row) pair as written in a level file, row counted from the top
type Tuple struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (t Tuple) String() string {
	return fmt.Sprintf("(%d, %d)", t.Col, t.Row)
}

// ParseTuple parses "(int, int)" with optional spaces around the numbers
func ParseTuple(s string) (Tuple, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") || len(s) < 2 {
		return Tuple{}, fmt.Errorf("%w: %q must be enclosed in parentheses", ErrTupleSyntax, s)
	}

	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return Tuple{}, fmt.Errorf("%w: %q must have exactly two components", ErrTupleSyntax, s)
	}

	col, err := parseIntToken(parts[0])
	if err != nil {
		return Tuple{}, err
	}
	row, err := parseIntToken(parts[1])
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{Col: col, Row: row}, nil
}

func parseIntToken(token string) (int, error) {
	token = strings.TrimSpace(token)
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &IntTokenError{Token: token, Err: err}
	}
	return n, nil
}

// ParseTupleList parses "{(int, int), (int, int), ...}" holding at least one tuple
func ParseTupleList(s string) ([]Tuple, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") || len(s) < 2 {
		return nil, fmt.Errorf("%w: %q must be enclosed in braces", ErrTupleSyntax, s)
	}

	rest := strings.TrimSpace(s[1 : len(s)-1])
	if rest == "" {
		return nil, fmt.Errorf("%w: %q holds no tuples", ErrTupleSyntax, s)
	}

	var tuples []Tuple
	for {
		if !strings.HasPrefix(rest, "(") {
			return nil, fmt.Errorf("%w: expected '(' at %q", ErrTupleSyntax, rest)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated tuple %q", ErrTupleSyntax, rest)
		}

		tuple, err := ParseTuple(rest[:end+1])
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, tuple)

		rest = strings.TrimSpace(rest[end+1:])
		if rest == "" {
			return tuples, nil
		}
		if !strings.HasPrefix(rest, ",") {
			return nil, fmt.Errorf("%w: expected ',' between tuples at %q", ErrTupleSyntax, rest)
		}
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return nil, fmt.Errorf("%w: trailing ',' in %q", ErrTupleSyntax, s)
		}
	}
}

// FormatTupleList is the inverse of ParseTupleList
func FormatTupleList(tuples []Tuple) string {
	parts := make([]string, len(tuples))
	for i, t := range tuples {
		parts[i] = t.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
