package level

import (
	"errors"
	"testing"
)

func TestParseTuple(t *testing.T) {
	tests := []struct {
		input    string
		expected Tuple
		wantErr  bool
	}{
		{"(1,2)", Tuple{1, 2}, false},
		{"( 3 , -4 )", Tuple{3, -4}, false},
		{"  (10, 0)  ", Tuple{10, 0}, false},
		{"1, 2", Tuple{}, true},
		{"(1, 2", Tuple{}, true},
		{"(1)", Tuple{}, true},
		{"(1, 2, 3)", Tuple{}, true},
		{"(a, 2)", Tuple{}, true},
		{"()", Tuple{}, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseTuple(test.input)
			if test.wantErr {
				if !errors.Is(err, ErrTupleSyntax) {
					t.Errorf("Expected ErrTupleSyntax, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != test.expected {
				t.Errorf("Expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestParseTupleReportsBadToken(t *testing.T) {
	_, err := ParseTuple("(4, x7)")

	var tokenErr *IntTokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("Expected IntTokenError, got %v", err)
	}
	if tokenErr.Token != "x7" {
		t.Errorf("Expected failing token x7, got %q", tokenErr.Token)
	}
}

func TestParseTupleList(t *testing.T) {
	tests := []struct {
		input    string
		expected []Tuple
		wantErr  bool
	}{
		{"{(1,2)}", []Tuple{{1, 2}}, false},
		{"{(1, 2), (3, 4)}", []Tuple{{1, 2}, {3, 4}}, false},
		{"{ (0,0) ,(5, 6),(7,8) }", []Tuple{{0, 0}, {5, 6}, {7, 8}}, false},
		{"{}", nil, true},
		{"(1, 2)", nil, true},
		{"{(1, 2) (3, 4)}", nil, true},
		{"{(1, 2),}", nil, true},
		{"{(1, 2), (3, 4}", nil, true},
		{"{(1, 2), (b, 4)}", nil, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseTupleList(test.input)
			if test.wantErr {
				if !errors.Is(err, ErrTupleSyntax) {
					t.Errorf("Expected ErrTupleSyntax, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(test.expected) {
				t.Fatalf("Expected %d tuples, got %d", len(test.expected), len(got))
			}
			for i := range got {
				if got[i] != test.expected[i] {
					t.Errorf("Tuple %d: expected %v, got %v", i, test.expected[i], got[i])
				}
			}
		})
	}
}

func TestFormatTupleList(t *testing.T) {
	tuples := []Tuple{{1, 2}, {-3, 4}}
	text := FormatTupleList(tuples)
	if text != "{(1, 2), (-3, 4)}" {
		t.Errorf("Unexpected format %q", text)
	}

	parsed, err := ParseTupleList(text)
	if err != nil {
		t.Fatalf("Formatted list does not parse: %v", err)
	}
	if parsed[1] != tuples[1] {
		t.Errorf("Expected %v, got %v", tuples[1], parsed[1])
	}
}
