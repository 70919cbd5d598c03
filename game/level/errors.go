package level

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField        = errors.New("missing required field")
	ErrTupleSyntax         = errors.New("invalid tuple syntax")
	ErrUnknownTileCode     = errors.New("unknown tile code")
	ErrRaggedGrid          = errors.New("tile rows have different lengths")
	ErrPositionOutOfBounds = errors.New("position outside the tile map")
	ErrEmptyGrid           = errors.New("tile map has no rows")
)

// IntTokenError names the sub-token of a tuple that is not an integer
type IntTokenError struct {
	Token string
	Err   error
}

func (e *IntTokenError) Error() string {
	return fmt.Sprintf("%v: %q is not an integer", ErrTupleSyntax, e.Token)
}

func (e *IntTokenError) Unwrap() []error {
	return []error{ErrTupleSyntax, e.Err}
}

// TileCodeError reports a grid token that does not decode to a tile
type TileCodeError struct {
	Line   int
	Column int
	Token  string
}

func (e *TileCodeError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v %q", e.Line, e.Column, ErrUnknownTileCode, e.Token)
}

func (e *TileCodeError) Unwrap() error {
	return ErrUnknownTileCode
}

// RowLengthError reports a grid row whose token count differs from the first row
type RowLengthError struct {
	Line int
	Want int
	Got  int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("line %d: %v: expected %d tiles, got %d", e.Line, ErrRaggedGrid, e.Want, e.Got)
}

func (e *RowLengthError) Unwrap() error {
	return ErrRaggedGrid
}
