// Package input acquires the digit count and radix for a run from either the
// command line or the first line of standard input.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrShape       = errors.New("unexpected number of arguments")
	ErrNotInteger  = errors.New("argument is not an integer")
	ErrRead        = errors.New("read input")
	ErrNotPositive = errors.New("argument must be positive")
)

// ShapeError reports a token count other than two.
type ShapeError struct {
	Got int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("Unexpected number of arguments! Expected 2 but got %d", e.Got)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// Params are the two integers that drive generation.
type Params struct {
	NumBits int
	Radix   int
}

// Validate requires both parameters to be positive.
func (p Params) Validate() error {
	if p.NumBits < 1 {
		return fmt.Errorf("%w: number of digits %d", ErrNotPositive, p.NumBits)
	}
	if p.Radix < 1 {
		return fmt.Errorf("%w: radix %d", ErrNotPositive, p.Radix)
	}
	return nil
}

// Acquire reads parameters from src. Shape problems are reported before any
// token is parsed.
func Acquire(src LineSource) (Params, error) {
	tokens, err := src.Tokens()
	if err != nil {
		return Params{}, err
	}
	if len(tokens) != 2 {
		return Params{}, &ShapeError{Got: len(tokens)}
	}
	vals := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return Params{}, fmt.Errorf("%w: %q: %w", ErrNotInteger, tok, err)
		}
		vals[i] = v
	}
	return Params{NumBits: vals[0], Radix: vals[1]}, nil
}
