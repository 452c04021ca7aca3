package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineSource yields the raw parameter tokens for a run.
type LineSource interface {
	Tokens() ([]string, error)
}

// ArgsSource reads tokens from the command-line argument vector. A single
// argument is split on commas; any other count is used verbatim.
type ArgsSource struct {
	Args []string
}

func (s ArgsSource) Tokens() ([]string, error) {
	if len(s.Args) == 1 {
		return splitLine(s.Args[0]), nil
	}
	return s.Args, nil
}

// ReaderSource reads the first line of R and splits it on commas. An empty
// stream yields no tokens.
type ReaderSource struct {
	R io.Reader
}

func (s ReaderSource) Tokens() ([]string, error) {
	if s.R == nil {
		return nil, fmt.Errorf("%w: no reader", ErrRead)
	}
	br := bufio.NewReader(s.R)
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" && errors.Is(err, io.EOF) {
		return nil, nil
	}
	return splitLine(line), nil
}

// splitLine splits on commas and drops trailing empty tokens, so "5," is a
// single token while a line without commas is always one token.
func splitLine(line string) []string {
	if !strings.Contains(line, ",") {
		return []string{line}
	}
	parts := strings.Split(line, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// SourceFor selects the argument vector when any arguments were given and
// stdin otherwise.
func SourceFor(args []string, stdin io.Reader) LineSource {
	if len(args) == 0 {
		return ReaderSource{R: stdin}
	}
	return ArgsSource{Args: args}
}
