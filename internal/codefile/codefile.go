// Package codefile reads and writes gray code tables as plain text: one word
// per line, digits concatenated most significant first with no separator.
package codefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"example.com/graycode/internal/gray"
)

// DefaultFileName is the conventional output path.
const DefaultFileName = "gray.txt"

const filePerm = 0o644

var ErrBadDigit = errors.New("codefile: invalid digit")

// Write serializes t to w. The caller owns flushing w if it is buffered.
func Write(w io.Writer, t *gray.Table) (int64, error) {
	var written int64
	line := make([]byte, 0, 2*t.Width()+1)
	for i := 0; i < t.Rows(); i++ {
		line = line[:0]
		for _, d := range t.Row(i) {
			line = strconv.AppendInt(line, int64(d), 10)
		}
		line = append(line, '\n')
		n, err := w.Write(line)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return written, nil
}

// WriteFile creates path and writes t into it. The file is closed on every
// path; a failure part way through may leave a truncated file.
func WriteFile(path string, t *gray.Table) (n int64, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	bw := bufio.NewWriter(f)
	n, err = Write(bw, t)
	if err != nil {
		return n, err
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush %s: %w", path, err)
	}
	return n, nil
}

// Read parses a table written by Write. Every character is taken as one digit,
// so only tables with radix up to 10 round-trip.
func Read(r io.Reader) (*gray.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var rows [][]int
	for lineNo := 1; sc.Scan(); lineNo++ {
		text := sc.Bytes()
		if n := len(text); n > 0 && text[n-1] == '\r' {
			text = text[:n-1]
		}
		row := make([]int, len(text))
		for i, c := range text {
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrBadDigit, lineNo, i+1, c)
			}
			row[i] = int(c - '0')
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	t, err := gray.FromRows(rows)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*gray.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
