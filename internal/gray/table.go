package gray

import (
	"errors"
	"fmt"
)

// ErrRaggedRows is returned by FromRows when rows differ in width.
var ErrRaggedRows = errors.New("gray: rows differ in width")

// Table holds a generated code in generation order. Rows are stored in print
// order: index 0 of a row is the most significant digit.
type Table struct {
	width int
	rows  int
	cells []int
}

// FromRows builds a table from explicit rows in print order.
func FromRows(rows [][]int) (*Table, error) {
	t := &Table{rows: len(rows)}
	if len(rows) > 0 {
		t.width = len(rows[0])
	}
	t.cells = make([]int, 0, t.rows*t.width)
	for i, row := range rows {
		if len(row) != t.width {
			return nil, fmt.Errorf("%w: row %d has %d digits, want %d", ErrRaggedRows, i, len(row), t.width)
		}
		t.cells = append(t.cells, row...)
	}
	return t, nil
}

// Rows returns the number of code words.
func (t *Table) Rows() int {
	return t.rows
}

// Width returns the number of digit positions per word.
func (t *Table) Width() int {
	return t.width
}

// Row returns the i-th word in print order. The slice aliases the table.
func (t *Table) Row(i int) []int {
	lo := i * t.width
	hi := lo + t.width
	return t.cells[lo:hi:hi]
}

// Digit returns the digit at position j of row i, where position 0 is the
// least significant digit.
func (t *Table) Digit(i, j int) int {
	return t.cells[i*t.width+t.width-1-j]
}

// Column copies out digit position j (0 = least significant) for every row.
func (t *Table) Column(j int) []int {
	out := make([]int, t.rows)
	for i := range out {
		out[i] = t.Digit(i, j)
	}
	return out
}

// Equal reports whether both tables hold the same words in the same order.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.width != o.width || t.rows != o.rows {
		return false
	}
	for i, v := range t.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}
