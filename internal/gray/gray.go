// Package gray generates generalized reflected gray codes for an arbitrary
// radix.
//
// Every digit position counts up through 0..radix-1 and then back down
// instead of wrapping, holding each value for radix^j consecutive words,
// where j is the position counted from the least significant digit. Adjacent
// words therefore differ in exactly one digit by exactly one step.
package gray

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidRadix = errors.New("gray: radix must be at least 1")
	ErrInvalidBits  = errors.New("gray: digit count must not be negative")
	ErrTooLarge     = errors.New("gray: code table too large")
)

// MaxCells bounds rows*numBits for a generated table, keeping the backing
// slice within 32-bit signed range on every platform.
const MaxCells = math.MaxInt32

// RowCount returns radix^numBits, the number of words in a full code.
func RowCount(numBits, radix int) (int, error) {
	if radix < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRadix, radix)
	}
	if numBits < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBits, numBits)
	}
	if radix == 1 {
		return 1, nil
	}
	rows := 1
	for i := 0; i < numBits; i++ {
		if rows > math.MaxInt/radix {
			return 0, fmt.Errorf("%w: %d^%d", ErrTooLarge, radix, numBits)
		}
		rows *= radix
	}
	return rows, nil
}

// Generate builds the full code for numBits digit positions in the given
// radix. A radix of 1 yields a single all-zero word and numBits of 0 yields a
// single empty word.
func Generate(numBits, radix int) (*Table, error) {
	rows, err := RowCount(numBits, radix)
	if err != nil {
		return nil, err
	}
	if numBits > 0 && rows > MaxCells/numBits {
		return nil, fmt.Errorf("%w: %d rows of %d digits exceeds %d cells", ErrTooLarge, rows, numBits, MaxCells)
	}
	t := &Table{
		width: numBits,
		rows:  rows,
		cells: make([]int, rows*numBits),
	}
	// Columns are independent; limit is radix^(numBits-col-1).
	limit := 1
	for col := numBits - 1; col >= 0; col-- {
		fillColumn(t, col, limit, radix)
		if col > 0 {
			limit *= radix
		}
	}
	return t, nil
}

func fillColumn(t *Table, col, limit, radix int) {
	b := newBounce(radix)
	for row := 0; row < t.rows; row++ {
		if row != 0 && row%limit == 0 {
			b.step()
		}
		t.cells[row*t.width+col] = b.value()
	}
}
