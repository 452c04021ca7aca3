package gray

type direction int

const (
	ascending  direction = 1
	descending direction = -1
)

func (d direction) String() string {
	if d == descending {
		return "descending"
	}
	return "ascending"
}

// bounce walks a selector over [0, radix-1], turning around at either bound
// so that the bound value is repeated once instead of wrapping.
type bounce struct {
	radix    int
	selector int
	dir      direction
}

func newBounce(radix int) bounce {
	return bounce{radix: radix, dir: ascending}
}

func (b *bounce) step() {
	b.selector += int(b.dir)
	switch b.selector {
	case b.radix:
		b.selector = b.radix - 1
		b.dir = descending
	case -1:
		b.selector = 0
		b.dir = ascending
	}
}

func (b *bounce) value() int {
	return b.selector
}
