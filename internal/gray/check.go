package gray

import (
	"fmt"
	"strconv"
)

// FindingKind classifies a property violation reported by Check.
type FindingKind string

const (
	KindRowCount   FindingKind = "row-count"
	KindDigitRange FindingKind = "digit-range"
	KindStep       FindingKind = "step"
	KindDuplicate  FindingKind = "duplicate"
)

// Finding describes a single violation. Row is the zero-based word index, or
// -1 for findings about the table as a whole.
type Finding struct {
	Row     int         `json:"row"`
	Kind    FindingKind `json:"kind"`
	Message string      `json:"message"`
}

func (f Finding) String() string {
	if f.Row < 0 {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
	return fmt.Sprintf("row %d: %s: %s", f.Row, f.Kind, f.Message)
}

// Check verifies that t is a complete reflected gray code in the given radix:
// radix^width distinct words, digits in range, and every pair of neighbours
// differing in one position by one step. Findings are returned in row order.
func Check(t *Table, radix int) []Finding {
	var findings []Finding
	want, err := RowCount(t.Width(), radix)
	switch {
	case err != nil:
		findings = append(findings, Finding{Row: -1, Kind: KindRowCount, Message: err.Error()})
	case want != t.Rows():
		findings = append(findings, Finding{
			Row:     -1,
			Kind:    KindRowCount,
			Message: fmt.Sprintf("got %d words, want %d", t.Rows(), want),
		})
	}

	seen := make(map[string]int, t.Rows())
	key := make([]byte, 0, 4*t.Width())
	for i := 0; i < t.Rows(); i++ {
		row := t.Row(i)
		for col, v := range row {
			if v < 0 || v >= radix {
				findings = append(findings, Finding{
					Row:     i,
					Kind:    KindDigitRange,
					Message: fmt.Sprintf("digit %d at position %d outside [0, %d)", v, t.Width()-1-col, radix),
				})
			}
		}
		if i > 0 {
			if msg := stepViolation(t.Row(i-1), row); msg != "" {
				findings = append(findings, Finding{Row: i, Kind: KindStep, Message: msg})
			}
		}
		key = key[:0]
		for _, v := range row {
			key = strconv.AppendInt(key, int64(v), 10)
			key = append(key, ',')
		}
		if first, ok := seen[string(key)]; ok {
			findings = append(findings, Finding{
				Row:     i,
				Kind:    KindDuplicate,
				Message: fmt.Sprintf("repeats row %d", first),
			})
			continue
		}
		seen[string(key)] = i
	}
	return findings
}

// stepViolation returns an empty string when cur differs from prev in at most
// one position and by exactly one there.
func stepViolation(prev, cur []int) string {
	changed := 0
	for col := range cur {
		d := cur[col] - prev[col]
		if d == 0 {
			continue
		}
		changed++
		if d != 1 && d != -1 {
			return fmt.Sprintf("position %d jumps from %d to %d", len(cur)-1-col, prev[col], cur[col])
		}
	}
	if changed > 1 {
		return fmt.Sprintf("%d positions change at once", changed)
	}
	return ""
}
