// Package dataset implements the column-oriented numeric table the
// interpreter reads variable columns from. A Dataset is keyed by variable
// hash rather than by name — the same hash a Variable node's Node.Hash
// field carries — and guarantees a contiguous view for any half-open row
// range.
package dataset

import "fmt"

// Range is a half-open row interval [Start, End) into the dataset.
type Range struct {
	Start int
	End   int
}

// Size returns the number of rows the range spans.
func (r Range) Size() int { return r.End - r.Start }

// Validate reports whether the range is well-formed: non-negative start,
// end not before start.
func (r Range) Validate() error {
	if r.Start < 0 {
		return fmt.Errorf("dataset: range start %d is negative", r.Start)
	}
	if r.End < r.Start {
		return fmt.Errorf("dataset: range end %d precedes start %d", r.End, r.Start)
	}
	return nil
}

// Dataset is a read-only, hash-keyed column store. Columns are contiguous
// float64 slices; a Dataset guarantees O(1), zero-copy access to any
// [start,end) sub-range of a known column.
type Dataset struct {
	columns map[uint64][]float64
	rows    int
}

// Column names a variable's dataset column by the same hash its Node.Hash
// field carries.
type Column struct {
	Hash   uint64
	Values []float64
}

// New builds a Dataset from a set of named columns. All columns must have
// the same length; that length becomes the dataset's row count. Duplicate
// hashes are a construction error, not silently overwritten.
func New(columns ...Column) (*Dataset, error) {
	cols := make(map[uint64][]float64, len(columns))
	rows := -1
	for _, c := range columns {
		if _, exists := cols[c.Hash]; exists {
			return nil, fmt.Errorf("dataset: duplicate column hash %d", c.Hash)
		}
		if rows == -1 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return nil, fmt.Errorf("dataset: column %d has %d rows, want %d", c.Hash, len(c.Values), rows)
		}
		cols[c.Hash] = c.Values
	}
	if rows == -1 {
		rows = 0
	}
	return &Dataset{columns: cols, rows: rows}, nil
}

// Rows returns the number of rows every column in the dataset holds.
func (d *Dataset) Rows() int { return d.rows }

// HasColumn reports whether hash names a known column.
func (d *Dataset) HasColumn(hash uint64) bool {
	_, ok := d.columns[hash]
	return ok
}

// View returns a contiguous, zero-copy slice of the named column over
// rng. An unknown hash or an out-of-bounds range is a precondition
// violation reported as an error rather than a panic, since dataset
// construction is a data-driven boundary the caller may not fully
// control (unlike tree shape, which is caller-authored).
func (d *Dataset) View(hash uint64, rng Range) ([]float64, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	col, ok := d.columns[hash]
	if !ok {
		return nil, fmt.Errorf("dataset: unknown variable hash %d", hash)
	}
	if rng.End > len(col) {
		return nil, fmt.Errorf("dataset: range end %d exceeds column length %d for hash %d", rng.End, len(col), hash)
	}
	return col[rng.Start:rng.End], nil
}
