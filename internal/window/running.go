// Package window computes running aggregates over ordered sequences.
//
// The SQL scripts this replaces threaded a session variable through row
// evaluation; here it is an explicit prefix scan over an immutable slice.
package window

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Entry is one (key, value) element. The key is anything monotonically
// ordered - a calendar day in the revenue reports, but nothing here depends
// on it being a date.
type Entry[K comparable] struct {
	Key   K
	Value decimal.Decimal
}

// Cumulative carries the entry plus its prefix sum.
type Cumulative[K comparable] struct {
	Key     K
	Value   decimal.Decimal
	Running decimal.Decimal
}

// DuplicateKeyError reports a key appearing more than once; the running
// order would be ambiguous.
type DuplicateKeyError struct {
	Key any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %v in running total input", e.Key)
}

// RunningTotal returns each entry with the exact sum of all values up to
// and including it, in input order. Input must be pre-sorted by key with
// unique keys; sorting is the caller's contract, uniqueness is checked.
func RunningTotal[K comparable](entries []Entry[K]) ([]Cumulative[K], error) {
	seen := make(map[K]bool, len(entries))
	out := make([]Cumulative[K], 0, len(entries))
	var total decimal.Decimal
	for _, e := range entries {
		if seen[e.Key] {
			return nil, &DuplicateKeyError{Key: e.Key}
		}
		seen[e.Key] = true
		total = total.Add(e.Value)
		out = append(out, Cumulative[K]{Key: e.Key, Value: e.Value, Running: total})
	}
	return out, nil
}
