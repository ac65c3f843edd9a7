// Package rel provides the relational primitives the reports are built from:
// equi-joins and grouping with aggregates over in-memory row slices.
//
// Everything here is a pure function of its inputs; nothing is cached or
// mutated, so calls are safe from any number of goroutines.
package rel

// Joined pairs an outer row with one matching inner row. For a left join
// with no match, Right is the zero value and Matched is false.
type Joined[L, R any] struct {
	Left    L
	Right   R
	Matched bool
}

// LeftJoin returns one row per (outer, matching inner) pair, or a single
// unmatched row when no inner row shares the key. Outer order is preserved;
// inner rows for one key come out in their original relative order. A key
// with no counterpart is not an error.
func LeftJoin[L, R any, K comparable](outer []L, inner []R, leftKey func(L) K, rightKey func(R) K) []Joined[L, R] {
	byKey := make(map[K][]int, len(inner))
	for i, r := range inner {
		k := rightKey(r)
		byKey[k] = append(byKey[k], i)
	}

	out := make([]Joined[L, R], 0, len(outer))
	for _, l := range outer {
		idxs := byKey[leftKey(l)]
		if len(idxs) == 0 {
			out = append(out, Joined[L, R]{Left: l})
			continue
		}
		for _, i := range idxs {
			out = append(out, Joined[L, R]{Left: l, Right: inner[i], Matched: true})
		}
	}
	return out
}

// InnerJoin is LeftJoin without the unmatched rows.
func InnerJoin[L, R any, K comparable](outer []L, inner []R, leftKey func(L) K, rightKey func(R) K) []Joined[L, R] {
	all := LeftJoin(outer, inner, leftKey, rightKey)
	out := all[:0]
	for _, j := range all {
		if j.Matched {
			out = append(out, j)
		}
	}
	return out
}
