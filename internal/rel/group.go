package rel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Func names the supported aggregate functions.
type Func string

const (
	Sum   Func = "SUM"
	Count Func = "COUNT"
	Max   Func = "MAX"
	Avg   Func = "AVG"
)

// ConfigurationError reports an aggregate spec that cannot be built. It is
// raised when the spec is constructed, never during GroupBy itself.
type ConfigurationError struct {
	Fn string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown aggregate function %q", e.Fn)
}

// Value is an extracted cell: Valid=false stands in for SQL NULL.
type Value struct {
	D     decimal.Decimal
	Valid bool
}

// Dec wraps a present decimal.
func Dec(d decimal.Decimal) Value { return Value{D: d, Valid: true} }

// Null is the absent value.
func Null() Value { return Value{} }

// Agg is a validated aggregate spec: a function applied to a per-row
// extractor. Build it with NewAgg so an unknown function name fails at
// setup.
type Agg[T any] struct {
	name string
	fn   Func
	of   func(T) Value
}

func NewAgg[T any](name string, fn Func, of func(T) Value) (Agg[T], error) {
	switch fn {
	case Sum, Count, Max, Avg:
	default:
		return Agg[T]{}, &ConfigurationError{Fn: string(fn)}
	}
	return Agg[T]{name: name, fn: fn, of: of}, nil
}

// MustAgg is NewAgg for specs written as literals in code.
func MustAgg[T any](name string, fn Func, of func(T) Value) Agg[T] {
	a, err := NewAgg(name, fn, of)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Agg[T]) Name() string { return a.name }

// Result is one computed aggregate within a group. An absent Value means
// MAX over an empty group or AVG with no non-null inputs.
type Result struct {
	Name  string
	Value Value
}

// Group is the output row for one key: the group size plus one Result per
// requested aggregate, in spec order.
type Group[K comparable] struct {
	Key     K
	Size    int
	Results []Result
}

// Get returns the named aggregate result.
func (g Group[K]) Get(name string) (Value, bool) {
	for _, r := range g.Results {
		if r.Name == name {
			return r.Value, true
		}
	}
	return Value{}, false
}

type accum struct {
	sum   decimal.Decimal
	count int64
	max   decimal.Decimal
	seen  bool // any non-null value observed
}

// GroupBy partitions rows by key and applies the aggregates per group.
// Output group order is first-seen key order. Null handling follows SQL:
// nulls add 0 to SUM, are skipped by COUNT and AVG's denominator, and MAX
// of only nulls is absent.
func GroupBy[T any, K comparable](rows []T, key func(T) K, aggs ...Agg[T]) []Group[K] {
	order := make([]K, 0)
	sizes := make(map[K]int)
	states := make(map[K][]accum)

	for _, row := range rows {
		k := key(row)
		st, ok := states[k]
		if !ok {
			order = append(order, k)
			st = make([]accum, len(aggs))
			states[k] = st
		}
		sizes[k]++
		for i, a := range aggs {
			v := a.of(row)
			if !v.Valid {
				continue
			}
			if !st[i].seen || v.D.GreaterThan(st[i].max) {
				st[i].max = v.D
			}
			st[i].sum = st[i].sum.Add(v.D)
			st[i].count++
			st[i].seen = true
		}
	}

	out := make([]Group[K], 0, len(order))
	for _, k := range order {
		st := states[k]
		results := make([]Result, len(aggs))
		for i, a := range aggs {
			results[i] = Result{Name: a.name, Value: finish(a.fn, st[i])}
		}
		out = append(out, Group[K]{Key: k, Size: sizes[k], Results: results})
	}
	return out
}

func finish(fn Func, st accum) Value {
	switch fn {
	case Sum:
		return Dec(st.sum) // all-null group sums to 0
	case Count:
		return Dec(decimal.NewFromInt(st.count))
	case Max:
		if !st.seen {
			return Null()
		}
		return Dec(st.max)
	case Avg:
		if st.count == 0 {
			return Null()
		}
		return Dec(st.sum.Div(decimal.NewFromInt(st.count)))
	}
	return Null() // unreachable: specs are validated at construction
}
