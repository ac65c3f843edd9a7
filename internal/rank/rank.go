// Package rank assigns dense ranks and row numbers to pre-sorted sequences.
//
// The caller sorts; this package verifies. Handing it data that contradicts
// the claimed direction is an integration bug and fails loudly rather than
// producing silently wrong ranks.
package rank

import "fmt"

// Order is the direction the input claims to be sorted in.
type Order int

const (
	Descending Order = iota
	Ascending
)

func (o Order) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// OrderViolationError reports the first adjacent pair that breaks the
// claimed sort direction.
type OrderViolationError struct {
	Index int // position of the offending element
	Order Order
}

func (e *OrderViolationError) Error() string {
	return fmt.Sprintf("input not sorted %s at index %d", e.Order, e.Index)
}

// DenseRank returns one rank per row: ties share a rank and the next
// distinct value gets the previous rank + 1, so ranks have no gaps.
// cmp is a natural three-way comparison (negative when a < b); rows must
// already be sorted per ord. Empty input yields empty output.
func DenseRank[T any](rows []T, cmp func(a, b T) int, ord Order) ([]int, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ranks := make([]int, len(rows))
	ranks[0] = 1
	for i := 1; i < len(rows); i++ {
		c := cmp(rows[i-1], rows[i])
		if ord == Descending && c < 0 || ord == Ascending && c > 0 {
			return nil, &OrderViolationError{Index: i, Order: ord}
		}
		if c == 0 {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = ranks[i-1] + 1
		}
	}
	return ranks, nil
}

// RowNumber assigns 1..N in input order, no tie collapsing.
func RowNumber[T any](rows []T) []int {
	nums := make([]int, len(rows))
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
