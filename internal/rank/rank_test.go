package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intCmp(a, b int) int { return a - b }

func TestDenseRankDescending(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"distinct", []int{50, 30, 10}, []int{1, 2, 3}},
		{"ties share rank, no gaps", []int{50, 30, 30, 10}, []int{1, 2, 2, 3}},
		{"all equal", []int{7, 7, 7}, []int{1, 1, 1}},
		{"single", []int{42}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DenseRank(tt.in, intCmp, Descending)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDenseRankAscending(t *testing.T) {
	got, err := DenseRank([]int{10, 20, 20, 30}, intCmp, Ascending)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 3}, got)
}

func TestDenseRankOrderViolation(t *testing.T) {
	_, err := DenseRank([]int{50, 10, 30}, intCmp, Descending)
	require.Error(t, err)
	var ov *OrderViolationError
	require.ErrorAs(t, err, &ov)
	assert.Equal(t, 2, ov.Index)

	_, err = DenseRank([]int{10, 30, 20}, intCmp, Ascending)
	require.ErrorAs(t, err, &ov)
	assert.Equal(t, 2, ov.Index)
}

func TestDenseRankEmpty(t *testing.T) {
	got, err := DenseRank(nil, intCmp, Descending)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Output length equals input length and ranks never decrease along the
// input; each step is 0 (tie) or +1 (next distinct value).
func TestDenseRankProperties(t *testing.T) {
	in := []int{90, 90, 70, 70, 70, 50, 40, 40, 10}
	got, err := DenseRank(in, intCmp, Descending)
	require.NoError(t, err)
	require.Len(t, got, len(in))
	assert.Equal(t, 1, got[0])
	for i := 1; i < len(got); i++ {
		step := got[i] - got[i-1]
		if in[i] == in[i-1] {
			assert.Equal(t, 0, step, "tie at %d must keep rank", i)
		} else {
			assert.Equal(t, 1, step, "distinct at %d must advance by exactly 1", i)
		}
	}
}

func TestRowNumber(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, RowNumber([]string{"a", "b", "c"}))
	assert.Empty(t, RowNumber([]string{}))
}
