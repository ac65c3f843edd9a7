package rel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	cust   string
	amount string // "" = null
}

func (l line) value() Value {
	if l.amount == "" {
		return Null()
	}
	return Dec(decimal.RequireFromString(l.amount))
}

func TestNewAggUnknownFunc(t *testing.T) {
	_, err := NewAgg("x", Func("MEDIAN"), func(l line) Value { return l.value() })
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "MEDIAN", cfgErr.Fn)
}

func TestGroupBySumExactDecimals(t *testing.T) {
	// 0.10 + 0.20 must be exactly 0.30, no binary float drift
	rows := []line{{"a", "0.10"}, {"a", "0.20"}}
	sum := MustAgg("total", Sum, func(l line) Value { return l.value() })
	groups := GroupBy(rows, func(l line) string { return l.cust }, sum)

	require.Len(t, groups, 1)
	v, ok := groups[0].Get("total")
	require.True(t, ok)
	require.True(t, v.Valid)
	assert.Equal(t, "0.30", v.D.StringFixed(2))
}

func TestGroupByNullHandling(t *testing.T) {
	rows := []line{
		{"a", "5.00"}, {"a", ""}, {"a", "1.00"},
		{"b", ""}, {"b", ""},
	}
	sum := MustAgg("sum", Sum, func(l line) Value { return l.value() })
	count := MustAgg("count", Count, func(l line) Value { return l.value() })
	max := MustAgg("max", Max, func(l line) Value { return l.value() })
	avg := MustAgg("avg", Avg, func(l line) Value { return l.value() })

	groups := GroupBy(rows, func(l line) string { return l.cust }, sum, count, max, avg)
	require.Len(t, groups, 2)

	a := groups[0]
	assert.Equal(t, "a", a.Key)
	assert.Equal(t, 3, a.Size)
	v, _ := a.Get("sum")
	assert.Equal(t, "6.00", v.D.StringFixed(2)) // null contributes 0
	v, _ = a.Get("count")
	assert.Equal(t, "2", v.D.String()) // nulls not counted
	v, _ = a.Get("max")
	require.True(t, v.Valid)
	assert.Equal(t, "5.00", v.D.StringFixed(2))
	v, _ = a.Get("avg")
	require.True(t, v.Valid)
	assert.Equal(t, "3.00", v.D.StringFixed(2)) // denominator excludes nulls

	b := groups[1]
	assert.Equal(t, "b", b.Key)
	v, _ = b.Get("sum")
	require.True(t, v.Valid)
	assert.True(t, v.D.IsZero()) // all-null SUM is 0, not absent
	v, _ = b.Get("max")
	assert.False(t, v.Valid) // MAX over no values is absent
	v, _ = b.Get("avg")
	assert.False(t, v.Valid)
}

func TestGroupByFirstSeenKeyOrder(t *testing.T) {
	rows := []line{{"z", "1"}, {"a", "1"}, {"z", "1"}, {"m", "1"}}
	count := MustAgg("n", Count, func(l line) Value { return l.value() })
	groups := GroupBy(rows, func(l line) string { return l.cust }, count)

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestGroupByEmpty(t *testing.T) {
	count := MustAgg("n", Count, func(l line) Value { return l.value() })
	groups := GroupBy(nil, func(l line) string { return l.cust }, count)
	assert.Empty(t, groups)
}
