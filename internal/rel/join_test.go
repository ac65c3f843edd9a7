package rel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cust struct {
	id   int64
	name string
}

type ord struct {
	id     int64
	custID int64
}

func TestLeftJoin(t *testing.T) {
	customers := []cust{{1, "alice"}, {2, "bob"}, {3, "caro"}}
	orders := []ord{{10, 1}, {11, 3}, {12, 1}}

	got := LeftJoin(customers, orders,
		func(c cust) int64 { return c.id },
		func(o ord) int64 { return o.custID })

	require.Len(t, got, 4)

	// alice: two orders, original relative order preserved
	assert.Equal(t, int64(10), got[0].Right.id)
	assert.Equal(t, int64(12), got[1].Right.id)
	assert.True(t, got[0].Matched)
	assert.True(t, got[1].Matched)

	// bob: no orders -> single unmatched row, not an error
	assert.Equal(t, "bob", got[2].Left.name)
	assert.False(t, got[2].Matched)
	assert.Zero(t, got[2].Right)

	// caro after bob: outer order preserved
	assert.Equal(t, "caro", got[3].Left.name)
	assert.Equal(t, int64(11), got[3].Right.id)
}

func TestLeftJoinEmptyInner(t *testing.T) {
	customers := []cust{{1, "alice"}}
	got := LeftJoin(customers, nil,
		func(c cust) int64 { return c.id },
		func(o ord) int64 { return o.custID })
	require.Len(t, got, 1)
	assert.False(t, got[0].Matched)
}

func TestInnerJoinDropsUnmatched(t *testing.T) {
	customers := []cust{{1, "alice"}, {2, "bob"}}
	orders := []ord{{10, 1}}
	got := InnerJoin(customers, orders,
		func(c cust) int64 { return c.id },
		func(o ord) int64 { return o.custID })
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Left.name)
}
