package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusNew, StatusPaid))
	assert.True(t, CanTransition(StatusNew, StatusCancelled))
	assert.False(t, CanTransition(StatusPaid, StatusNew))
	assert.False(t, CanTransition(StatusCancelled, StatusPaid))
	assert.True(t, StatusNew.Valid())
	assert.False(t, Status("SHIPPED").Valid())
}

func TestMethodValid(t *testing.T) {
	assert.True(t, MethodCard.Valid())
	assert.True(t, MethodACH.Valid())
	assert.True(t, MethodCash.Valid())
	assert.False(t, Method("WIRE").Valid())
}

func TestValidateCatchesBadReferences(t *testing.T) {
	snap := DemoSnapshot()
	snap.Payments = append(snap.Payments, Payment{
		ID: 99, OrderID: 12345, PaidAt: time.Now().UTC(),
		Method: MethodCard, Amount: decimal.New(1, 0),
	})
	err := snap.Validate()
	require.Error(t, err)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "payment", refErr.Entity)
	assert.Equal(t, int64(12345), refErr.RefID)
}

func TestValidateCatchesBadEnum(t *testing.T) {
	snap := DemoSnapshot()
	snap.Orders[0].Status = "SHIPPED"
	require.Error(t, snap.Validate())
}

func TestLiveAppendPayment(t *testing.T) {
	live := NewLive(DemoSnapshot())
	v1 := live.Version()

	before := live.Snapshot()
	err := live.AppendPayment(Payment{
		ID: 3, OrderID: 3, PaidAt: time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC),
		Method: MethodCash, Amount: decimal.RequireFromString("398.00"),
	})
	require.NoError(t, err)

	// version bumped, earlier snapshot untouched
	assert.NotEqual(t, v1, live.Version())
	assert.Len(t, before.Payments, 2)
	assert.Len(t, live.Snapshot().Payments, 3)
}

func TestLiveAppendPaymentUnknownOrder(t *testing.T) {
	live := NewLive(DemoSnapshot())
	err := live.AppendPayment(Payment{
		ID: 4, OrderID: 777, PaidAt: time.Now().UTC(),
		Method: MethodCard, Amount: decimal.New(1, 0),
	})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, live.Version(), NewLive(DemoSnapshot()).Version()) // no bump
}

func TestLiveAppendPaymentInvalidMethod(t *testing.T) {
	live := NewLive(DemoSnapshot())
	err := live.AppendPayment(Payment{ID: 5, OrderID: 1, Method: "WIRE", Amount: decimal.New(1, 0)})
	require.Error(t, err)
}
