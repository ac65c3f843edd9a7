package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storewise/shop-analytics/internal/rank"
	"github.com/storewise/shop-analytics/internal/store"
)

func TestLifetimeSpendDemoDataset(t *testing.T) {
	snap := store.DemoSnapshot()
	e := New(nil)

	recs := e.LifetimeSpend(snap.Customers, snap.Orders, snap.OrderItems)
	require.Len(t, recs, 4)

	byName := make(map[string]decimal.Decimal)
	for _, r := range recs {
		byName[r.Name] = r.Total
	}
	assert.Equal(t, "2037.00", byName["Alice"].StringFixed(2)) // 699 + 39 + 1299
	assert.Equal(t, "398.00", byName["Caro"].StringFixed(2))   // 2 x 199
	assert.True(t, byName["Bob"].IsZero())                     // no orders at all
	assert.True(t, byName["Dani"].IsZero())
}

func TestRankBySpendDemoDataset(t *testing.T) {
	snap := store.DemoSnapshot()
	e := New(nil)

	recs := e.LifetimeSpend(snap.Customers, snap.Orders, snap.OrderItems)
	SortBySpendDesc(recs)
	ranked, err := RankBySpend(recs, rank.Descending)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	assert.Equal(t, "Alice", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].DenseRank)
	assert.Equal(t, 1, ranked[0].RowNumber)

	assert.Equal(t, "Caro", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].DenseRank)

	// Bob and Dani tie at zero spend: same dense rank, distinct row numbers
	assert.Equal(t, "Bob", ranked[2].Name)
	assert.Equal(t, 3, ranked[2].DenseRank)
	assert.Equal(t, 3, ranked[2].RowNumber)
	assert.Equal(t, "Dani", ranked[3].Name)
	assert.Equal(t, 3, ranked[3].DenseRank)
	assert.Equal(t, 4, ranked[3].RowNumber)
}

func TestRankBySpendUnsortedInput(t *testing.T) {
	recs := []SpendRecord{
		{CustomerID: 1, Total: decimal.RequireFromString("10.00")},
		{CustomerID: 2, Total: decimal.RequireFromString("20.00")},
	}
	_, err := RankBySpend(recs, rank.Descending)
	var ov *rank.OrderViolationError
	require.ErrorAs(t, err, &ov)
}

func TestDailyRevenueRunningDemoDataset(t *testing.T) {
	snap := store.DemoSnapshot()
	e := New(nil)

	got, err := e.DailyRevenueRunning(snap.Payments)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), got[0].Day)
	assert.Equal(t, "738.00", got[0].Total.StringFixed(2))
	assert.Equal(t, "738.00", got[0].Running.StringFixed(2))

	assert.Equal(t, time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC), got[1].Day)
	assert.Equal(t, "1299.00", got[1].Total.StringFixed(2))
	assert.Equal(t, "2037.00", got[1].Running.StringFixed(2))
}

// A single-day payment set: one row whose running total equals its daily total.
func TestDailyRevenueSingleDay(t *testing.T) {
	e := New(nil)
	payments := []store.Payment{
		{ID: 1, OrderID: 1, PaidAt: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
			Method: store.MethodCard, Amount: decimal.RequireFromString("12.34")},
		{ID: 2, OrderID: 1, PaidAt: time.Date(2025, 10, 1, 21, 0, 0, 0, time.UTC),
			Method: store.MethodCash, Amount: decimal.RequireFromString("0.66")},
	}
	got, err := e.DailyRevenueRunning(payments)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Total.Equal(got[0].Running))
	assert.Equal(t, "13.00", got[0].Total.StringFixed(2))
}

func TestPaymentIslandsDemoDataset(t *testing.T) {
	snap := store.DemoSnapshot()
	e := New(nil)

	got, err := e.PaymentIslands(snap.Payments)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Days)
	assert.Equal(t, 1, got[1].Days)
}

// Two payments on the same day must not trip the detector's distinctness
// precondition; the facade dedups days first.
func TestPaymentIslandsSameDayPayments(t *testing.T) {
	e := New(nil)
	payments := []store.Payment{
		{ID: 1, OrderID: 1, PaidAt: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC), Method: store.MethodCard, Amount: decimal.New(1, 0)},
		{ID: 2, OrderID: 1, PaidAt: time.Date(2025, 10, 1, 17, 0, 0, 0, time.UTC), Method: store.MethodCard, Amount: decimal.New(1, 0)},
		{ID: 3, OrderID: 2, PaidAt: time.Date(2025, 10, 2, 8, 0, 0, 0, time.UTC), Method: store.MethodACH, Amount: decimal.New(1, 0)},
	}
	got, err := e.PaymentIslands(payments)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Days)
}

// Day bucketing follows the engine's zone: 03:00 UTC is still the previous
// day five hours west.
func TestDayBucketingZoneSensitive(t *testing.T) {
	ts := time.Date(2025, 10, 2, 3, 0, 0, 0, time.UTC)

	utc := New(time.UTC)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), utc.Day(ts))

	west := New(time.FixedZone("UTC-5", -5*3600))
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), west.Day(ts))
}

func TestDemoSnapshotValid(t *testing.T) {
	snap := store.DemoSnapshot()
	require.NoError(t, snap.Validate())
}
