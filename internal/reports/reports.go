// Package reports derives the read-only analytics the HTTP façade serves:
// lifetime spend with ranking, daily revenue with running totals, and
// payment-date islands. It never mutates the store and never logs; errors
// go back to the caller as-is.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storewise/shop-analytics/internal/islands"
	"github.com/storewise/shop-analytics/internal/rank"
	"github.com/storewise/shop-analytics/internal/rel"
	"github.com/storewise/shop-analytics/internal/store"
	"github.com/storewise/shop-analytics/internal/window"
)

// Engine evaluates reports. Loc is the time zone used to bucket payment
// timestamps into calendar days; truncation is zone-sensitive, so it is
// fixed per Engine and defaults to UTC.
type Engine struct {
	loc *time.Location
}

func New(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Day truncates a timestamp to its calendar day in the engine's zone. The
// result is that day's UTC midnight, a zone-independent day marker.
func (e *Engine) Day(t time.Time) time.Time {
	y, m, d := t.In(e.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SpendRecord is one customer's lifetime spend: the sum of qty x unit_price
// over every item the customer ever ordered, zero when there are none.
type SpendRecord struct {
	CustomerID int64           `json:"customer_id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total_spend"`
}

// LifetimeSpend computes one SpendRecord per customer, in the customers'
// input order. Customers without orders appear with total 0; the caller
// picks the final ordering (see SortBySpendDesc).
func (e *Engine) LifetimeSpend(customers []store.Customer, orders []store.Order, items []store.OrderItem) []SpendRecord {
	co := rel.LeftJoin(customers, orders,
		func(c store.Customer) int64 { return c.ID },
		func(o store.Order) int64 { return o.CustomerID })

	// Key on (present, order id) so a customer without orders can never
	// collide with a real order id.
	type orderKey struct {
		ok bool
		id int64
	}
	type custOrder = rel.Joined[store.Customer, store.Order]
	coi := rel.LeftJoin(co, items,
		func(j custOrder) orderKey { return orderKey{ok: j.Matched, id: j.Right.ID} },
		func(it store.OrderItem) orderKey { return orderKey{ok: true, id: it.OrderID} })

	lineTotal := rel.MustAgg("total_spend", rel.Sum,
		func(j rel.Joined[custOrder, store.OrderItem]) rel.Value {
			if !j.Matched {
				return rel.Null() // no item: contributes 0 to SUM
			}
			it := j.Right
			return rel.Dec(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
		})

	groups := rel.GroupBy(coi,
		func(j rel.Joined[custOrder, store.OrderItem]) int64 { return j.Left.Left.ID },
		lineTotal)

	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	out := make([]SpendRecord, 0, len(groups))
	for _, g := range groups {
		total, _ := g.Get("total_spend")
		out = append(out, SpendRecord{CustomerID: g.Key, Name: names[g.Key], Total: total.D})
	}
	return out
}

// SortBySpendDesc orders records by total descending, customer id ascending
// on ties. The id tie-break keeps row numbers deterministic.
func SortBySpendDesc(recs []SpendRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		c := recs[i].Total.Cmp(recs[j].Total)
		if c != 0 {
			return c > 0
		}
		return recs[i].CustomerID < recs[j].CustomerID
	})
}

// RankedSpend pairs a spend record with its dense rank and row number.
type RankedSpend struct {
	SpendRecord
	DenseRank int `json:"dense_rank"`
	RowNumber int `json:"row_number"`
}

// RankBySpend ranks already-sorted spend records. ord must match the sort
// actually applied; a mismatch surfaces as rank.OrderViolationError.
func RankBySpend(recs []SpendRecord, ord rank.Order) ([]RankedSpend, error) {
	dense, err := rank.DenseRank(recs,
		func(a, b SpendRecord) int { return a.Total.Cmp(b.Total) }, ord)
	if err != nil {
		return nil, err
	}
	nums := rank.RowNumber(recs)
	out := make([]RankedSpend, len(recs))
	for i, r := range recs {
		out[i] = RankedSpend{SpendRecord: r, DenseRank: dense[i], RowNumber: nums[i]}
	}
	return out, nil
}

// DailyRevenue is one day's payment total plus the running total up to and
// including that day.
type DailyRevenue struct {
	Day     time.Time       `json:"day"`
	Total   decimal.Decimal `json:"daily_total"`
	Running decimal.Decimal `json:"running_total"`
}

// DailyRevenueRunning buckets payments by calendar day, sums each bucket,
// and carries a running total across days ascending.
func (e *Engine) DailyRevenueRunning(payments []store.Payment) ([]DailyRevenue, error) {
	amount := rel.MustAgg("daily_total", rel.Sum,
		func(p store.Payment) rel.Value { return rel.Dec(p.Amount) })
	groups := rel.GroupBy(payments,
		func(p store.Payment) time.Time { return e.Day(p.PaidAt) },
		amount)

	entries := make([]window.Entry[time.Time], 0, len(groups))
	for _, g := range groups {
		total, _ := g.Get("daily_total")
		entries = append(entries, window.Entry[time.Time]{Key: g.Key, Value: total.D})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key.Before(entries[j].Key) })

	cum, err := window.RunningTotal(entries)
	if err != nil {
		return nil, err
	}
	out := make([]DailyRevenue, len(cum))
	for i, c := range cum {
		out[i] = DailyRevenue{Day: c.Key, Total: c.Value, Running: c.Running}
	}
	return out, nil
}

// PaymentIslands finds the maximal runs of consecutive days on which at
// least one payment occurred.
func (e *Engine) PaymentIslands(payments []store.Payment) ([]islands.Island, error) {
	seen := make(map[time.Time]bool, len(payments))
	days := make([]time.Time, 0, len(payments))
	for _, p := range payments {
		d := e.Day(p.PaidAt)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return islands.Detect(days)
}
