package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	kafkax "github.com/storewise/shop-analytics/internal/kafka"
	"github.com/storewise/shop-analytics/internal/rank"
	"github.com/storewise/shop-analytics/internal/redisx"
	"github.com/storewise/shop-analytics/internal/reports"
	"github.com/storewise/shop-analytics/internal/store"
)

type ReportsHandler struct {
	Store    *store.Live
	Redis    *redis.Client
	Engine   *reports.Engine
	Producer *kafkax.Producer
	Service  string
}

func (h *ReportsHandler) Register(r *chi.Mux) {
	r.Get("/reports/lifetime-spend", h.lifetimeSpend)
	r.Get("/reports/daily-revenue", h.dailyRevenue)
	r.Get("/reports/payment-islands", h.paymentIslands)
	r.Post("/payments", h.recordPayment)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// serveCached runs one report behind the Redis cache. The snapshot version
// is baked into the key, so stale entries are simply never hit again.
func (h *ReportsHandler) serveCached(w http.ResponseWriter, r *http.Request, name, params string, compute func(snap store.Snapshot) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	key := redisx.ReportKey(name, h.Store.Version(), params)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	out, err := compute(h.Store.Snapshot())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	b, err := json.Marshal(out)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	_ = h.Redis.Set(ctx, key, b, redisx.TTLReportCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *ReportsHandler) lifetimeSpend(w http.ResponseWriter, r *http.Request) {
	ord := rank.Descending
	if r.URL.Query().Get("order") == "asc" {
		ord = rank.Ascending
	}
	h.serveCached(w, r, "lifetime-spend", ord.String(), func(snap store.Snapshot) (any, error) {
		recs := h.Engine.LifetimeSpend(snap.Customers, snap.Orders, snap.OrderItems)
		reports.SortBySpendDesc(recs)
		if ord == rank.Ascending {
			for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
				recs[i], recs[j] = recs[j], recs[i]
			}
		}
		return reports.RankBySpend(recs, ord)
	})
}

func (h *ReportsHandler) dailyRevenue(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "daily-revenue", "", func(snap store.Snapshot) (any, error) {
		return h.Engine.DailyRevenueRunning(snap.Payments)
	})
}

func (h *ReportsHandler) paymentIslands(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "payment-islands", "", func(snap store.Snapshot) (any, error) {
		return h.Engine.PaymentIslands(snap.Payments)
	})
}

type RecordPaymentReq struct {
	PaymentID int64           `json:"payment_id"`
	OrderID   int64           `json:"order_id"`
	PaidAt    time.Time       `json:"paid_at"`
	Method    store.Method    `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
}

type RecordPaymentResp struct {
	EventID string `json:"event_id"`
}

// recordPayment publishes a PaymentRecorded event; the ingest consumer
// applies it to the live store. The API itself does not mutate state.
func (h *ReportsHandler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.PaymentID == 0 || req.OrderID == 0 || req.PaidAt.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	if !req.Method.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid method"})
		return
	}
	if req.Amount.IsNegative() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "negative amount"})
		return
	}

	ev := store.Envelope{
		EventID:       uuid.NewString(),
		EventType:     store.EventPaymentRecorded,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.FormatInt(req.OrderID, 10),
	}
	ev.Payload = kafkax.MustMarshal(store.PaymentRecordedPayload{
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		PaidAt:    req.PaidAt,
		Method:    req.Method,
		Amount:    req.Amount,
	})
	h.Producer.Publish(store.PartitionKey(req.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(store.EventPaymentRecorded)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusAccepted, RecordPaymentResp{EventID: ev.EventID})
}
