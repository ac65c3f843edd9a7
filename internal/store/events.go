package store

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPaymentRecorded = "PaymentRecorded"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // one of the consts above
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g. "report-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // usually order_id
	Payload       json.RawMessage `json:"payload"`
}

type PaymentRecordedPayload struct {
	PaymentID int64           `json:"payment_id"`
	OrderID   int64           `json:"order_id"`
	PaidAt    time.Time       `json:"paid_at"`
	Method    Method          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
}

func (p PaymentRecordedPayload) Payment() Payment {
	return Payment{
		ID:      p.PaymentID,
		OrderID: p.OrderID,
		PaidAt:  p.PaidAt,
		Method:  p.Method,
		Amount:  p.Amount,
	}
}
