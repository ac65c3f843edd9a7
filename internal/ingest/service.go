// Package ingest applies payment events from the bus to the live in-memory
// store. Report caches key on the store version, so an applied payment makes
// the next report request recompute.
package ingest

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/storewise/shop-analytics/internal/kafka"
	"github.com/storewise/shop-analytics/internal/redisx"
	"github.com/storewise/shop-analytics/internal/store"
)

type Service struct {
	Store       *store.Live
	Redis       *redis.Client
	ServiceName string
}

// HandlePaymentRecorded is wired as the consumer handler for the
// payment.recorded topic.
func (s *Service) HandlePaymentRecorded(ctx context.Context, m kafkago.Message) error {
	var env store.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != store.EventPaymentRecorded {
		return nil // ignore
	}

	// dedup by event_id; at-least-once delivery means replays are normal
	dkey := redisx.DedupKey(s.ServiceName, env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}

	p, err := kafkax.UnwrapPayload[store.PaymentRecordedPayload](env.Payload)
	if err != nil {
		return err
	}

	if err := s.Store.AppendPayment(p.Payment()); err != nil {
		var refErr *store.ReferenceError
		if errors.As(err, &refErr) {
			// unknown order: retrying cannot fix it, commit and move on
			log.Printf("drop payment event %s: %v", env.EventID, err)
			_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
			return nil
		}
		return err
	}

	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return nil
}
