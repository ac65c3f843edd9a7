package redisx

import (
	"fmt"
	"time"
)

const (
	// Report cache: report:{name}:{snapshot_version}:{params} -> JSON body.
	keyReport = "report:%s:%s:%s"

	// Dedup event processing: dedup:{service}:{event_id}.
	keyDedup = "dedup:%s:%s"
)

var (
	// Reports are cheap to recompute; the cache only absorbs bursts.
	TTLReportCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)

// ReportKey builds the cache key for a report body. The snapshot version is
// part of the key, so ingesting a payment invalidates every cached report
// without explicit deletes.
func ReportKey(name, version, params string) string {
	if params == "" {
		params = "-"
	}
	return fmt.Sprintf(keyReport, name, version, params)
}

func DedupKey(service, eventID string) string {
	return fmt.Sprintf(keyDedup, service, eventID)
}
