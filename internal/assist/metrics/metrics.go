// Package metrics collects in-process business metrics for the assist service.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// AssistMetrics holds the service counters. All counters are updated with
// atomic operations and safe for concurrent use.
type AssistMetrics struct {
	// Query metrics
	queriesTotal     uint64
	queriesCacheHits uint64
	queriesErrors    uint64

	// Pipeline metrics
	retrievalsTotal      uint64
	completionCalls      uint64
	completionsSkipped   uint64
	classificationsTotal uint64
	unknownLabels        uint64

	// Intent distribution
	intentPolicy         uint64
	intentRecommendation uint64
	intentAnalytics      uint64
	intentRefusal        uint64

	// Ingestion metrics
	documentsIngested uint64
	chunksIndexed     uint64

	startTime time.Time
}

var (
	globalAssistMetrics *AssistMetrics
	assistMetricsOnce   sync.Once
)

// GetAssistMetrics returns the global metrics instance.
func GetAssistMetrics() *AssistMetrics {
	assistMetricsOnce.Do(func() {
		globalAssistMetrics = &AssistMetrics{
			startTime: time.Now(),
		}
	})
	return globalAssistMetrics
}

// RecordQuery records an ask request.
func (m *AssistMetrics) RecordQuery(cacheHit bool, err error) {
	atomic.AddUint64(&m.queriesTotal, 1)
	if err != nil {
		atomic.AddUint64(&m.queriesErrors, 1)
		return
	}
	if cacheHit {
		atomic.AddUint64(&m.queriesCacheHits, 1)
	}
}

// IncRetrievals records one similarity search.
func (m *AssistMetrics) IncRetrievals() {
	atomic.AddUint64(&m.retrievalsTotal, 1)
}

// IncCompletionCalls records one chat completion call.
func (m *AssistMetrics) IncCompletionCalls() {
	atomic.AddUint64(&m.completionCalls, 1)
}

// IncCompletionsSkipped records a completion skipped by the confidence gate.
func (m *AssistMetrics) IncCompletionsSkipped() {
	atomic.AddUint64(&m.completionsSkipped, 1)
}

// RecordClassification records an intent classification outcome.
func (m *AssistMetrics) RecordClassification(intent string, unknownLabel bool) {
	atomic.AddUint64(&m.classificationsTotal, 1)
	if unknownLabel {
		atomic.AddUint64(&m.unknownLabels, 1)
	}

	switch intent {
	case "policy":
		atomic.AddUint64(&m.intentPolicy, 1)
	case "recommendation":
		atomic.AddUint64(&m.intentRecommendation, 1)
	case "analytics":
		atomic.AddUint64(&m.intentAnalytics, 1)
	case "refusal":
		atomic.AddUint64(&m.intentRefusal, 1)
	}
}

// AddDocumentsIngested records ingested documents.
func (m *AssistMetrics) AddDocumentsIngested(n int64) {
	atomic.AddUint64(&m.documentsIngested, uint64(n))
}

// AddChunksIndexed records indexed chunks.
func (m *AssistMetrics) AddChunksIndexed(n int64) {
	atomic.AddUint64(&m.chunksIndexed, uint64(n))
}

// Snapshot returns a point-in-time copy of all counters.
func (m *AssistMetrics) Snapshot() map[string]any {
	return map[string]any{
		"uptime_seconds":        int64(time.Since(m.startTime).Seconds()),
		"queries_total":         atomic.LoadUint64(&m.queriesTotal),
		"queries_cache_hits":    atomic.LoadUint64(&m.queriesCacheHits),
		"queries_errors":        atomic.LoadUint64(&m.queriesErrors),
		"retrievals_total":      atomic.LoadUint64(&m.retrievalsTotal),
		"completion_calls":      atomic.LoadUint64(&m.completionCalls),
		"completions_skipped":   atomic.LoadUint64(&m.completionsSkipped),
		"classifications_total": atomic.LoadUint64(&m.classificationsTotal),
		"unknown_labels":        atomic.LoadUint64(&m.unknownLabels),
		"intents": map[string]uint64{
			"policy":         atomic.LoadUint64(&m.intentPolicy),
			"recommendation": atomic.LoadUint64(&m.intentRecommendation),
			"analytics":      atomic.LoadUint64(&m.intentAnalytics),
			"refusal":        atomic.LoadUint64(&m.intentRefusal),
		},
		"documents_ingested": atomic.LoadUint64(&m.documentsIngested),
		"chunks_indexed":     atomic.LoadUint64(&m.chunksIndexed),
	}
}

// Reset zeroes all counters. Intended for tests.
func (m *AssistMetrics) Reset() {
	atomic.StoreUint64(&m.queriesTotal, 0)
	atomic.StoreUint64(&m.queriesCacheHits, 0)
	atomic.StoreUint64(&m.queriesErrors, 0)
	atomic.StoreUint64(&m.retrievalsTotal, 0)
	atomic.StoreUint64(&m.completionCalls, 0)
	atomic.StoreUint64(&m.completionsSkipped, 0)
	atomic.StoreUint64(&m.classificationsTotal, 0)
	atomic.StoreUint64(&m.unknownLabels, 0)
	atomic.StoreUint64(&m.intentPolicy, 0)
	atomic.StoreUint64(&m.intentRecommendation, 0)
	atomic.StoreUint64(&m.intentAnalytics, 0)
	atomic.StoreUint64(&m.intentRefusal, 0)
	atomic.StoreUint64(&m.documentsIngested, 0)
	atomic.StoreUint64(&m.chunksIndexed, 0)
}
