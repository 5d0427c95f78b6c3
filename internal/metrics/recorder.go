// Package metrics provides observability hooks for the generation and
// editing pipeline.
package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess     ResultLabel = "success"
	ResultFallback    ResultLabel = "fallback"
	ResultDegraded    ResultLabel = "degraded"
	ResultRateLimited ResultLabel = "rate_limited"
	ResultError       ResultLabel = "error"
)

// Recorder defines observability hooks for pipeline and model-call metrics.
// Implementations may forward to Prometheus or do nothing. All methods must
// be safe on the NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveGenerationDuration(d time.Duration)
	IncModelCall(stage string, result ResultLabel)
	IncSectionResult(sectionType string, result ResultLabel)
	IncEditOutcome(outcome string) // outcome: applied|partial|rejected|fastpath
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveGenerationDuration(time.Duration)    {}
func (NoopRecorder) IncModelCall(string, ResultLabel)           {}
func (NoopRecorder) IncSectionResult(string, ResultLabel)       {}
func (NoopRecorder) IncEditOutcome(string)                      {}
