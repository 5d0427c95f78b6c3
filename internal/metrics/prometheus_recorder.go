package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once               sync.Once
	stageDuration      *prom.HistogramVec
	generationDuration prom.Histogram
	modelCalls         *prom.CounterVec
	sectionResults     *prom.CounterVec
	editOutcomes       *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitesmith",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.generationDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitesmith",
			Name:      "generation_duration_seconds",
			Help:      "Total generation pipeline duration",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		})
		pr.modelCalls = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitesmith",
			Name:      "model_calls_total",
			Help:      "Model call counts by stage and result",
		}, []string{"stage", "result"})
		pr.sectionResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitesmith",
			Name:      "section_results_total",
			Help:      "Section generation results by type and result",
		}, []string{"type", "result"})
		pr.editOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitesmith",
			Name:      "edit_outcomes_total",
			Help:      "Edit outcomes by final status",
		}, []string{"outcome"})
		reg.MustRegister(pr.stageDuration, pr.generationDuration,
			pr.modelCalls, pr.sectionResults, pr.editOutcomes)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGenerationDuration(d time.Duration) {
	if p == nil || p.generationDuration == nil {
		return
	}
	p.generationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncModelCall(stage string, result ResultLabel) {
	if p == nil || p.modelCalls == nil {
		return
	}
	p.modelCalls.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncSectionResult(sectionType string, result ResultLabel) {
	if p == nil || p.sectionResults == nil {
		return
	}
	p.sectionResults.WithLabelValues(sectionType, string(result)).Inc()
}

func (p *PrometheusRecorder) IncEditOutcome(outcome string) {
	if p == nil || p.editOutcomes == nil {
		return
	}
	p.editOutcomes.WithLabelValues(outcome).Inc()
}
