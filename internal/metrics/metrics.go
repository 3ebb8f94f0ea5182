// Package metrics records classifier activity as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives classifier events. The zero value of Nop discards them.
type Recorder interface {
	ObserveClassification(category model.Category, confidence float64)
	ObserveFeedback(status model.ReviewStatus)
	ObserveRetrain(corpusSize int)
}

// Nop is a Recorder that drops every event.
type Nop struct{}

// ObserveClassification implements Recorder.
func (Nop) ObserveClassification(model.Category, float64) {}

// ObserveFeedback implements Recorder.
func (Nop) ObserveFeedback(model.ReviewStatus) {}

// ObserveRetrain implements Recorder.
func (Nop) ObserveRetrain(int) {}

// PrometheusMetrics implements Recorder on a dedicated registry.
type PrometheusMetrics struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	confidence      prometheus.Histogram
	feedback        *prometheus.CounterVec
	retrains        prometheus.Counter
	corpusSize      prometheus.Gauge
}

// NewPrometheusMetrics registers the classifier metrics on a fresh registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pennywise_classifications_total",
				Help: "Total number of merchant classifications by predicted category",
			},
			[]string{"category"},
		),
		confidence: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pennywise_classification_confidence",
				Help:    "Confidence of the winning category",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
		feedback: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pennywise_feedback_total",
				Help: "Total number of review outcomes by status",
			},
			[]string{"status"},
		),
		retrains: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pennywise_retrains_total",
				Help: "Total number of classifier rebuilds triggered by corrections",
			},
		),
		corpusSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pennywise_corpus_examples",
				Help: "Number of training examples backing the active classifier",
			},
		),
	}
}

// ObserveClassification implements Recorder.
func (m *PrometheusMetrics) ObserveClassification(category model.Category, confidence float64) {
	m.classifications.WithLabelValues(category.String()).Inc()
	m.confidence.Observe(confidence)
}

// ObserveFeedback implements Recorder.
func (m *PrometheusMetrics) ObserveFeedback(status model.ReviewStatus) {
	m.feedback.WithLabelValues(string(status)).Inc()
}

// ObserveRetrain implements Recorder.
func (m *PrometheusMetrics) ObserveRetrain(corpusSize int) {
	m.retrains.Inc()
	m.corpusSize.Set(float64(corpusSize))
}

// SetCorpusSize records the corpus size of a freshly loaded classifier.
func (m *PrometheusMetrics) SetCorpusSize(n int) {
	m.corpusSize.Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile dumps the current metrics in the text exposition format, for
// pickup by a node_exporter textfile collector.
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
