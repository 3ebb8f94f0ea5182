package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics()

	m.ObserveClassification(model.Food, 0.9)
	m.ObserveClassification(model.Food, 0.4)
	m.ObserveClassification(model.Bills, 0.7)
	m.ObserveFeedback(model.StatusConfirmed)
	m.ObserveFeedback(model.StatusCorrected)
	m.ObserveFeedback(model.StatusCorrected)
	m.SetCorpusSize(61)
	m.ObserveRetrain(62)

	assert.InDelta(t, 2, testutil.ToFloat64(m.classifications.WithLabelValues("Food")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.classifications.WithLabelValues("Bills")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.feedback.WithLabelValues(string(model.StatusCorrected))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.retrains), 0)
	assert.InDelta(t, 62, testutil.ToFloat64(m.corpusSize), 0)

	count, err := testutil.GatherAndCount(m.Registry())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestPrometheusMetrics_WriteTextfile(t *testing.T) {
	m := NewPrometheusMetrics()
	m.ObserveClassification(model.Transport, 0.99)

	path := filepath.Join(t.TempDir(), "pennywise.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `pennywise_classifications_total{category="Transport"} 1`))
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.ObserveClassification(model.Food, 1)
	r.ObserveFeedback(model.StatusConfirmed)
	r.ObserveRetrain(1)
}
