package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/feedback"
	"github.com/Veraticus/pennywise/internal/model"
)

func newTestSession(t *testing.T) (*feedback.Handle, *feedback.Session) {
	t.Helper()
	c, err := bayes.New([]model.TrainingExample{
		{Text: "grab ride", Category: model.Transport},
		{Text: "mcdonalds", Category: model.Food},
	})
	require.NoError(t, err)
	h, err := feedback.NewHandle(c)
	require.NoError(t, err)

	at := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	s, err := feedback.NewSession(h, []model.Transaction{
		{ID: "tx1", Merchant: "Grab Ride", Amount: decimal.RequireFromString("12.5"), Timestamp: at},
		{ID: "tx2", Merchant: "McDonalds", Amount: decimal.RequireFromString("8.2"), Timestamp: at},
		{ID: "tx3", Merchant: "grab ride home", Amount: decimal.RequireFromString("15"), Timestamp: at},
	})
	require.NoError(t, err)
	return h, s
}

func TestPrompter_Run(t *testing.T) {
	h, s := newTestSession(t)
	var out bytes.Buffer

	// invalid choice, confirm, dispute and pick Bills by name, skip
	p := NewCLIPrompter(strings.NewReader("x\ny\nn\nbills\ns\n"), &out)
	stats, err := p.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, feedback.Stats{Total: 3, Confirmed: 1, Corrected: 1, Unreviewed: 1}, stats)
	assert.Equal(t, model.StatusConfirmed, s.Reviews()[0].Status())
	assert.Equal(t, model.Bills, s.Reviews()[1].Category())
	assert.Equal(t, 3, h.Current().CorpusSize())
	assert.Equal(t, model.TrainingExample{Text: "mcdonalds", Category: model.Bills}, h.Current().Corpus()[2])

	text := out.String()
	assert.Contains(t, text, "Invalid choice")
	assert.Contains(t, text, "Transaction 1 of 3")
	assert.Contains(t, text, "$12.50")
	assert.Contains(t, text, "*[2] Food", "picker marks the predicted category")
	assert.Contains(t, text, "Recategorized McDonalds as Bills")
	assert.Contains(t, text, "Review Complete")
}

func TestPrompter_DefaultPickKeepsPrediction(t *testing.T) {
	h, s := newTestSession(t)

	p := NewCLIPrompter(strings.NewReader("n\n\nq\n"), &bytes.Buffer{})
	stats, err := p.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Corrected)
	assert.Equal(t, model.Transport, s.Reviews()[0].Category())
	assert.Equal(t, model.TrainingExample{Text: "grab ride", Category: model.Transport}, h.Current().Corpus()[2])
}

func TestPrompter_EndOfInput(t *testing.T) {
	_, s := newTestSession(t)

	stats, err := NewCLIPrompter(strings.NewReader("y\n"), &bytes.Buffer{}).Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, feedback.Stats{Total: 3, Confirmed: 1, Unreviewed: 2}, stats)
}

func TestPrompter_Canceled(t *testing.T) {
	_, s := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCLIPrompter(strings.NewReader("y\n"), &bytes.Buffer{}).Run(ctx, s)
	require.ErrorIs(t, err, ErrInputCanceled)
}

func TestParseCategoryChoice(t *testing.T) {
	tests := []struct {
		input string
		want  model.Category
		ok    bool
	}{
		{input: "", want: model.Food, ok: true},
		{input: "1", want: model.Transport, ok: true},
		{input: "6", want: model.Entertainment, ok: true},
		{input: "7", ok: false},
		{input: "0", ok: false},
		{input: "groceries", want: model.Groceries, ok: true},
		{input: "Other", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseCategoryChoice(tt.input, model.Food)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		confidence float64
		want       ConfidenceBand
	}{
		{confidence: 1, want: BandHigh},
		{confidence: 0.81, want: BandHigh},
		{confidence: 0.80, want: BandMedium},
		{confidence: 0.61, want: BandMedium},
		{confidence: 0.60, want: BandLow},
		{confidence: 0, want: BandLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.confidence), "confidence %v", tt.confidence)
	}
	assert.Equal(t, 100, Percent(0.9977))
	assert.Equal(t, 51, Percent(0.512))
}

func TestClassifyAll(t *testing.T) {
	h, _ := newTestSession(t)
	txns := []model.Transaction{
		{ID: "a", Merchant: "grab"},
		{ID: "b", Merchant: "mcdonalds"},
	}

	var out bytes.Buffer
	results, err := ClassifyAll(context.Background(), &out, h, txns)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, model.Transport, results[0].Prediction.Category)
	assert.Equal(t, model.Food, results[1].Prediction.Category)

	table := RenderResults(results)
	assert.Contains(t, table, "Merchant")
	assert.Contains(t, table, "mcdonalds")
}

func TestRenderPrediction(t *testing.T) {
	h, _ := newTestSession(t)
	pred, err := h.Classify("grab")
	require.NoError(t, err)

	out := RenderPrediction("grab", pred)
	for _, c := range model.Categories() {
		assert.Contains(t, out, c.String())
	}
}
