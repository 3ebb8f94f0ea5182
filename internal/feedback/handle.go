// Package feedback owns the active classifier and the per-transaction review
// workflow that feeds user corrections back into training.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/metrics"
	"github.com/Veraticus/pennywise/internal/model"
)

// Feedback errors.
var (
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	ErrInvalidTransition     = errors.New("invalid review transition")
	ErrNoSuchReview          = errors.New("no such review")
)

// Store persists review outcomes. Implementations must be safe for the
// single-writer access pattern used by Handle and Session.
type Store interface {
	SaveCorrection(ctx context.Context, correction *model.Correction) error
	SaveClassification(ctx context.Context, classification *model.Classification) error
	// SaveCorrectedReview must store both records or neither.
	SaveCorrectedReview(ctx context.Context, correction *model.Correction, classification *model.Classification) error
}

// Handle holds the active classifier. Readers take a snapshot with Current;
// corrections build a new classifier and publish it with a single atomic store.
type Handle struct {
	store    Store
	recorder metrics.Recorder
	current  atomic.Pointer[bayes.Classifier]
	writeMu  sync.Mutex
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithStore persists corrections and classifications to s.
func WithStore(s Store) HandleOption {
	return func(h *Handle) { h.store = s }
}

// WithRecorder reports classifier activity to r.
func WithRecorder(r metrics.Recorder) HandleOption {
	return func(h *Handle) { h.recorder = r }
}

// NewHandle publishes c as the active classifier.
func NewHandle(c *bayes.Classifier, opts ...HandleOption) (*Handle, error) {
	if c == nil {
		return nil, ErrClassifierUnavailable
	}

	h := &Handle{recorder: metrics.Nop{}}
	for _, opt := range opts {
		opt(h)
	}
	if h.recorder == nil {
		h.recorder = metrics.Nop{}
	}
	h.current.Store(c)

	return h, nil
}

// Current returns a snapshot of the active classifier.
func (h *Handle) Current() *bayes.Classifier {
	return h.current.Load()
}

// Classify classifies text with the current snapshot.
func (h *Handle) Classify(text string) (bayes.Prediction, error) {
	pred, err := h.Current().Classify(text)
	if err != nil {
		return bayes.Prediction{}, err
	}
	h.recorder.ObserveClassification(pred.Category, pred.Confidence)
	return pred, nil
}

// Correct appends {lower(text), category} to the active corpus, retrains, and
// publishes the new classifier. The correction is persisted before it is
// published so a failed write leaves the active classifier unchanged.
func (h *Handle) Correct(ctx context.Context, transactionID, text string, category model.Category) (*bayes.Classifier, error) {
	return h.retrain(ctx, transactionID, text, category, func(ctx context.Context, c *model.Correction) error {
		return h.store.SaveCorrection(ctx, c)
	})
}

// retrain builds the corrected classifier, runs save when a store is
// configured, and publishes only if save succeeds.
func (h *Handle) retrain(ctx context.Context, transactionID, text string, category model.Category, save func(context.Context, *model.Correction) error) (*bayes.Classifier, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	example := model.TrainingExample{Text: strings.ToLower(text), Category: category}

	next, err := h.Current().WithCorrection(example.Text, example.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to retrain classifier: %w", err)
	}

	if h.store != nil {
		correction := &model.Correction{
			TransactionID: transactionID,
			Example:       example,
			CreatedAt:     time.Now(),
		}
		if err := save(ctx, correction); err != nil {
			return nil, fmt.Errorf("failed to save correction: %w", err)
		}
	}

	h.current.Store(next)
	h.recorder.ObserveRetrain(next.CorpusSize())

	slog.Debug("Retrained classifier",
		"text", example.Text,
		"category", example.Category,
		"corpus_size", next.CorpusSize())

	return next, nil
}
