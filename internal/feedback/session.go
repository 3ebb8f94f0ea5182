package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
)

// Stats summarizes the outcome of a review session.
type Stats struct {
	Total      int
	Unreviewed int
	Disputed   int
	Confirmed  int
	Corrected  int
}

// Session reviews a batch of transactions against the handle's classifier.
type Session struct {
	handle  *Handle
	reviews []*Review
}

// NewSession classifies every transaction with one classifier snapshot.
func NewSession(h *Handle, transactions []model.Transaction) (*Session, error) {
	if h == nil {
		return nil, ErrClassifierUnavailable
	}

	s := &Session{
		handle:  h,
		reviews: make([]*Review, 0, len(transactions)),
	}

	snapshot := h.Current()
	for _, txn := range transactions {
		pred, err := snapshot.Classify(txn.Merchant)
		if err != nil {
			return nil, fmt.Errorf("failed to classify transaction %s: %w", txn.ID, err)
		}
		h.recorder.ObserveClassification(pred.Category, pred.Confidence)
		s.reviews = append(s.reviews, newReview(txn, pred))
	}

	return s, nil
}

// Reviews returns the session's items in input order.
func (s *Session) Reviews() []*Review {
	return s.reviews
}

// Len returns the number of items under review.
func (s *Session) Len() int {
	return len(s.reviews)
}

// Review returns item i.
func (s *Session) Review(i int) (*Review, error) {
	if i < 0 || i >= len(s.reviews) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoSuchReview, i, len(s.reviews))
	}
	return s.reviews[i], nil
}

// Confirm marks item i as correct. The corpus is not changed. The item stays
// Unreviewed if the outcome cannot be saved.
func (s *Session) Confirm(ctx context.Context, i int) error {
	r, err := s.Review(i)
	if err != nil {
		return err
	}
	if err := r.checkConfirm(); err != nil {
		return err
	}

	if err := s.persist(ctx, outcome(r, model.StatusConfirmed, r.prediction.Category)); err != nil {
		return err
	}
	r.markConfirmed()

	s.handle.recorder.ObserveFeedback(model.StatusConfirmed)
	return nil
}

// Dispute marks item i as incorrect and opens the category picker on the
// predicted category.
func (s *Session) Dispute(i int) error {
	r, err := s.Review(i)
	if err != nil {
		return err
	}
	if err := r.dispute(); err != nil {
		return err
	}
	s.handle.recorder.ObserveFeedback(model.StatusDisputed)
	return nil
}

// Select picks the replacement category for a disputed item.
func (s *Session) Select(i int, c model.Category) error {
	r, err := s.Review(i)
	if err != nil {
		return err
	}
	return r.selectCategory(c)
}

// Submit applies the picked category of a disputed item: one training example
// is appended, the classifier is retrained and swapped, and the remaining
// unreviewed items are re-scored against it. The correction and the review
// outcome are saved together before anything changes; on failure the item
// stays Disputed and the previous classifier stays published.
func (s *Session) Submit(ctx context.Context, i int) error {
	r, err := s.Review(i)
	if err != nil {
		return err
	}
	if err := r.checkSubmit(); err != nil {
		return err
	}

	result := outcome(r, model.StatusCorrected, r.selected)
	_, err = s.handle.retrain(ctx, r.Transaction.ID, r.Transaction.Merchant, r.selected,
		func(ctx context.Context, c *model.Correction) error {
			return s.handle.store.SaveCorrectedReview(ctx, c, result)
		})
	if err != nil {
		slog.Warn("Failed to save correction",
			"transaction_id", r.Transaction.ID,
			"category", r.selected,
			"error", err)
		return err
	}
	r.markCorrected()

	s.handle.recorder.ObserveFeedback(model.StatusCorrected)
	return s.refresh()
}

func (s *Session) refresh() error {
	snapshot := s.handle.Current()
	for _, r := range s.reviews {
		if r.status != model.StatusUnreviewed {
			continue
		}
		pred, err := snapshot.Classify(r.Transaction.Merchant)
		if err != nil {
			return fmt.Errorf("failed to reclassify transaction %s: %w", r.Transaction.ID, err)
		}
		r.reclassify(pred)
	}
	return nil
}

// outcome is the stored record of a review that ends in status.
func outcome(r *Review, status model.ReviewStatus, category model.Category) *model.Classification {
	return &model.Classification{
		TransactionID: r.Transaction.ID,
		Category:      category,
		Status:        status,
		Confidence:    1,
		ClassifiedAt:  time.Now(),
	}
}

func (s *Session) persist(ctx context.Context, classification *model.Classification) error {
	if s.handle.store == nil {
		return nil
	}

	if err := s.handle.store.SaveClassification(ctx, classification); err != nil {
		slog.Warn("Failed to save review outcome",
			"transaction_id", classification.TransactionID,
			"status", classification.Status,
			"error", err)
		return fmt.Errorf("failed to save classification: %w", err)
	}
	return nil
}

// Stats counts items per review status.
func (s *Session) Stats() Stats {
	stats := Stats{Total: len(s.reviews)}
	for _, r := range s.reviews {
		switch r.status {
		case model.StatusUnreviewed:
			stats.Unreviewed++
		case model.StatusDisputed:
			stats.Disputed++
		case model.StatusConfirmed:
			stats.Confirmed++
		case model.StatusCorrected:
			stats.Corrected++
		}
	}
	return stats
}
