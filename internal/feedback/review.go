package feedback

import (
	"fmt"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/model"
)

// Review is the feedback state of one classified transaction.
//
//	Unreviewed ─confirm─▶ Confirmed
//	Unreviewed ─dispute─▶ Disputed ─submit─▶ Corrected
type Review struct {
	Transaction model.Transaction
	prediction  bayes.Prediction
	status      model.ReviewStatus
	selected    model.Category
}

func newReview(txn model.Transaction, pred bayes.Prediction) *Review {
	return &Review{
		Transaction: txn,
		prediction:  pred,
		status:      model.StatusUnreviewed,
		selected:    pred.Category,
	}
}

// Status returns the current review status.
func (r *Review) Status() model.ReviewStatus {
	return r.status
}

// Prediction returns the classifier output the review was opened with.
func (r *Review) Prediction() bayes.Prediction {
	return r.prediction
}

// Selected returns the category currently picked in the correction picker.
func (r *Review) Selected() model.Category {
	return r.selected
}

// Category returns the category the transaction ends up with.
func (r *Review) Category() model.Category {
	if r.status == model.StatusCorrected {
		return r.selected
	}
	return r.prediction.Category
}

// DisplayConfidence is the confidence shown to the user: reviewed items are
// shown as certain.
func (r *Review) DisplayConfidence() float64 {
	if r.status.Terminal() {
		return 1
	}
	return r.prediction.Confidence
}

func (r *Review) checkConfirm() error {
	if r.status != model.StatusUnreviewed {
		return r.transitionError(model.StatusConfirmed)
	}
	return nil
}

func (r *Review) markConfirmed() {
	r.status = model.StatusConfirmed
}

func (r *Review) dispute() error {
	if r.status != model.StatusUnreviewed {
		return r.transitionError(model.StatusDisputed)
	}
	r.status = model.StatusDisputed
	r.selected = r.prediction.Category
	return nil
}

func (r *Review) selectCategory(c model.Category) error {
	if r.status != model.StatusDisputed {
		return fmt.Errorf("%w: category can only be picked while %s, review is %s",
			ErrInvalidTransition, model.StatusDisputed, r.status)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %d", model.ErrUnknownCategory, int(c))
	}
	r.selected = c
	return nil
}

func (r *Review) checkSubmit() error {
	if r.status != model.StatusDisputed {
		return r.transitionError(model.StatusCorrected)
	}
	return nil
}

func (r *Review) markCorrected() {
	r.status = model.StatusCorrected
}

// reclassify replaces the prediction of an unreviewed item.
func (r *Review) reclassify(pred bayes.Prediction) {
	if r.status != model.StatusUnreviewed {
		return
	}
	r.prediction = pred
	r.selected = pred.Category
}

func (r *Review) transitionError(to model.ReviewStatus) error {
	return fmt.Errorf("%w: %s -> %s for transaction %s", ErrInvalidTransition, r.status, to, r.Transaction.ID)
}
