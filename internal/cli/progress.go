package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/model"
)

// Classifier predicts a category for merchant text.
type Classifier interface {
	Classify(text string) (bayes.Prediction, error)
}

// Result pairs a transaction with its prediction.
type Result struct {
	Transaction model.Transaction
	Prediction  bayes.Prediction
}

// NewProgressBar creates the progress bar used for bulk operations.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// ClassifyAll classifies every transaction, reporting progress to w.
func ClassifyAll(ctx context.Context, w io.Writer, c Classifier, txns []model.Transaction) ([]Result, error) {
	bar := NewProgressBar(w, len(txns), "Classifying transactions...")

	results := make([]Result, 0, len(txns))
	for _, txn := range txns {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		pred, err := c.Classify(txn.Merchant)
		if err != nil {
			return results, fmt.Errorf("failed to classify transaction %s: %w", txn.ID, err)
		}
		results = append(results, Result{Transaction: txn, Prediction: pred})

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	return results, nil
}
