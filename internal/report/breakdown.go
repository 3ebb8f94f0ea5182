// Package report summarizes monthly spending by category.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/storage"
)

var hundred = decimal.NewFromInt(100)

// TransactionSource lists a user's transactions for a calendar month.
type TransactionSource interface {
	GetTransactionsByMonth(ctx context.Context, userID int, year int, month time.Month, loc *time.Location) ([]model.Transaction, error)
}

// ReviewSource returns the stored review outcome of a transaction.
type ReviewSource interface {
	GetClassification(ctx context.Context, transactionID string) (*model.Classification, error)
}

// Classifier predicts a category for merchant text.
type Classifier interface {
	Classify(text string) (bayes.Prediction, error)
}

// CategoryTotal is the spending attributed to one category.
type CategoryTotal struct {
	Total    decimal.Decimal
	Share    decimal.Decimal // Percent of the month's total
	Category model.Category
	Count    int
}

// Breakdown is one month of spending split by category.
type Breakdown struct {
	Total         decimal.Decimal
	PreviousTotal decimal.Decimal
	// Change is the percent change against the previous month. It is not
	// valid when the previous month had no spending.
	Change     decimal.NullDecimal
	Categories []CategoryTotal
	Month      time.Month
	Year       int
}

// Builder assembles breakdowns from stored transactions.
type Builder struct {
	transactions TransactionSource
	reviews      ReviewSource
	classifier   Classifier
	loc          *time.Location
}

// NewBuilder creates a breakdown builder. reviews may be nil, in which case
// every transaction is attributed to its predicted category.
func NewBuilder(transactions TransactionSource, reviews ReviewSource, classifier Classifier, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{
		transactions: transactions,
		reviews:      reviews,
		classifier:   classifier,
		loc:          loc,
	}
}

// Monthly builds the breakdown for a user's month and compares it with the
// month before.
func (b *Builder) Monthly(ctx context.Context, userID int, year int, month time.Month) (*Breakdown, error) {
	txns, err := b.transactions.GetTransactionsByMonth(ctx, userID, year, month, b.loc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", month, year, err)
	}

	prevYear, prevMonth := model.PreviousMonth(year, month)
	prev, err := b.transactions.GetTransactionsByMonth(ctx, userID, prevYear, prevMonth, b.loc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", prevMonth, prevYear, err)
	}

	out := &Breakdown{
		Year:          year,
		Month:         month,
		Total:         decimal.Zero,
		PreviousTotal: sum(prev),
		Categories:    make([]CategoryTotal, model.NumCategories),
	}
	for _, c := range model.Categories() {
		out.Categories[c] = CategoryTotal{Category: c, Total: decimal.Zero, Share: decimal.Zero}
	}

	for _, txn := range txns {
		category, err := b.categorize(ctx, txn)
		if err != nil {
			return nil, err
		}
		ct := &out.Categories[category]
		ct.Total = ct.Total.Add(txn.Amount)
		ct.Count++
		out.Total = out.Total.Add(txn.Amount)
	}

	if !out.Total.IsZero() {
		for i := range out.Categories {
			out.Categories[i].Share = out.Categories[i].Total.Div(out.Total).Mul(hundred).Round(1)
		}
	}

	out.Change = PercentChange(out.Total, out.PreviousTotal)
	return out, nil
}

// categorize prefers a reviewed outcome over a fresh prediction.
func (b *Builder) categorize(ctx context.Context, txn model.Transaction) (model.Category, error) {
	if b.reviews != nil {
		c, err := b.reviews.GetClassification(ctx, txn.ID)
		switch {
		case err == nil && c.Status.Terminal():
			return c.Category, nil
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			return 0, fmt.Errorf("failed to load review for %s: %w", txn.ID, err)
		}
	}

	pred, err := b.classifier.Classify(txn.Merchant)
	if err != nil {
		return 0, fmt.Errorf("failed to classify %s: %w", txn.ID, err)
	}
	return pred.Category, nil
}

// PercentChange returns (current-previous)/previous as a percentage rounded to
// one decimal place. It is invalid when previous is zero.
func PercentChange(current, previous decimal.Decimal) decimal.NullDecimal {
	if previous.IsZero() {
		return decimal.NullDecimal{}
	}
	change := current.Sub(previous).Div(previous).Mul(hundred).Round(1)
	return decimal.NullDecimal{Decimal: change, Valid: true}
}

func sum(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Amount)
	}
	return total
}
