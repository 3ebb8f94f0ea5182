// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
)

// TransactionStore is the transaction side of the persistence layer.
type TransactionStore interface {
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionsByMonth(ctx context.Context, userID int, year int, month time.Month, loc *time.Location) ([]model.Transaction, error)
	GetRecentTransactions(ctx context.Context, userID int, limit int) ([]model.Transaction, error)
	GetUnreviewedTransactions(ctx context.Context, userID int, limit int) ([]model.Transaction, error)
}

// FeedbackStore persists the outcome of the review loop.
type FeedbackStore interface {
	SaveCorrection(ctx context.Context, correction *model.Correction) error
	GetCorrections(ctx context.Context) ([]model.Correction, error)
	SaveClassification(ctx context.Context, classification *model.Classification) error
	SaveCorrectedReview(ctx context.Context, correction *model.Correction, classification *model.Classification) error
	GetClassification(ctx context.Context, transactionID string) (*model.Classification, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	TransactionStore
	FeedbackStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
