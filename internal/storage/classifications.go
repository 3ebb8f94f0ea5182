package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
)

// SaveClassification records the review outcome for a transaction.
func (s *SQLiteStorage) SaveClassification(ctx context.Context, classification *model.Classification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClassification(classification); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveClassificationTx(ctx, tx, classification); err != nil {
		return err
	}

	return tx.Commit()
}

func saveClassificationTx(ctx context.Context, tx *sql.Tx, classification *model.Classification) error {
	if classification.ClassifiedAt.IsZero() {
		classification.ClassifiedAt = time.Now()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO classifications (
			transaction_id, category, status, confidence, classified_at
		) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			category = excluded.category,
			status = excluded.status,
			confidence = excluded.confidence,
			classified_at = excluded.classified_at
	`,
		classification.TransactionID,
		classification.Category.String(),
		string(classification.Status),
		classification.Confidence,
		classification.ClassifiedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}

	// Add to history for auditing
	_, err = tx.ExecContext(ctx, `
		INSERT INTO classification_history (
			transaction_id, category, status, confidence
		) VALUES (?, ?, ?, ?)
	`,
		classification.TransactionID,
		classification.Category.String(),
		string(classification.Status),
		classification.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification history: %w", err)
	}

	return nil
}

// GetClassification retrieves the latest review outcome for a transaction.
func (s *SQLiteStorage) GetClassification(ctx context.Context, transactionID string) (*model.Classification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(transactionID, "transactionID"); err != nil {
		return nil, err
	}

	var (
		c        model.Classification
		category string
		status   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT transaction_id, category, status, confidence, classified_at
		FROM classifications
		WHERE transaction_id = ?
	`, transactionID).Scan(&c.TransactionID, &category, &status, &c.Confidence, &c.ClassifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("classification for %s: %w", transactionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get classification: %w", err)
	}

	c.Category, err = model.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("classification for %s: %w", transactionID, err)
	}
	c.Status = model.ReviewStatus(status)
	return &c, nil
}

// GetClassificationHistory returns every recorded outcome for a transaction,
// oldest first.
func (s *SQLiteStorage) GetClassificationHistory(ctx context.Context, transactionID string) ([]model.Classification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(transactionID, "transactionID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_id, category, status, confidence, created_at
		FROM classification_history
		WHERE transaction_id = ?
		ORDER BY id ASC
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query classification history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history []model.Classification
	for rows.Next() {
		var (
			c        model.Classification
			category string
			status   string
		)
		if err := rows.Scan(&c.TransactionID, &category, &status, &c.Confidence, &c.ClassifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan classification history: %w", err)
		}
		if c.Category, err = model.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("classification history for %s: %w", transactionID, err)
		}
		c.Status = model.ReviewStatus(status)
		history = append(history, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classification history: %w", err)
	}
	return history, nil
}
