package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
)

// SaveCorrection appends a user correction to the correction log.
// Corrections are never updated in place; replaying them in ID order
// rebuilds the corpus the classifier was last trained on.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, correction *model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCorrection(correction); err != nil {
		return err
	}

	return insertCorrection(ctx, s.db, correction)
}

// SaveCorrectedReview records a correction and the transaction's Corrected
// classification atomically. Both rows must name the same transaction.
func (s *SQLiteStorage) SaveCorrectedReview(ctx context.Context, correction *model.Correction, classification *model.Classification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCorrection(correction); err != nil {
		return err
	}
	if err := validateClassification(classification); err != nil {
		return err
	}
	if correction.TransactionID != classification.TransactionID {
		return fmt.Errorf("%w: correction for %q, classification for %q",
			ErrInvalidParameter, correction.TransactionID, classification.TransactionID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertCorrection(ctx, tx, correction); err != nil {
		return err
	}
	if err := saveClassificationTx(ctx, tx, classification); err != nil {
		return err
	}

	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertCorrection(ctx context.Context, db execer, correction *model.Correction) error {
	if correction.CreatedAt.IsZero() {
		correction.CreatedAt = time.Now()
	}

	var transactionID sql.NullString
	if correction.TransactionID != "" {
		transactionID = sql.NullString{String: correction.TransactionID, Valid: true}
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO corrections (transaction_id, text, category, created_at)
		VALUES (?, ?, ?, ?)
	`,
		transactionID,
		correction.Example.Text,
		correction.Example.Category.String(),
		correction.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get correction ID: %w", err)
	}
	correction.ID = id
	return nil
}

// GetCorrections returns every stored correction in insertion order.
func (s *SQLiteStorage) GetCorrections(ctx context.Context) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, text, category, created_at
		FROM corrections
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var corrections []model.Correction
	for rows.Next() {
		var (
			c             model.Correction
			transactionID sql.NullString
			category      string
		)
		if err := rows.Scan(&c.ID, &transactionID, &c.Example.Text, &category, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}

		c.Example.Category, err = model.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("correction %d: %w", c.ID, err)
		}
		c.TransactionID = transactionID.String
		corrections = append(corrections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corrections: %w", err)
	}
	return corrections, nil
}
