// Package storage provides the data persistence layer for pennywise.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/model"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrEmptySlice            = errors.New("slice cannot be empty")
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrInvalidDateRange      = errors.New("invalid date range")
	ErrInvalidTransaction    = errors.New("invalid transaction")
	ErrInvalidCorrection     = errors.New("invalid correction")
	ErrInvalidClassification = errors.New("invalid classification")
	ErrInvalidStatus         = errors.New("invalid review status")
	ErrNotFound              = errors.New("not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.Merchant) == "" {
		return fmt.Errorf("%w: missing merchant", ErrInvalidTransaction)
	}
	return nil
}

// validateCorrection validates a correction before it is appended to the corpus log.
func validateCorrection(correction *model.Correction) error {
	if correction == nil {
		return fmt.Errorf("%w: correction", ErrNilParameter)
	}
	if !correction.Example.Category.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidCorrection, model.ErrUnknownCategory)
	}
	return nil
}

// validateClassification validates a classification.
func validateClassification(classification *model.Classification) error {
	if classification == nil {
		return fmt.Errorf("%w: classification", ErrNilParameter)
	}
	if classification.TransactionID == "" {
		return fmt.Errorf("%w: missing transaction ID", ErrInvalidClassification)
	}
	if !classification.Category.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidClassification, model.ErrUnknownCategory)
	}

	switch classification.Status {
	case model.StatusUnreviewed,
		model.StatusDisputed,
		model.StatusConfirmed,
		model.StatusCorrected:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, classification.Status)
	}

	if classification.Confidence < 0 || classification.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidClassification)
	}

	return nil
}
