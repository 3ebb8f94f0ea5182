package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, hash, user_id, timestamp, merchant, amount, account_id`

// SaveTransactions saves multiple transactions to the database and reports
// how many were inserted. Transactions whose hash already exists are skipped.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		result, err := stmt.ExecContext(ctx,
			txn.ID,
			txn.Hash,
			txn.UserID,
			txn.Timestamp.UTC(),
			txn.Merchant,
			txn.Amount.String(),
			txn.AccountID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Debug("Saved transactions",
		"received", len(transactions),
		"inserted", inserted)
	return inserted, nil
}

// GetTransaction retrieves a single transaction by ID.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// GetTransactionsByMonth retrieves a user's transactions within a calendar
// month, oldest first.
func (s *SQLiteStorage) GetTransactionsByMonth(ctx context.Context, userID int, year int, month time.Month, loc *time.Location) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidDateRange, month)
	}

	start, end := model.MonthRange(year, month, loc)
	return s.queryTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC, id ASC
	`, userID, start.UTC(), end.UTC())
}

// GetRecentTransactions retrieves a user's newest transactions, newest first.
func (s *SQLiteStorage) GetRecentTransactions(ctx context.Context, userID int, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidParameter)
	}

	return s.queryTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ?
		ORDER BY timestamp DESC, id ASC
		LIMIT ?
	`, userID, limit)
}

// GetUnreviewedTransactions retrieves a user's transactions that have no
// terminal review outcome yet, oldest first.
func (s *SQLiteStorage) GetUnreviewedTransactions(ctx context.Context, userID int, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidParameter)
	}

	return s.queryTransactions(ctx, `
		SELECT t.id, t.hash, t.user_id, t.timestamp, t.merchant, t.amount, t.account_id
		FROM transactions t
		LEFT JOIN classifications c ON t.id = c.transaction_id
		WHERE t.user_id = ? AND (c.transaction_id IS NULL OR c.status NOT IN (?, ?))
		ORDER BY t.timestamp ASC, t.id ASC
		LIMIT ?
	`, userID, string(model.StatusConfirmed), string(model.StatusCorrected), limit)
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var (
		txn       model.Transaction
		amount    string
		accountID sql.NullString
	)

	err := row.Scan(
		&txn.ID,
		&txn.Hash,
		&txn.UserID,
		&txn.Timestamp,
		&txn.Merchant,
		&amount,
		&accountID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %s has malformed amount %q: %w", txn.ID, amount, err)
	}
	txn.AccountID = accountID.String
	return &txn, nil
}
