// Package testutil provides shared test fixtures for the pennywise packages.
package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pennywise/internal/model"
)

// TransactionFactory generates reproducible transactions for tests.
type TransactionFactory struct {
	faker  *gofakeit.Faker
	UserID int
}

// NewTransactionFactory returns a factory seeded with seed. The same seed
// always yields the same sequence of transactions.
func NewTransactionFactory(seed uint64, userID int) *TransactionFactory {
	return &TransactionFactory{
		faker:  gofakeit.New(seed),
		UserID: userID,
	}
}

// Transaction returns one transaction at the given time.
func (f *TransactionFactory) Transaction(at time.Time) model.Transaction {
	txn := model.Transaction{
		ID:        uuid.NewString(),
		UserID:    f.UserID,
		Timestamp: at,
		Merchant:  f.faker.Company(),
		Amount:    decimal.NewFromFloat(f.faker.Price(1, 500)).Round(2),
		AccountID: "acc-" + f.faker.LetterN(6),
	}
	txn.Hash = txn.GenerateHash()
	return txn
}

// Month returns count transactions spread over the given calendar month.
func (f *TransactionFactory) Month(year int, month time.Month, count int) []model.Transaction {
	start, end := model.MonthRange(year, month, time.UTC)
	txns := make([]model.Transaction, 0, count)
	for i := 0; i < count; i++ {
		at := f.faker.DateRange(start, end.Add(-time.Second)).Truncate(time.Second)
		txns = append(txns, f.Transaction(at))
	}
	return txns
}

// WithMerchant returns a transaction for a specific merchant and amount.
func (f *TransactionFactory) WithMerchant(merchant string, amount string, at time.Time) model.Transaction {
	txn := f.Transaction(at)
	txn.Merchant = merchant
	txn.Amount = decimal.RequireFromString(amount)
	txn.Hash = txn.GenerateHash()
	return txn
}
