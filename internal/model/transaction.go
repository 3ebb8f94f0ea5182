package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single spending record from any source.
type Transaction struct {
	Timestamp time.Time
	ID        string
	Merchant  string // Raw merchant text as shown on the statement
	AccountID string
	Hash      string
	Amount    decimal.Decimal
	UserID    int
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%d",
		t.Timestamp.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		t.Merchant,
		t.AccountID,
		t.UserID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// MonthRange returns the half-open interval [start, end) covering a calendar month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// PreviousMonth returns the month before the given one, wrapping January to December.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
