// Package model defines the core domain models used throughout the application.
package model

import "time"

// ReviewStatus tracks where a classified transaction sits in the feedback loop.
type ReviewStatus string

// Review status constants.
const (
	StatusUnreviewed ReviewStatus = "UNREVIEWED"
	StatusDisputed   ReviewStatus = "DISPUTED"
	StatusConfirmed  ReviewStatus = "CONFIRMED"
	StatusCorrected  ReviewStatus = "CORRECTED"
)

// Terminal reports whether no further feedback is accepted in this status.
func (s ReviewStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusCorrected
}

// Classification records the category assigned to a transaction.
type Classification struct {
	ClassifiedAt  time.Time
	TransactionID string
	Status        ReviewStatus
	Category      Category
	Confidence    float64
}
