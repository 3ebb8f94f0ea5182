package model

import (
	"errors"
	"time"
)

// ErrUnknownCategory is returned when a name or value is outside the category enumeration.
var ErrUnknownCategory = errors.New("unknown category")

// TrainingExample is one labeled merchant string of a training corpus.
type TrainingExample struct {
	Text     string
	Category Category
}

// Correction is a user-submitted relabeling persisted so it can be replayed on start.
type Correction struct {
	CreatedAt     time.Time
	TransactionID string
	Example       TrainingExample
	ID            int64
}
