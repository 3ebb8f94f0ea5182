package bayes

import (
	"errors"
	"fmt"

	"github.com/Veraticus/pennywise/internal/model"
)

// Training errors.
var (
	ErrNoCategories = errors.New("category enumeration is empty")
	ErrEmptyCorpus  = errors.New("training corpus is empty")
	ErrNotTrained   = errors.New("model not trained")
)

// Counts is a dense per-category count vector indexed by model.Category.
type Counts [model.NumCategories]int

// Model holds the sufficient statistics of a trained corpus.
type Model struct {
	featureCounts  map[string]*Counts
	classCounts    Counts
	totalWords     Counts
	totalDocuments int
}

// Train builds the frequency tables for a corpus in a single pass.
// Every token occurrence is counted, repeats within one example included.
func Train(corpus []model.TrainingExample) (*Model, error) {
	if model.NumCategories == 0 {
		return nil, ErrNoCategories
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	m := &Model{
		featureCounts: make(map[string]*Counts),
	}

	for i, ex := range corpus {
		if !ex.Category.Valid() {
			return nil, fmt.Errorf("example %d (%q): %w", i, ex.Text, model.ErrUnknownCategory)
		}

		m.classCounts[ex.Category]++
		m.totalDocuments++

		for _, token := range Tokenize(ex.Text) {
			counts, ok := m.featureCounts[token]
			if !ok {
				counts = new(Counts)
				m.featureCounts[token] = counts
			}
			counts[ex.Category]++
			m.totalWords[ex.Category]++
		}
	}

	return m, nil
}

// ClassCounts returns the number of training examples per category.
func (m *Model) ClassCounts() Counts {
	return m.classCounts
}

// TotalWords returns the number of token occurrences attributed to each category.
func (m *Model) TotalWords() Counts {
	return m.totalWords
}

// FeatureCounts returns the per-category occurrence counts of a token.
// Unseen tokens report all zeros and false.
func (m *Model) FeatureCounts(token string) (Counts, bool) {
	counts, ok := m.featureCounts[token]
	if !ok {
		return Counts{}, false
	}
	return *counts, true
}

// TotalDocuments returns the number of examples the model was trained on.
func (m *Model) TotalDocuments() int {
	return m.totalDocuments
}

// VocabularySize returns the number of distinct tokens seen in training.
func (m *Model) VocabularySize() int {
	return len(m.featureCounts)
}

// Vocabulary returns the distinct tokens seen in training, in no particular order.
func (m *Model) Vocabulary() []string {
	vocab := make([]string, 0, len(m.featureCounts))
	for token := range m.featureCounts {
		vocab = append(vocab, token)
	}
	return vocab
}
