package bayes

import (
	"errors"
	"fmt"
	"math"

	"github.com/Veraticus/pennywise/internal/model"
)

const (
	// DefaultSmoothing is the additive smoothing constant α.
	DefaultSmoothing = 0.1
	// DefaultTemperature sharpens the softmax used for confidence.
	DefaultTemperature = 0.6
)

// ErrInvalidOption is returned for non-positive smoothing or temperature values.
var ErrInvalidOption = errors.New("invalid classifier option")

// Option configures a Classifier.
type Option func(*options)

type options struct {
	smoothing   float64
	temperature float64
}

// WithSmoothing overrides the smoothing constant α.
func WithSmoothing(alpha float64) Option {
	return func(o *options) { o.smoothing = alpha }
}

// WithTemperature overrides the softmax temperature.
func WithTemperature(t float64) Option {
	return func(o *options) { o.temperature = t }
}

// Prediction is the outcome of classifying one merchant string.
type Prediction struct {
	// Scores is the softmax distribution over all categories.
	Scores     [model.NumCategories]float64
	Category   model.Category
	Confidence float64
}

// Probability returns the softmax weight assigned to c.
func (p Prediction) Probability(c model.Category) float64 {
	if !c.Valid() {
		return 0
	}
	return p.Scores[c]
}

// Classifier is an immutable trained merchant classifier.
type Classifier struct {
	model  *Model
	corpus []model.TrainingExample
	opts   options
}

// New trains a Classifier from a snapshot of corpus.
func New(corpus []model.TrainingExample, opts ...Option) (*Classifier, error) {
	o := options{
		smoothing:   DefaultSmoothing,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.smoothing > 0) {
		return nil, fmt.Errorf("%w: smoothing must be positive, got %v", ErrInvalidOption, o.smoothing)
	}
	if !(o.temperature > 0) {
		return nil, fmt.Errorf("%w: temperature must be positive, got %v", ErrInvalidOption, o.temperature)
	}

	snapshot := make([]model.TrainingExample, len(corpus))
	copy(snapshot, corpus)

	m, err := Train(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to train classifier: %w", err)
	}

	return &Classifier{
		model:  m,
		corpus: snapshot,
		opts:   o,
	}, nil
}

// WithCorrection returns a new Classifier trained on the receiver's corpus plus
// one example. The receiver is left untouched.
func (c *Classifier) WithCorrection(text string, category model.Category) (*Classifier, error) {
	if c == nil || c.model == nil {
		return nil, ErrNotTrained
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownCategory, int(category))
	}

	corpus := make([]model.TrainingExample, len(c.corpus), len(c.corpus)+1)
	copy(corpus, c.corpus)
	corpus = append(corpus, model.TrainingExample{Text: text, Category: category})

	return New(corpus, WithSmoothing(c.opts.smoothing), WithTemperature(c.opts.temperature))
}

// Classify assigns text to the most probable category.
func (c *Classifier) Classify(text string) (Prediction, error) {
	if c == nil || c.model == nil {
		return Prediction{}, ErrNotTrained
	}

	logProbs := c.logProbabilities(Tokenize(text))

	best := -1
	for i, lp := range logProbs {
		if math.IsInf(lp, -1) {
			continue
		}
		if best < 0 || lp > logProbs[best] {
			best = i
		}
	}
	if best < 0 {
		return Prediction{}, ErrNotTrained
	}

	pred := Prediction{Category: model.Category(best)}

	maxLog := logProbs[best]
	var sum float64
	for i, lp := range logProbs {
		pred.Scores[i] = math.Exp((lp - maxLog) / c.opts.temperature)
		sum += pred.Scores[i]
	}
	for i := range pred.Scores {
		pred.Scores[i] /= sum
	}
	pred.Confidence = pred.Scores[best]

	return pred, nil
}

// logProbabilities scores tokens against every category. Categories absent
// from training keep a log-prior of -Inf and can never win.
func (c *Classifier) logProbabilities(tokens []string) [model.NumCategories]float64 {
	m := c.model
	alpha := c.opts.smoothing
	vocab := float64(m.VocabularySize())

	var logProbs [model.NumCategories]float64
	for i := range logProbs {
		if m.classCounts[i] == 0 {
			logProbs[i] = math.Inf(-1)
			continue
		}
		logProbs[i] = math.Log(float64(m.classCounts[i]) / float64(m.totalDocuments))
	}

	// Every likelihood term is identical across categories when nothing was
	// ever tokenized, and the denominator would be zero.
	if vocab == 0 {
		return logProbs
	}

	for _, token := range tokens {
		counts, _ := m.FeatureCounts(token)
		for i := range logProbs {
			if math.IsInf(logProbs[i], -1) {
				continue
			}
			p := (float64(counts[i]) + alpha) / (float64(m.totalWords[i]) + alpha*vocab)
			logProbs[i] += math.Log(p)
		}
	}

	return logProbs
}

// Model exposes the trained statistics.
func (c *Classifier) Model() *Model {
	return c.model
}

// Corpus returns a copy of the examples the classifier was trained on.
func (c *Classifier) Corpus() []model.TrainingExample {
	out := make([]model.TrainingExample, len(c.corpus))
	copy(out, c.corpus)
	return out
}

// CorpusSize returns the number of training examples.
func (c *Classifier) CorpusSize() int {
	return len(c.corpus)
}
