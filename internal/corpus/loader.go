package corpus

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidCorpus is returned when a corpus file cannot be turned into training examples.
var ErrInvalidCorpus = errors.New("invalid corpus file")

type fileExample struct {
	Text     string `mapstructure:"text" validate:"required"`
	Category string `mapstructure:"category" validate:"required"`
}

type corpusFile struct {
	Training []fileExample `mapstructure:"training" validate:"required,min=1,dive"`
}

// LoadFile reads a corpus from a config file (YAML, JSON or TOML, picked by
// extension) holding a top-level "training" list of {text, category} entries.
func LoadFile(path string) ([]model.TrainingExample, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}

	var file corpusFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode corpus file %s: %w", path, err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCorpus, path, err)
	}

	examples := make([]model.TrainingExample, 0, len(file.Training))
	for i, ex := range file.Training {
		category, err := model.ParseCategory(ex.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %w", ErrInvalidCorpus, path, i, err)
		}
		examples = append(examples, model.TrainingExample{Text: ex.Text, Category: category})
	}

	slog.Debug("Loaded training corpus", "path", path, "examples", len(examples))

	return examples, nil
}

// Load returns the corpus at path, or the built-in corpus when path is empty.
func Load(path string) ([]model.TrainingExample, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// WithCorrections appends persisted corrections to a base corpus in order.
func WithCorrections(base []model.TrainingExample, corrections []model.Correction) []model.TrainingExample {
	out := make([]model.TrainingExample, 0, len(base)+len(corrections))
	out = append(out, base...)
	for _, c := range corrections {
		out = append(out, c.Example)
	}
	return out
}
