// Package config loads and validates pennywise's configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/common"
)

// Config is the typed view of pennywise's viper configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Review     ReviewConfig     `mapstructure:"review"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ClassifierConfig tunes the Naive Bayes classifier.
type ClassifierConfig struct {
	// CorpusFile replaces the built-in training corpus when set.
	CorpusFile  string  `mapstructure:"corpus_file"`
	Smoothing   float64 `mapstructure:"smoothing"   validate:"gt=0"`
	Temperature float64 `mapstructure:"temperature" validate:"gt=0"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=console text json"`
}

// ReviewConfig scopes the review and reporting commands.
type ReviewConfig struct {
	UserID int `mapstructure:"user_id" validate:"gte=0"`
	Limit  int `mapstructure:"limit"   validate:"gte=1,lte=1000"`
}

// DefaultDatabasePath is where the database lives unless configured otherwise.
const DefaultDatabasePath = "~/.local/share/pennywise/pennywise.db"

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("classifier.corpus_file", "")
	v.SetDefault("classifier.smoothing", bayes.DefaultSmoothing)
	v.SetDefault("classifier.temperature", bayes.DefaultTemperature)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("review.user_id", 1)
	v.SetDefault("review.limit", 20)
}

// Load decodes and validates the configuration held by v.
// Paths have ~ and environment variables expanded.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if cfg.Database.Path != ":memory:" {
		cfg.Database.Path = filepath.Clean(ExpandPath(cfg.Database.Path))
	}
	cfg.Classifier.CorpusFile = ExpandPath(cfg.Classifier.CorpusFile)
	cfg.Metrics.Textfile = ExpandPath(cfg.Metrics.Textfile)

	return &cfg, nil
}

// ClassifierOptions converts the classifier settings to bayes options.
func (c *Config) ClassifierOptions() []bayes.Option {
	return []bayes.Option{
		bayes.WithSmoothing(c.Classifier.Smoothing),
		bayes.WithTemperature(c.Classifier.Temperature),
	}
}

// ExpandPath expands $VAR references and a leading ~ in path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
