package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/corpus"
	"github.com/Veraticus/pennywise/internal/feedback"
	"github.com/Veraticus/pennywise/internal/metrics"
	"github.com/Veraticus/pennywise/internal/service"
	"github.com/Veraticus/pennywise/internal/storage"
)

const monthLayout = "2006-01"

// initStorage opens and migrates the configured database.
func (a *app) initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// loadHandle trains the classifier from the base corpus plus every stored
// correction and wraps it in a feedback handle backed by store.
func (a *app) loadHandle(ctx context.Context, store service.Storage) (*feedback.Handle, error) {
	base, err := corpus.Load(a.cfg.Classifier.CorpusFile)
	if err != nil {
		return nil, common.NewUserError("could not load the training corpus", err)
	}

	corrections, err := store.GetCorrections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load corrections: %w", err)
	}

	start := time.Now()
	classifier, err := bayes.New(corpus.WithCorrections(base, corrections), a.cfg.ClassifierOptions()...)
	if err != nil {
		return nil, common.NewUserError("the classifier could not be trained", err)
	}
	slog.Debug("Trained classifier",
		"examples", classifier.CorpusSize(),
		"corrections", len(corrections),
		"vocabulary", classifier.Model().VocabularySize(),
		"duration", time.Since(start))

	a.metrics = metrics.NewPrometheusMetrics()
	a.metrics.SetCorpusSize(classifier.CorpusSize())

	handle, err := feedback.NewHandle(classifier,
		feedback.WithStore(store),
		feedback.WithRecorder(a.metrics),
	)
	if err != nil {
		return nil, common.NewUserError("classifier unavailable", err)
	}
	return handle, nil
}

// parseMonth reads a YYYY-MM flag value. An empty value selects the month
// containing now.
func parseMonth(value string, now time.Time) (int, time.Month, error) {
	if value == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return 0, 0, common.NewUserError(
			fmt.Sprintf("invalid month %q, expected YYYY-MM", value),
			fmt.Errorf("%w: %w", storage.ErrInvalidDateRange, err))
	}
	return t.Year(), t.Month(), nil
}
