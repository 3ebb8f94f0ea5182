package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/feedback"
	"github.com/Veraticus/pennywise/internal/model"
)

func newTestModel(t *testing.T) (Model, *feedback.Handle) {
	t.Helper()
	c, err := bayes.New([]model.TrainingExample{
		{Text: "grab ride", Category: model.Transport},
		{Text: "mcdonalds", Category: model.Food},
	})
	require.NoError(t, err)
	h, err := feedback.NewHandle(c)
	require.NoError(t, err)

	at := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	s, err := feedback.NewSession(h, []model.Transaction{
		{ID: "tx1", Merchant: "Grab Ride", Amount: decimal.RequireFromString("12.5"), Timestamp: at},
		{ID: "tx2", Merchant: "McDonalds", Amount: decimal.RequireFromString("8.2"), Timestamp: at},
		{ID: "tx3", Merchant: "grab ride home", Amount: decimal.RequireFromString("15"), Timestamp: at},
	})
	require.NoError(t, err)
	return NewModel(context.Background(), s), h
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_ConfirmAdvances(t *testing.T) {
	m, h := newTestModel(t)

	m = send(t, m, runes("y"))
	assert.Equal(t, model.StatusConfirmed, m.session.Reviews()[0].Status())
	assert.Equal(t, 1, m.cursor, "cursor moves to the next unreviewed item")
	assert.Equal(t, 2, h.Current().CorpusSize())
	assert.Contains(t, m.View(), "Confirmed Grab Ride as Transport")
	assert.Contains(t, m.View(), "100%")
}

func TestModel_DisputeAndPick(t *testing.T) {
	m, h := newTestModel(t)

	m = send(t, m, runes("j"), runes("n"))
	require.True(t, m.picking)
	assert.Equal(t, model.Food, m.current().Selected())
	assert.Contains(t, m.View(), "What is McDonalds?")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, model.Shopping, m.current().Selected())

	m = send(t, m, runes("5"))
	assert.Equal(t, model.Bills, m.current().Selected())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.picking)
	assert.Equal(t, model.StatusCorrected, m.session.Reviews()[1].Status())
	assert.Equal(t, model.Bills, m.session.Reviews()[1].Category())
	assert.Equal(t, 2, m.cursor)

	corpus := h.Current().Corpus()
	require.Len(t, corpus, 3)
	assert.Equal(t, model.TrainingExample{Text: "mcdonalds", Category: model.Bills}, corpus[2])
}

func TestModel_PickerWrapsAndCancels(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("n"), tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, model.Entertainment, m.current().Selected(), "left from the first category wraps")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.picking)
	assert.Equal(t, model.StatusDisputed, m.current().Status())

	// Reopening keeps the disputed state and the picked category.
	m = send(t, m, runes("n"))
	assert.True(t, m.picking)
	assert.Equal(t, model.Entertainment, m.current().Selected())
	assert.NoError(t, m.lastErr)
}

func TestModel_InvalidTransitionShowsError(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("y"), runes("k"), runes("y"))
	require.Error(t, m.lastErr)
	assert.True(t, errors.Is(m.lastErr, feedback.ErrInvalidTransition))
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_QuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModel_EmptySession(t *testing.T) {
	c, err := bayes.New([]model.TrainingExample{{Text: "grab", Category: model.Transport}})
	require.NoError(t, err)
	h, err := feedback.NewHandle(c)
	require.NoError(t, err)
	s, err := feedback.NewSession(h, nil)
	require.NoError(t, err)

	m := send(t, NewModel(context.Background(), s), runes("y"), runes("n"))
	assert.Contains(t, m.View(), "Nothing to review.")
}

func TestShift(t *testing.T) {
	assert.Equal(t, model.Food, shift(model.Transport, 1))
	assert.Equal(t, model.Transport, shift(model.Entertainment, 1))
	assert.Equal(t, model.Entertainment, shift(model.Transport, -1))
}
