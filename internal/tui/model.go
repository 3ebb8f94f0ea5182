// Package tui provides the interactive full-screen review of classified transactions.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/pennywise/internal/feedback"
	"github.com/Veraticus/pennywise/internal/model"
)

// Model holds the review screen state. Session operations run inside Update
// so the session is only ever touched from the bubbletea event loop.
type Model struct {
	ctx      context.Context
	session  *feedback.Session
	lastErr  error
	theme    Theme
	help     help.Model
	keymap   KeyMap
	status   string
	cursor   int
	width    int
	height   int
	picking  bool
	quitting bool
}

// NewModel creates a review screen for s.
func NewModel(ctx context.Context, s *feedback.Session) Model {
	return Model{
		ctx:     ctx,
		session: s,
		theme:   DefaultTheme,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keymap.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.session.Len() == 0 {
			return m, nil
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < m.session.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Confirm):
		r := m.current()
		if m.setErr(m.session.Confirm(m.ctx, m.cursor)) {
			m.status = fmt.Sprintf("Confirmed %s as %s", r.Transaction.Merchant, r.Category())
			m.advance()
		}
	case key.Matches(msg, m.keymap.Dispute):
		// A disputed item that was left without a choice reopens the picker.
		if m.current().Status() == model.StatusDisputed {
			m.picking = true
			m.lastErr = nil
			return m, nil
		}
		if m.setErr(m.session.Dispute(m.cursor)) {
			m.picking = true
			m.status = ""
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.current()
	switch {
	case key.Matches(msg, m.keymap.Prev):
		m.setErr(m.session.Select(m.cursor, shift(r.Selected(), -1)))
	case key.Matches(msg, m.keymap.Next):
		m.setErr(m.session.Select(m.cursor, shift(r.Selected(), 1)))
	case key.Matches(msg, m.keymap.Cancel):
		m.picking = false
	case key.Matches(msg, m.keymap.Submit):
		if m.setErr(m.session.Submit(m.ctx, m.cursor)) {
			m.picking = false
			m.status = fmt.Sprintf("Recategorized %s as %s, classifier retrained", r.Transaction.Merchant, r.Category())
			m.advance()
		}
	default:
		// Number keys pick a category directly.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if c := model.Category(s[0] - '1'); c.Valid() {
				m.setErr(m.session.Select(m.cursor, c))
			}
		}
	}
	return m, nil
}

// setErr records err for display and reports whether the operation succeeded.
func (m *Model) setErr(err error) bool {
	m.lastErr = err
	if err != nil {
		slog.Debug("Review action failed", "index", m.cursor, "error", err)
		return false
	}
	return true
}

// advance moves the cursor to the next unreviewed item, if any.
func (m *Model) advance() {
	reviews := m.session.Reviews()
	for i := 1; i <= len(reviews); i++ {
		j := (m.cursor + i) % len(reviews)
		if reviews[j].Status() == model.StatusUnreviewed {
			m.cursor = j
			return
		}
	}
}

func (m Model) current() *feedback.Review {
	return m.session.Reviews()[m.cursor]
}

// shift cycles through the categories in declaration order.
func shift(c model.Category, delta int) model.Category {
	n := model.NumCategories
	return model.Category(((int(c)+delta)%n + n) % n)
}

// Stats returns the session outcome so far.
func (m Model) Stats() feedback.Stats {
	return m.session.Stats()
}
