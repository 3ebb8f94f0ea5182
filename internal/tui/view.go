package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/feedback"
	"github.com/Veraticus/pennywise/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Review transactions"))
	b.WriteString("\n")

	if m.session.Len() == 0 {
		b.WriteString(m.theme.Subtle.Render("Nothing to review."))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keymap))
		return b.String()
	}

	for i, r := range m.session.Reviews() {
		line := m.renderRow(r)
		if i == m.cursor {
			line = m.theme.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.picking {
		b.WriteString("\n")
		b.WriteString(m.renderPicker(m.current()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderRow(r *feedback.Review) string {
	t := r.Transaction
	return fmt.Sprintf("%s %-10s %-28s %10s  %-13s %s",
		statusIcon(r.Status()),
		t.Timestamp.Format("2006-01-02"),
		truncate(t.Merchant, 28),
		cli.FormatAmount(t.Amount),
		r.Category(),
		m.renderConfidence(r.DisplayConfidence()),
	)
}

func (m Model) renderConfidence(confidence float64) string {
	text := fmt.Sprintf("%3d%%", cli.Percent(confidence))
	switch cli.BandFor(confidence) {
	case cli.BandHigh:
		return m.theme.High.Render(text)
	case cli.BandMedium:
		return m.theme.Medium.Render(text)
	default:
		return m.theme.Low.Render(text)
	}
}

func (m Model) renderPicker(r *feedback.Review) string {
	cells := make([]string, 0, model.NumCategories)
	for _, c := range model.Categories() {
		label := fmt.Sprintf("%d %s", int(c)+1, c)
		if c == r.Selected() {
			cells = append(cells, m.theme.Picked.Render(label))
		} else {
			cells = append(cells, " "+label+" ")
		}
	}
	title := fmt.Sprintf("What is %s?", r.Transaction.Merchant)
	return m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
	))
}

func (m Model) renderStatusBar() string {
	if m.lastErr != nil {
		return m.theme.Error.Render("Error: " + m.lastErr.Error())
	}

	stats := m.session.Stats()
	summary := fmt.Sprintf("%d confirmed · %d corrected · %d pending",
		stats.Confirmed, stats.Corrected, stats.Unreviewed+stats.Disputed)
	if m.status == "" {
		return m.theme.Subtle.Render(summary)
	}
	return m.theme.Done.Render(m.status) + "  " + m.theme.Subtle.Render(summary)
}

func statusIcon(s model.ReviewStatus) string {
	switch s {
	case model.StatusConfirmed:
		return "✓"
	case model.StatusCorrected:
		return "✎"
	case model.StatusDisputed:
		return "?"
	default:
		return "·"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
