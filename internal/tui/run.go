package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/pennywise/internal/feedback"
)

// Run shows the review screen until the user quits or ctx is canceled.
func Run(ctx context.Context, s *feedback.Session, opts ...tea.ProgramOption) (feedback.Stats, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)

	final, err := tea.NewProgram(NewModel(ctx, s), opts...).Run()
	if err != nil {
		return s.Stats(), fmt.Errorf("review screen failed: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Stats(), nil
	}
	return s.Stats(), nil
}
