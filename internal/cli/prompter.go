package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/pennywise/internal/feedback"
	"github.com/Veraticus/pennywise/internal/model"
)

// errQuit ends a review loop early without an error.
var errQuit = errors.New("quit")

// Prompter walks the user through a review session line by line.
type Prompter struct {
	writer io.Writer
	reader *LineReader
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// Run asks for feedback on every unreviewed item of the session. It stops
// early when the user quits or input ends; outcomes recorded so far are kept.
func (p *Prompter) Run(ctx context.Context, s *feedback.Session) (feedback.Stats, error) {
	for i, r := range s.Reviews() {
		if r.Status() != model.StatusUnreviewed {
			continue
		}

		err := p.reviewOne(ctx, s, i, r)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s.Stats(), err
		}
	}

	stats := s.Stats()
	p.ShowSummary(stats)
	return stats, nil
}

func (p *Prompter) reviewOne(ctx context.Context, s *feedback.Session, i int, r *feedback.Review) error {
	if _, err := fmt.Fprintln(p.writer, RenderBox(
		fmt.Sprintf("Transaction %d of %d", i+1, s.Len()),
		FormatReview(r),
	)); err != nil {
		return fmt.Errorf("failed to write transaction box: %w", err)
	}

	if _, err := fmt.Fprintln(p.writer, "  [Y] Correct   [N] Wrong, pick a category   [S] Skip   [Q] Quit"); err != nil {
		return fmt.Errorf("failed to write options: %w", err)
	}

	choice, err := p.promptChoice(ctx, "Is this right?", []string{"y", "n", "s", "q"})
	if err != nil {
		return err
	}

	switch choice {
	case "y":
		if err := s.Confirm(ctx, i); err != nil {
			return err
		}
		p.println(FormatSuccess("Confirmed " + r.Category().String()))
	case "n":
		if err := s.Dispute(i); err != nil {
			return err
		}
		category, err := p.promptCategory(ctx, r.Selected())
		if err != nil {
			return err
		}
		if err := s.Select(i, category); err != nil {
			return err
		}
		if err := s.Submit(ctx, i); err != nil {
			return err
		}
		p.println(FormatSuccess(fmt.Sprintf("Recategorized %s as %s, classifier retrained",
			r.Transaction.Merchant, r.Category())))
	case "q":
		return errQuit
	}
	return nil
}

// promptCategory shows the category picker, defaulting to current.
func (p *Prompter) promptCategory(ctx context.Context, current model.Category) (model.Category, error) {
	var b strings.Builder
	b.WriteString(BoldStyle.Render("Categories:") + "\n")
	for _, c := range model.Categories() {
		marker := " "
		if c == current {
			marker = "*"
		}
		fmt.Fprintf(&b, " %s[%d] %s\n", marker, int(c)+1, c)
	}
	p.println(b.String())

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(fmt.Sprintf("Category [%s]", current))); err != nil {
			return 0, fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		category, ok := parseCategoryChoice(input, current)
		if ok {
			return category, nil
		}
		p.println(FormatError("Unknown category. Enter a number or a name."))
	}
}

// parseCategoryChoice accepts an empty line (keep current), a 1-based
// number, or a category name.
func parseCategoryChoice(input string, current model.Category) (model.Category, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return current, true
	}
	if n, err := strconv.Atoi(input); err == nil {
		c := model.Category(n - 1)
		return c, c.Valid()
	}
	c, err := model.ParseCategory(input)
	return c, err == nil
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		p.println(FormatError("Invalid choice. Please try again."))
	}
}

// ShowSummary prints the outcome counts of a review session.
func (p *Prompter) ShowSummary(stats feedback.Stats) {
	content := fmt.Sprintf("Reviewed:   %d of %d\n", stats.Confirmed+stats.Corrected, stats.Total) +
		fmt.Sprintf("Confirmed:  %d\n", stats.Confirmed) +
		fmt.Sprintf("Corrected:  %d\n", stats.Corrected) +
		fmt.Sprintf("Pending:    %d", stats.Unreviewed+stats.Disputed)

	p.println(RenderBox(ChartIcon+" Review Complete", content))
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write to terminal", "error", err)
	}
}

// FormatReview renders the details of one review item.
func FormatReview(r *feedback.Review) string {
	t := r.Transaction
	lines := []string{
		BoldStyle.Render(t.Merchant),
		fmt.Sprintf("Date:       %s", t.Timestamp.Format("Jan 2, 2006")),
		fmt.Sprintf("Amount:     %s", FormatAmount(t.Amount)),
		fmt.Sprintf("Category:   %s", r.Category()),
		fmt.Sprintf("Confidence: %s", FormatConfidence(r.DisplayConfidence())),
	}
	if r.Status() != model.StatusUnreviewed {
		lines = append(lines, SubtleStyle.Render(strings.ToLower(string(r.Status()))))
	}
	return strings.Join(lines, "\n")
}
