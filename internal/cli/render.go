package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
)

const columnGap = 2

// row lays cells out on one line. A cell wider than its column is cut with
// an ellipsis; lipgloss counts padding inside Width, so the gap is added on top.
func row(widths []int, cells ...string) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		rendered[i] = lipgloss.NewStyle().
			Width(widths[i] + columnGap).
			PaddingRight(columnGap).
			Render(ansi.Truncate(cell, widths[i], "…"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderPrediction shows one prediction with its full distribution.
func RenderPrediction(text string, pred bayes.Prediction) string {
	var b strings.Builder
	b.WriteString(row([]int{28, 16}, BoldStyle.Render(text), pred.Category.String()+" "+FormatConfidence(pred.Confidence)))
	b.WriteString("\n")
	for _, c := range model.Categories() {
		b.WriteString(row([]int{28, 16}, SubtleStyle.Render("  "+c.String()), fmt.Sprintf("%5.1f%%", pred.Probability(c)*100)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderResults shows bulk classification results as a table.
func RenderResults(results []Result) string {
	widths := []int{12, 32, 12, 14, 6}
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(row(widths, "Date", "Merchant", "Amount", "Category", "Conf")))
	b.WriteString("\n")
	for _, r := range results {
		b.WriteString(row(widths,
			r.Transaction.Timestamp.Format("2006-01-02"),
			r.Transaction.Merchant,
			FormatAmount(r.Transaction.Amount),
			r.Prediction.Category.String(),
			FormatConfidence(r.Prediction.Confidence),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBreakdown shows a monthly spending breakdown.
func RenderBreakdown(bd *report.Breakdown) string {
	widths := []int{16, 12, 8, 6}
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(row(widths, "Category", "Spent", "Share", "Count")))
	b.WriteString("\n")
	for _, ct := range bd.Categories {
		b.WriteString(row(widths,
			ct.Category.String(),
			FormatAmount(ct.Total),
			ct.Share.StringFixed(1)+"%",
			fmt.Sprintf("%d", ct.Count),
		))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(BoldStyle.Render("Total: " + FormatAmount(bd.Total)))
	b.WriteString("  ")
	b.WriteString(formatChange(bd))
	return RenderBox(fmt.Sprintf("%s %s %d", ChartIcon, bd.Month, bd.Year), b.String())
}

func formatChange(bd *report.Breakdown) string {
	if !bd.Change.Valid {
		return SubtleStyle.Render("no spending last month")
	}
	change := bd.Change.Decimal
	text := change.StringFixed(1) + "% vs last month"
	switch {
	case change.IsPositive():
		return ErrorStyle.Render("▲ +" + text)
	case change.IsNegative():
		return SuccessStyle.Render("▼ " + text)
	default:
		return SubtleStyle.Render(text)
	}
}
