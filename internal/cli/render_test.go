package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
)

func TestRenderBreakdown(t *testing.T) {
	bd := &report.Breakdown{
		Year:          2024,
		Month:         time.March,
		Total:         decimal.RequireFromString("20"),
		PreviousTotal: decimal.RequireFromString("16"),
		Change:        report.PercentChange(decimal.RequireFromString("20"), decimal.RequireFromString("16")),
	}
	for _, c := range model.Categories() {
		bd.Categories = append(bd.Categories, report.CategoryTotal{Category: c})
	}
	bd.Categories[model.Food].Total = decimal.RequireFromString("20")
	bd.Categories[model.Food].Share = decimal.NewFromInt(100)
	bd.Categories[model.Food].Count = 2

	out := RenderBreakdown(bd)
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "+25.0% vs last month")

	bd.Change = decimal.NullDecimal{}
	assert.Contains(t, RenderBreakdown(bd), "no spending last month")
}

func TestRenderBreakdown_HeaderOnOneLine(t *testing.T) {
	bd := &report.Breakdown{Year: 2024, Month: time.March, Total: decimal.Zero}
	for _, c := range model.Categories() {
		bd.Categories = append(bd.Categories, report.CategoryTotal{Category: c, Total: decimal.Zero, Share: decimal.Zero})
	}
	bd.Categories[model.Bills].Total = decimal.RequireFromString("123456789.50")
	bd.Categories[model.Bills].Count = 123456

	var header string
	for _, line := range strings.Split(RenderBreakdown(bd), "\n") {
		if strings.Contains(line, "Category") {
			header = line
		}
	}
	require.NotEmpty(t, header)
	for _, col := range []string{"Spent", "Share", "Count"} {
		assert.Contains(t, header, col)
	}
}

func TestRenderResults_LongCellsDoNotWrap(t *testing.T) {
	at := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	results := []Result{
		{Transaction: model.Transaction{
			Timestamp: at,
			Merchant:  "THE VERY LONG MERCHANT NAME THAT GOES ON AND ON PTE LTD",
			Amount:    decimal.RequireFromString("12345678901.25"),
		}},
		{Transaction: model.Transaction{Timestamp: at, Merchant: "GRAB", Amount: decimal.RequireFromString("8")}},
	}

	out := strings.TrimRight(RenderResults(results), "\n")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4, "header, its rule, then one line per result")
	assert.Contains(t, lines[0], "Conf")
	assert.Contains(t, lines[2], "…")
	assert.Contains(t, lines[3], "GRAB")
}
