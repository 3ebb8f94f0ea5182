package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/report"
)

func (a *app) breakdownCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show spending per category for a month",
		Long: `Show how a month's spending splits across categories, and how the total
compares with the month before. Reviewed transactions count under their
confirmed or corrected category.`,
		Example: `  pennywise breakdown
  pennywise breakdown --month 2024-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, m, err := parseMonth(month, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			handle, err := a.loadHandle(ctx, store)
			if err != nil {
				return err
			}

			bd, err := report.NewBuilder(store, store, handle, time.Local).Monthly(ctx, a.cfg.Review.UserID, year, m)
			if err != nil {
				return err
			}

			printLine(cmd.OutOrStdout(), cli.RenderBreakdown(bd))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to report (YYYY-MM, default: current month)")

	return cmd
}
