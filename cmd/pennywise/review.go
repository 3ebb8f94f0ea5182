package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/feedback"
	"github.com/Veraticus/pennywise/internal/tui"
)

func (a *app) reviewCmd() *cobra.Command {
	var (
		plain bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Confirm or correct predicted categories",
		Long: `Review predictions for transactions that have not been confirmed or
corrected yet. Every correction retrains the classifier immediately, so
later items in the same session already benefit from it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit == 0 {
				limit = a.cfg.Review.Limit
			}

			interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := interruptHandler.HandleInterrupts(cmd.Context())

			store, err := a.initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			handle, err := a.loadHandle(ctx, store)
			if err != nil {
				return err
			}

			txns, err := store.GetUnreviewedTransactions(ctx, a.cfg.Review.UserID, limit)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				printLine(cmd.OutOrStdout(), cli.FormatSuccess("Nothing to review"))
				return nil
			}

			session, err := feedback.NewSession(handle, txns)
			if err != nil {
				return err
			}

			var stats feedback.Stats
			if plain {
				prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				stats, err = prompter.Run(ctx, session)
			} else {
				stats, err = tui.Run(ctx, session)
				printLine(cmd.OutOrStdout(), summary(stats))
			}

			slog.Info("Review finished",
				"total", stats.Total,
				"confirmed", stats.Confirmed,
				"corrected", stats.Corrected,
				"remaining", stats.Unreviewed+stats.Disputed)

			if interruptHandler.WasInterrupted() {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Use line prompts instead of the full-screen interface")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum transactions to review (default: review.limit)")

	return cmd
}

func summary(stats feedback.Stats) string {
	return cli.FormatInfo(fmt.Sprintf("Reviewed %d of %d: %d confirmed, %d corrected",
		stats.Confirmed+stats.Corrected, stats.Total, stats.Confirmed, stats.Corrected))
}
