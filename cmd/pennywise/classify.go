package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/model"
)

func (a *app) classifyCmd() *cobra.Command {
	var (
		month  string
		stored bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "classify [merchant text]",
		Short: "Predict the category of a merchant",
		Long: `Predict the spending category of merchant text, or of stored transactions.

With arguments, the arguments are joined and classified as one merchant.
With --stored, the most recent stored transactions are classified; add
--month to classify one calendar month instead.`,
		Example: `  pennywise classify "GRAB *RIDE 1234"
  pennywise classify --stored --limit 50
  pennywise classify --stored --month 2024-03`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !stored {
				return fmt.Errorf("provide merchant text or --stored")
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

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				text := strings.Join(args, " ")
				pred, err := handle.Classify(text)
				if err != nil {
					return err
				}
				printLine(out, cli.RenderPrediction(text, pred))
				return nil
			}

			var txns []model.Transaction
			if month != "" {
				year, m, err := parseMonth(month, time.Now())
				if err != nil {
					return err
				}
				txns, err = store.GetTransactionsByMonth(ctx, a.cfg.Review.UserID, year, m, time.Local)
				if err != nil {
					return err
				}
			} else {
				txns, err = store.GetRecentTransactions(ctx, a.cfg.Review.UserID, limit)
				if err != nil {
					return err
				}
			}

			if len(txns) == 0 {
				printLine(out, cli.FormatWarning("No stored transactions to classify"))
				return nil
			}

			results, err := cli.ClassifyAll(ctx, cmd.ErrOrStderr(), handle, txns)
			if err != nil {
				return err
			}
			printLine(out, cli.RenderResults(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stored, "stored", false, "Classify stored transactions")
	cmd.Flags().StringVar(&month, "month", "", "Month to classify (YYYY-MM), with --stored")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of recent transactions, with --stored")

	return cmd
}
