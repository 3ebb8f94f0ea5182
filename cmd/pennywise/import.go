package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/ofx"
)

func (a *app) importCmd() *cobra.Command {
	var dryRun, verbose bool

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import spending from OFX/QFX files",
		Long: `Import debit transactions from OFX or QFX files exported from your bank.
Credits such as salary or refunds are skipped. Re-importing the same
file is safe: transactions already stored are ignored.`,
		Example: `  pennywise import ~/Downloads/dbs_mar_2024.ofx
  pennywise import ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandPatterns(args)
			if err != nil {
				return err
			}

			slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

			ctx := cmd.Context()
			txns := parseFiles(ctx, ofx.NewParser(a.cfg.Review.UserID), files)
			out := cmd.OutOrStdout()
			if len(txns) == 0 {
				printLine(out, cli.FormatWarning("No spending found in any file"))
				return nil
			}

			printSummary(out, txns, verbose)

			if dryRun {
				printLine(out, cli.FormatInfo("Dry run complete - no data saved"))
				return nil
			}

			store, err := a.initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			inserted, err := store.SaveTransactions(ctx, txns)
			if err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}
			printLine(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions, %d already stored",
				inserted, len(txns)-inserted)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every parsed transaction")

	return cmd
}

// expandPatterns resolves globs, keeping literal paths that exist.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// parseFiles parses every file, dropping transactions repeated across files.
// Unreadable files are logged and skipped.
func parseFiles(ctx context.Context, parser *ofx.Parser, files []string) []model.Transaction {
	var all []model.Transaction
	seen := make(map[string]bool)

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}

		txns, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, tx := range txns {
			if seen[tx.Hash] {
				continue
			}
			seen[tx.Hash] = true
			all = append(all, tx)
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"transactions_found", len(txns),
			"added", added,
			"duplicates", len(txns)-added)
	}
	return all
}

func printSummary(w io.Writer, txns []model.Transaction, verbose bool) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.Before(txns[j].Timestamp)
	})

	total := decimal.Zero
	accounts := make(map[string]int)
	for _, tx := range txns {
		total = total.Add(tx.Amount)
		accounts[tx.AccountID]++
	}

	oldest, newest := txns[0].Timestamp, txns[len(txns)-1].Timestamp
	printLine(w, fmt.Sprintf("%s %d transactions from %s to %s, %s total",
		cli.CoinIcon, len(txns),
		oldest.Format("2006-01-02"), newest.Format("2006-01-02"),
		cli.FormatAmount(total)))

	ids := make([]string, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		printLine(w, fmt.Sprintf("  - %s (%d transactions)", id, accounts[id]))
	}

	if !verbose {
		return
	}
	for _, tx := range txns {
		printLine(w, fmt.Sprintf("  %s  %-32s %10s",
			tx.Timestamp.Format("2006-01-02"), tx.Merchant, cli.FormatAmount(tx.Amount)))
	}
}
