package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
)

// addInput is a manually entered transaction before conversion.
type addInput struct {
	Merchant string `validate:"required,max=200"`
	Amount   string `validate:"required,numeric"`
	Date     string `validate:"omitempty,datetime=2006-01-02"`
	Account  string `validate:"max=64"`
}

func (in addInput) transaction(userID int, now time.Time) (model.Transaction, error) {
	in.Merchant = strings.TrimSpace(in.Merchant)
	if err := validator.New().Struct(in); err != nil {
		return model.Transaction{}, common.NewUserError("invalid transaction", err)
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return model.Transaction{}, common.NewUserError("invalid amount", err)
	}
	if !amount.IsPositive() {
		return model.Transaction{}, common.NewUserError("amount must be positive", nil)
	}

	at := now
	if in.Date != "" {
		at, err = time.ParseInLocation("2006-01-02", in.Date, now.Location())
		if err != nil {
			return model.Transaction{}, common.NewUserError("invalid date", err)
		}
	}

	txn := model.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: at,
		Merchant:  in.Merchant,
		Amount:    amount.Round(2),
		AccountID: in.Account,
	}
	// Repeating a purchase by hand records it again, so the dedup key is the
	// entry's own ID rather than its content.
	txn.Hash = txn.ID
	return txn, nil
}

func (a *app) addCmd() *cobra.Command {
	var in addInput

	cmd := &cobra.Command{
		Use:   "add <merchant> <amount>",
		Short: "Record a transaction by hand",
		Example: `  pennywise add "KOPITIAM" 4.50
  pennywise add "SHELL STATION" 62.10 --date 2024-03-02`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Merchant, in.Amount = args[0], args[1]
			txn, err := in.transaction(a.cfg.Review.UserID, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			inserted, err := store.SaveTransactions(ctx, []model.Transaction{txn})
			if err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
			if inserted == 0 {
				return common.NewUserError("transaction was not recorded", nil)
			}

			handle, err := a.loadHandle(ctx, store)
			if err != nil {
				return err
			}
			pred, err := handle.Classify(txn.Merchant)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printLine(out, cli.FormatSuccess(fmt.Sprintf("Added %s %s", txn.Merchant, cli.FormatAmount(txn.Amount))))
			printLine(out, cli.RenderPrediction(txn.Merchant, pred))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Date, "date", "", "Transaction date (YYYY-MM-DD, default: now)")
	cmd.Flags().StringVar(&in.Account, "account", "", "Account the transaction belongs to")

	return cmd
}
