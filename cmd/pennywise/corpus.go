package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/model"
)

func (a *app) corpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Show what the classifier was trained on",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			m := handle.Current().Model()
			counts := m.ClassCounts()
			words := m.TotalWords()

			content := fmt.Sprintf("Examples:   %d\nVocabulary: %d\n\n", m.TotalDocuments(), m.VocabularySize())
			for _, c := range model.Categories() {
				content += fmt.Sprintf("%-14s %4d examples %5d tokens\n", c, counts[c], words[c])
			}
			printLine(cmd.OutOrStdout(), cli.RenderBox(cli.ChartIcon+" Training Corpus", content))
			return nil
		},
	}

	cmd.AddCommand(a.correctionsCmd())
	return cmd
}

func (a *app) correctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corrections",
		Short: "List stored corrections in the order they are replayed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			corrections, err := store.GetCorrections(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(corrections) == 0 {
				printLine(out, cli.FormatInfo("No corrections yet"))
				return nil
			}
			for _, c := range corrections {
				printLine(out, fmt.Sprintf("%4d  %s  %-32s -> %s",
					c.ID, c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Example.Text, c.Example.Category))
			}
			return nil
		},
	}
}
