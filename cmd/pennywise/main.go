package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/metrics"
)

var version = "dev"

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	metrics *metrics.PrometheusMetrics
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pennywise",
		Short: "🪙 Merchant categorization that learns from your corrections",
		Long: `pennywise classifies your spending into Transport, Food, Groceries,
Shopping, Bills and Entertainment with a Naive Bayes model, and retrains
itself every time you correct it.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.initConfig,
		PersistentPostRunE: a.flushMetrics,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/pennywise/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("db", "", "database path (default: "+config.DefaultDatabasePath+")")
	flags.Int("user", 1, "user whose transactions are used")

	// Bind flags to viper
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("database.path", flags.Lookup("db"))
	_ = a.v.BindPFlag("review.user_id", flags.Lookup("user"))

	rootCmd.AddCommand(
		a.classifyCmd(),
		a.reviewCmd(),
		a.addCmd(),
		a.importCmd(),
		a.breakdownCmd(),
		a.corpusCmd(),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, common.UserMessage(err))
		slog.Debug("Command failed", "error", err)
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		a.v.AddConfigPath(fmt.Sprintf("%s/.config/pennywise", home))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("PENNYWISE")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return common.NewUserError("invalid configuration", err)
	}
	a.cfg = cfg

	level, err := common.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if err := common.SetupLoggerTo(cmd.ErrOrStderr(), level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

// flushMetrics writes the metrics of this run for node_exporter's textfile
// collector when a path is configured.
func (a *app) flushMetrics(_ *cobra.Command, _ []string) error {
	if a.metrics == nil || a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		slog.Warn("Failed to write metrics textfile",
			"path", a.cfg.Metrics.Textfile,
			"error", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pennywise %s\n", version)
			return err
		},
	}
}

func printLine(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
