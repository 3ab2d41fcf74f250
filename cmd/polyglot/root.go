package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/polyglot/internal/buildinfo"
	"github.com/dmitrijs2005/polyglot/internal/catalog"
	"github.com/dmitrijs2005/polyglot/internal/cli"
	"github.com/dmitrijs2005/polyglot/internal/config"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/repositories/repomanager"
	"github.com/dmitrijs2005/polyglot/internal/services"
	"github.com/dmitrijs2005/polyglot/internal/speech"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "polyglot",
		Short:         "Console language trainer",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
	}
	loader := config.NewLoader(rootCmd.PersistentFlags())

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runApp(cmd, loader)
	}
	rootCmd.AddCommand(newLanguagesCmd(loader))
	rootCmd.AddCommand(newMigrateCmd(loader))
	return rootCmd
}

func runApp(cmd *cobra.Command, loader *config.Loader) error {
	cfg, logger, closeLog, err := setup(loader, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	db, rm, err := repomanager.Open(ctx, cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error(ctx, "failed to close db", "err", cerr)
		}
	}()

	creds := services.NewCredentialService(db, rm, cfg.BcryptCost, logger)
	if err := creds.Init(ctx); err != nil {
		return fmt.Errorf("failed to prepare storage: %w", err)
	}

	out := cmd.OutOrStdout()
	app := cli.NewApp(cli.Options{
		Credentials:     creds,
		Progress:        services.NewProgressService(db, rm, logger),
		Catalog:         cat,
		Transcriber:     newTranscriber(ctx, cfg, out, logger),
		ListenTimeout:   cfg.ListenTimeout,
		PhraseTimeLimit: cfg.PhraseTimeLimit,
		In:              cmd.InOrStdin(),
		Out:             out,
		Logger:          logger,
	})
	return app.Run(ctx)
}

func newLanguagesCmd(loader *config.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages and lessons of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, closeLog, err := setup(loader, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, name := range cat.ListLanguages() {
				lang, err := cat.Language(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s (%s)\n", lang.Name, lang.Code)
				for _, l := range lang.Lessons {
					fmt.Fprintf(w, "  %s: %d questions\n", l.Name, len(l.Questions))
				}
			}
			return nil
		},
	}
}

func newMigrateCmd(loader *config.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the storage tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLog, err := setup(loader, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := cmd.Context()
			db, rm, err := repomanager.Open(ctx, cfg.StorageDriver, cfg.DatabaseDSN)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer db.Close()

			if err := rm.RunMigrations(ctx, db); err != nil {
				return err
			}
			logger.Info(ctx, "storage migrated", "driver", cfg.StorageDriver)
			fmt.Fprintln(cmd.OutOrStdout(), "Storage is up to date.")
			return nil
		},
	}
}

// setup resolves the configuration and builds the logger. The returned
// function closes the log file, if one was opened.
func setup(loader *config.Loader, stderr io.Writer) (*config.Config, logging.Logger, func(), error) {
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	w, closeLog := stderr, func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeLog = f, func() { _ = f.Close() }
	}

	logger, err := logging.New(w, cfg.LogLevel)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

func newTranscriber(ctx context.Context, cfg *config.Config, out io.Writer, logger logging.Logger) speech.Transcriber {
	if cfg.GeminiAPIKey == "" {
		logger.Warn(ctx, "no Gemini API key configured, voice answers will be empty", "env", config.EnvGeminiAPIKey)
		return speech.Unavailable{Out: out}
	}

	rec, err := speech.NewCommandRecorder(cfg.RecordCommand)
	if err != nil {
		logger.Warn(ctx, "invalid record command, voice answers will be empty", "err", err)
		return speech.Unavailable{Out: out}
	}
	tr, err := speech.NewGeminiTranscriber(ctx, cfg.GeminiAPIKey, cfg.SpeechModel, rec, out, logger)
	if err != nil {
		logger.Warn(ctx, "speech service unavailable, voice answers will be empty", "err", err)
		return speech.Unavailable{Out: out}
	}
	return tr
}
