package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"placereviews-parser/internal/app"
	"placereviews-parser/internal/config"
	"placereviews-parser/internal/fetcher"
	"placereviews-parser/internal/normalize"
	"placereviews-parser/internal/observability"
	"placereviews-parser/internal/storage"
	"placereviews-parser/internal/storage/mssql"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "placereviews",
	Short:         "Extract place reviews from a paginated review listing",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (defaults are used when empty)")
	rootCmd.AddCommand(fetchCmd, countCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(configPath)
}

type deps struct {
	cfg          *config.Config
	logger       *observability.Logger
	fetcher      fetcher.Fetcher
	repo         storage.Repository
	orchestrator *app.Orchestrator
}

// setup собирает зависимости; withStorage подключает MSSQL при storage.enabled
func setup(withStorage bool) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	scr, err := cfg.NewScraper()
	if err != nil {
		return nil, fmt.Errorf("failed to build scraper: %w", err)
	}

	var repo storage.Repository
	if withStorage {
		if !cfg.Storage.Enabled {
			return nil, fmt.Errorf("--store requires storage.enabled in config")
		}
		repo, err = mssql.NewRepository(cfg.Storage.DSN, cfg.GetCommandTimeout(), logger)
		if err != nil {
			return nil, err
		}
	}

	f := fetcher.New(cfg, logger)

	return &deps{
		cfg:          cfg,
		logger:       logger,
		fetcher:      f,
		repo:         repo,
		orchestrator: app.NewOrchestrator(logger, f, scr, normalize.NewNormalizer(cfg), repo),
	}, nil
}

func (d *deps) Close() {
	if err := d.fetcher.Close(); err != nil {
		d.logger.Warn("Failed to close fetcher", "error", err.Error())
	}
	if d.repo != nil {
		if err := d.repo.Close(); err != nil {
			d.logger.Warn("Failed to close repository", "error", err.Error())
		}
	}
	_ = d.logger.Sync()
}
