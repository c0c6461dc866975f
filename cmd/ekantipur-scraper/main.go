package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"ekantipur-scraper/internal/app"
	"ekantipur-scraper/internal/config"
	"ekantipur-scraper/internal/observability"
	"ekantipur-scraper/internal/scraper"
	"ekantipur-scraper/internal/storage"
	"ekantipur-scraper/internal/storage/jsonfile"
	"ekantipur-scraper/internal/storage/mssql"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to config.yaml")
	headless := flag.Bool("headless", false, "run the browser without a window")
	output := flag.String("output", "", "output file (overrides output.path)")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// explicit flags win over file and env
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Rod.Headless = *headless
		case "output":
			cfg.Output.Path = *output
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	logger, err := observability.NewLogger(observability.Options{
		LogPath:    cfg.Observability.LogPath,
		LogLevel:   cfg.Observability.LogLevel,
		MaxSizeMB:  cfg.Observability.LogMaxSizeMB,
		MaxBackups: cfg.Observability.LogMaxBackups,
	})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Run failed", "error", err.Error())
		_ = logger.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	_ = logger.Close()
}

func run(cfg *config.Config, logger *observability.Logger) error {
	ctx, cancel := app.GracefulShutdown(context.Background(), logger)
	defer cancel()

	open, err := app.NewSessionOpener(cfg, logger)
	if err != nil {
		return err
	}

	var archive storage.Archive
	if cfg.Storage.Enabled {
		repo, err := mssql.NewRepository(ctx, cfg.Storage.DSN, cfg.GetCommandTimeout(), logger)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("Failed to close archive", "error", err.Error())
			}
		}()
		archive = repo
	}

	logger.Info("Starting scrape",
		"driver", cfg.Driver,
		"headless", cfg.Rod.Headless,
		"entertainment_url", cfg.EntertainmentURL(),
		"cartoon_url", cfg.CartoonURL(),
		"article_limit", cfg.Site.ArticleLimit,
		"output", cfg.Output.Path,
	)

	orch := app.NewOrchestrator(
		logger,
		open,
		scraper.NewScraper(cfg, logger),
		jsonfile.NewWriter(cfg.Output.Path),
		archive,
		os.Stdout,
	)

	_, err = orch.Run(ctx)
	return err
}
