package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"ekantipur-scraper/internal/observability"
	"ekantipur-scraper/internal/page"
	"ekantipur-scraper/internal/scraper"
	"ekantipur-scraper/internal/storage"
	"ekantipur-scraper/internal/storage/jsonfile"
)

// SessionOpener starts the page session for one run.
type SessionOpener func(ctx context.Context) (page.Session, error)

// Orchestrator runs one scrape end to end.
type Orchestrator struct {
	logger  *observability.Logger
	open    SessionOpener
	scraper *scraper.Scraper
	writer  *jsonfile.Writer
	archive storage.Archive
	out     io.Writer
}

// NewOrchestrator wires a run. archive may be nil.
func NewOrchestrator(
	logger *observability.Logger,
	open SessionOpener,
	s *scraper.Scraper,
	w *jsonfile.Writer,
	archive storage.Archive,
	out io.Writer,
) *Orchestrator {
	return &Orchestrator{
		logger:  logger.With("component", "orchestrator"),
		open:    open,
		scraper: s,
		writer:  w,
		archive: archive,
		out:     out,
	}
}

type RunStats struct {
	Articles   int
	HasCartoon bool
	OutputPath string
	CheckSum   string
	RunUID     int64
	Duration   time.Duration
}

// Run scrapes both pages, writes the output file and prints the summary line.
// Nothing is written when scraping fails.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	startedAt := time.Now().UTC()

	// 1. Scrape both pages inside one browser session
	bundle, err := o.collect(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Replace the output file
	result, err := o.writer.Write(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	finishedAt := time.Now().UTC()

	stats := &RunStats{
		Articles:   len(bundle.EntertainmentNews),
		HasCartoon: bundle.CartoonOfTheDay != nil,
		OutputPath: result.Path,
		CheckSum:   result.CheckSum,
		Duration:   finishedAt.Sub(startedAt),
	}

	// 3. Mirror into the archive; the file is already written, so failures only get logged
	if o.archive != nil {
		runUID, err := o.archive.SaveRun(ctx, &storage.Run{
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
			OutputPath: result.Path,
			CheckSum:   result.CheckSum,
			Bundle:     bundle,
		})
		if err != nil {
			o.logger.Error("Failed to archive run",
				"output", result.Path,
				"error", err.Error(),
			)
		} else {
			stats.RunUID = runUID
		}
	}

	o.logger.Info("Run completed",
		"articles", stats.Articles,
		"cartoon", stats.HasCartoon,
		"output", stats.OutputPath,
		"bytes", result.Bytes,
		"checksum", stats.CheckSum,
		"duration", stats.Duration.String(),
	)

	// 4. Summary line
	fmt.Fprintf(o.out, "Saved %d articles and cartoon to %s\n", stats.Articles, stats.OutputPath)

	return stats, nil
}

// collect holds the page session for exactly the duration of both extractors.
func (o *Orchestrator) collect(ctx context.Context) (*scraper.ResultBundle, error) {
	session, err := o.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open page session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			o.logger.Error("Failed to close page session", "error", err.Error())
		}
	}()

	news, err := o.scraper.ScrapeEntertainment(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("entertainment: %w", err)
	}
	o.logger.Info("Entertainment scraped", "articles", len(news))

	cartoon, err := o.scraper.ScrapeCartoon(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("cartoon: %w", err)
	}
	o.logger.Info("Cartoon scraped", "found", cartoon != nil)

	return scraper.NewResultBundle(news, cartoon), nil
}
