package storage

import (
	"context"
	"time"

	"ekantipur-scraper/internal/scraper"
)

// Run is one completed scrape as mirrored into the archive.
type Run struct {
	StartedAt  time.Time
	FinishedAt time.Time
	OutputPath string
	CheckSum   string // SHA256 of the written JSON
	Bundle     *scraper.ResultBundle
}

// Archive keeps a history of runs next to the output file.
type Archive interface {
	// SaveRun stores the run with its articles and cartoon, returns the run id
	SaveRun(ctx context.Context, run *Run) (int64, error)

	Close() error
}
