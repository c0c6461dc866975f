package app

import (
	"context"
	"fmt"

	"ekantipur-scraper/internal/config"
	"ekantipur-scraper/internal/fetcher"
	"ekantipur-scraper/internal/observability"
	"ekantipur-scraper/internal/page"
	"ekantipur-scraper/internal/page/htmlpage"
	"ekantipur-scraper/internal/page/rodpage"
)

// NewSessionOpener picks the page driver named by cfg.Driver.
func NewSessionOpener(cfg *config.Config, logger *observability.Logger) (SessionOpener, error) {
	switch cfg.Driver {
	case config.DriverRod:
		return func(ctx context.Context) (page.Session, error) {
			s, err := rodpage.Launch(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		}, nil
	case config.DriverHTTP:
		f := fetcher.NewFetcher(cfg, logger)
		return func(context.Context) (page.Session, error) {
			return htmlpage.New(f), nil
		}, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
