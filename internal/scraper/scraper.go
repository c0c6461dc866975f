package scraper

import (
	"context"
	"fmt"
	"time"

	"ekantipur-scraper/internal/config"
	"ekantipur-scraper/internal/normalize"
	"ekantipur-scraper/internal/observability"
	"ekantipur-scraper/internal/page"
)

// Scraper reads the entertainment listing and the cartoon page through a
// page.Driver. Selectors, URLs and limits are fixed at construction.
type Scraper struct {
	selectors        config.Selectors
	entertainmentURL string
	cartoonURL       string
	articleLimit     int
	categoryLabel    string
	waitTimeout      time.Duration
	normalizer       *normalize.Normalizer
	logger           *observability.Logger
}

func NewScraper(cfg *config.Config, logger *observability.Logger) *Scraper {
	return &Scraper{
		selectors:        cfg.Selectors,
		entertainmentURL: cfg.EntertainmentURL(),
		cartoonURL:       cfg.CartoonURL(),
		articleLimit:     cfg.Site.ArticleLimit,
		categoryLabel:    cfg.Site.CategoryLabel,
		waitTimeout:      cfg.GetWaitTimeout(),
		normalizer:       normalize.NewNormalizer(cfg.Normalize),
		logger:           logger.With("component", "scraper"),
	}
}

// ScrapeEntertainment maps the first articleLimit listing cards, in document
// order, to records. Cards with no readable fields are kept.
func (s *Scraper) ScrapeEntertainment(ctx context.Context, d page.Driver) ([]ArticleRecord, error) {
	if err := d.Navigate(ctx, s.entertainmentURL, page.DOMContentLoaded); err != nil {
		return nil, err
	}

	cards, err := d.QueryAll(s.selectors.Card)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	s.logger.Debug("Listing cards found",
		"url", s.entertainmentURL,
		"cards", len(cards),
		"limit", s.articleLimit,
	)

	// only the first cards, in page order
	if len(cards) > s.articleLimit {
		cards = cards[:s.articleLimit]
	}

	// every field is optional; a card with none of them is still a record
	records := make([]ArticleRecord, 0, len(cards))
	for _, card := range cards {
		records = append(records, ArticleRecord{
			Title:    s.text(find(card, s.selectors.CardTitle)),
			ImageURL: attr(find(card, s.selectors.CardImage), "src"),
			Category: s.categoryLabel,
			Author:   s.text(find(card, s.selectors.CardAuthor)),
		})
	}

	return records, nil
}

// ScrapeCartoon waits for the client-rendered cartoon image and reads it.
// A missing section yields (nil, nil); a wait timeout is returned as an error.
func (s *Scraper) ScrapeCartoon(ctx context.Context, d page.Driver) (*CartoonRecord, error) {
	if err := d.Navigate(ctx, s.cartoonURL, page.DOMContentLoaded); err != nil {
		return nil, err
	}

	if _, err := d.WaitFor(ctx, s.selectors.CartoonReady, s.waitTimeout); err != nil {
		return nil, fmt.Errorf("cartoon image did not render: %w", err)
	}

	section, err := d.QueryOne(s.selectors.CartoonRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to locate cartoon section: %w", err)
	}
	if section == nil {
		s.logger.Warn("Cartoon section not found", "url", s.cartoonURL)
		return nil, nil
	}

	img := find(section, s.selectors.CartoonImage)

	// src is usually a thumbnail proxy pointing at the real image
	var imageURL *string
	if thumbnail := attr(img, "src"); thumbnail != nil {
		direct := normalize.DirectImageURL(*thumbnail)
		imageURL = &direct
	}

	return &CartoonRecord{
		Title:    attr(img, "alt"),
		ImageURL: imageURL,
		Author:   s.text(find(section, s.selectors.CartoonAuthor)),
	}, nil
}
