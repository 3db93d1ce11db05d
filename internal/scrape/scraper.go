package scrape

import (
	"context"
	"time"

	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/models"
)

// Getter retrieves a raw payload; satisfied by feed.Fetcher.
type Getter interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Scraper fetches and extracts HTML pages, sharing one per-host delay
// across every scrape call regardless of which worker issues it.
type Scraper struct {
	getter  Getter
	limiter *HostLimiter
}

func NewScraper(getter Getter, minDelay time.Duration) *Scraper {
	return &Scraper{
		getter:  getter,
		limiter: NewHostLimiter(minDelay),
	}
}

// ScrapeInjuries fetches src and extracts its injury table into news items.
func (s *Scraper) ScrapeInjuries(ctx context.Context, src models.SourceConfig) ([]models.NewsItem, error) {
	payload, err := s.get(ctx, src)
	if err != nil {
		return nil, err
	}
	return ExtractInjuries(src, payload)
}

// ScrapeDepthChart fetches src and extracts its depth chart tables.
func (s *Scraper) ScrapeDepthChart(ctx context.Context, src models.SourceConfig) (models.DepthChart, error) {
	payload, err := s.get(ctx, src)
	if err != nil {
		return nil, err
	}
	return ExtractDepthChart(src.Name, payload)
}

func (s *Scraper) get(ctx context.Context, src models.SourceConfig) ([]byte, error) {
	if err := s.limiter.Wait(ctx, src.URL); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", src.Name).
		Str("url", src.URL).
		Msg("Scraping page")

	return s.getter.Fetch(ctx, src.URL)
}
