package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gridironhq/sportwire/internal/config"
	"github.com/gridironhq/sportwire/internal/enrich"
	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/models"
)

// ErrNoSourcesEnabled is the one fatal pipeline condition: nothing to fetch.
var ErrNoSourcesEnabled = errors.New("no sources enabled")

// Getter retrieves a raw payload; satisfied by Fetcher.
type Getter interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// PageScraper extracts items and depth charts from scraped pages;
// satisfied by scrape.Scraper.
type PageScraper interface {
	ScrapeInjuries(ctx context.Context, src models.SourceConfig) ([]models.NewsItem, error)
	ScrapeDepthChart(ctx context.Context, src models.SourceConfig) (models.DepthChart, error)
}

// cacheEntry is the per-source state. Owned exclusively by the Scheduler
// and only mutated under its mutex after a fetch attempt completes.
type cacheEntry struct {
	lastFetch time.Time
	items     []models.NewsItem
	chart     models.DepthChart
	failures  int
	fetching  bool
}

// Scheduler tracks per-source cache state and decides when a source is due
// for refresh based on its priority-derived interval. Parsers and
// extractors stay pure; all cache mutation happens here.
type Scheduler struct {
	cfg     *config.Config
	fetcher Getter
	parser  *Parser
	scraper PageScraper
	sources []models.SourceConfig

	mu    sync.Mutex
	cache map[string]*cacheEntry
	now   func() time.Time
}

func NewScheduler(cfg *config.Config, fetcher Getter, scraper PageScraper, sources []models.SourceConfig) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  NewParser(cfg.MaxItemsPerFeed),
		scraper: scraper,
		sources: sources,
		cache:   make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// GetItems returns the current items for one source, refreshing its cache
// first if the entry is stale. On a failed refresh the last good cache is
// served; the result is only empty when no successful fetch has happened.
func (s *Scheduler) GetItems(ctx context.Context, src models.SourceConfig) []models.NewsItem {
	entry := s.refresh(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.NewsItem, len(entry.items))
	copy(items, entry.items)
	return items
}

// GetDepthChart returns the cached depth chart for a scrape-depthchart
// source, refreshing first when stale.
func (s *Scheduler) GetDepthChart(ctx context.Context, src models.SourceConfig) models.DepthChart {
	entry := s.refresh(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()
	return entry.chart
}

// GetAllFeeds aggregates every enabled source in configured list order,
// builds the depth-chart index from chart sources, and returns the
// deduplicated, enriched item list. Sources are fetched by bounded parallel
// workers; refresh decisions stay independent per source and the output
// order is still the configured order.
func (s *Scheduler) GetAllFeeds(ctx context.Context) ([]models.NewsItem, error) {
	enabled := config.EnabledSources(s.sources)
	if len(enabled) == 0 {
		return nil, ErrNoSourcesEnabled
	}

	start := s.now()
	logger.Info().
		Int("sources", len(enabled)).
		Msg("Starting aggregation run")

	type sourceResult struct {
		items []models.NewsItem
		chart models.DepthChart
	}

	results := make([]sourceResult, len(enabled))
	semaphore := make(chan struct{}, s.concurrency())
	var wg sync.WaitGroup

	for i, src := range enabled {
		// Cancellation wins even when a worker slot is free; workers
		// already launched are drained before returning.
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, src models.SourceConfig) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if src.Kind == models.KindScrapeDepthChart {
				results[i].chart = s.GetDepthChart(ctx, src)
			} else {
				results[i].items = s.GetItems(ctx, src)
			}
		}(i, src)
	}
	wg.Wait()

	chart := models.DepthChart{}
	var all []models.NewsItem
	seen := make(map[string]bool)

	for _, res := range results {
		if res.chart != nil {
			chart.Merge(res.chart)
		}
		for _, item := range res.items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			all = append(all, item)
		}
	}

	enriched := enrich.Enrich(all, enrich.BuildIndex(chart))

	logger.Info().
		Int("items", len(enriched)).
		Int("depth_chart_rows", chart.Rows()).
		Dur("duration", s.now().Sub(start)).
		Msg("Finished aggregation run")

	return enriched, nil
}

// Status reports the cache view of every configured source.
func (s *Scheduler) Status() []models.SourceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]models.SourceStatus, 0, len(s.sources))
	for _, src := range s.sources {
		status := models.SourceStatus{
			Name:    src.Name,
			URL:     src.URL,
			Kind:    src.Kind,
			Enabled: src.Enabled,
			State:   models.StateStale,
		}

		if entry, ok := s.cache[src.URL]; ok {
			status.LastFetch = entry.lastFetch
			status.FailureCount = entry.failures
			status.CachedItems = len(entry.items)
			if entry.chart != nil {
				status.CachedItems = entry.chart.Rows()
			}
			switch {
			case entry.fetching:
				status.State = models.StateFetching
			case !s.stale(entry, src):
				status.State = models.StateFresh
			}
		}

		statuses = append(statuses, status)
	}
	return statuses
}

// refresh runs the per-source state machine: Stale entries move through
// Fetching and back to Fresh on success, or stay Stale with an incremented
// failure count. Fresh entries are returned without a network call.
func (s *Scheduler) refresh(ctx context.Context, src models.SourceConfig) *cacheEntry {
	s.mu.Lock()
	entry, ok := s.cache[src.URL]
	if !ok {
		entry = &cacheEntry{}
		s.cache[src.URL] = entry
	}
	if !s.stale(entry, src) || entry.fetching {
		s.mu.Unlock()
		return entry
	}
	entry.fetching = true
	s.mu.Unlock()

	items, chart, err := s.fetchSource(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()
	entry.fetching = false

	if err != nil {
		entry.failures++
		logger.Warn().
			Err(err).
			Str("source", src.Name).
			Int("consecutive_failures", entry.failures).
			Int("cached_items", len(entry.items)).
			Msg("Source refresh failed, serving cached items")

		// A parse failure means the payload itself is bad; re-fetching
		// before the next interval would just re-parse the same document.
		var parseErr *models.ParseError
		if errors.As(err, &parseErr) {
			entry.lastFetch = s.now()
		}
		return entry
	}

	entry.lastFetch = s.now()
	entry.failures = 0
	entry.items = items
	entry.chart = chart

	logger.Info().
		Str("source", src.Name).
		Int("items", len(items)).
		Msg("Source refreshed")
	return entry
}

// fetchSource dispatches on the source kind to the matching transport and
// parser pair.
func (s *Scheduler) fetchSource(ctx context.Context, src models.SourceConfig) ([]models.NewsItem, models.DepthChart, error) {
	switch src.Kind {
	case models.KindRSS, models.KindAtom:
		payload, err := s.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			return nil, nil, err
		}
		items, err := s.parser.Parse(src.Name, payload)
		return items, nil, err
	case models.KindScrapeInjury:
		items, err := s.scraper.ScrapeInjuries(ctx, src)
		return items, nil, err
	case models.KindScrapeDepthChart:
		chart, err := s.scraper.ScrapeDepthChart(ctx, src)
		return nil, chart, err
	default:
		return nil, nil, &models.ParseError{Source: src.Name, Reason: "unknown source kind " + string(src.Kind)}
	}
}

func (s *Scheduler) stale(entry *cacheEntry, src models.SourceConfig) bool {
	if entry.lastFetch.IsZero() {
		return true
	}
	interval := s.cfg.RefreshInterval(string(src.Priority))
	return s.now().Sub(entry.lastFetch) >= interval
}

func (s *Scheduler) concurrency() int {
	if s.cfg.MaxConcurrency > 0 {
		return s.cfg.MaxConcurrency
	}
	return 1
}
