package models

import "time"

// SourceKind selects the parser applied to a source's raw payload.
type SourceKind string

const (
	KindRSS              SourceKind = "rss"
	KindAtom             SourceKind = "atom"
	KindScrapeInjury     SourceKind = "scrape-injury"
	KindScrapeDepthChart SourceKind = "scrape-depthchart"
)

// IsScrape reports whether the source is fetched through the rate-limited
// scraping path rather than the feed path.
func (k SourceKind) IsScrape() bool {
	return k == KindScrapeInjury || k == KindScrapeDepthChart
}

// Priority controls how often a source is considered stale.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// SourceConfig identifies one feed or scrape target. Immutable once loaded.
type SourceConfig struct {
	URL      string     `json:"url" validate:"required,url"`
	Name     string     `json:"name" validate:"required"`
	Kind     SourceKind `json:"kind" validate:"required,oneof=rss atom scrape-injury scrape-depthchart"`
	Enabled  bool       `json:"enabled"`
	Priority Priority   `json:"priority" validate:"omitempty,oneof=high normal low"`
}

// SourceState describes where a source sits in its refresh cycle.
type SourceState string

const (
	StateFresh    SourceState = "fresh"
	StateStale    SourceState = "stale"
	StateFetching SourceState = "fetching"
)

// SourceStatus is the per-source view returned by the scheduler's status
// query, consumed by the API and operational logging.
type SourceStatus struct {
	Name         string      `json:"name"`
	URL          string      `json:"url"`
	Kind         SourceKind  `json:"kind"`
	Enabled      bool        `json:"enabled"`
	State        SourceState `json:"state"`
	CachedItems  int         `json:"cached_items"`
	LastFetch    time.Time   `json:"last_fetch"`
	FailureCount int         `json:"failure_count"`
}
