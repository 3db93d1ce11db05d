package models

// NewsItem is the normalized record every source kind parses into.
// Items are value records; enrichment returns a copy with Position filled.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	Published   string `json:"published,omitempty"`
	Description string `json:"description,omitempty"`

	// Set by the injury scraper, consumed by enrichment.
	Team     string `json:"team,omitempty"`
	Player   string `json:"player,omitempty"`
	Status   string `json:"status,omitempty"`
	Position string `json:"position,omitempty"`
}
