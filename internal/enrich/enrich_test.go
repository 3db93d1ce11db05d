package enrich

import (
	"reflect"
	"testing"

	"github.com/gridironhq/sportwire/internal/models"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"J. Smith", "jsmith"},
		{"John Smith", "johnsmith"},
		{"JOHN SMITH", "johnsmith"},
		{"Smith Jr.", "smith"},
		{"John Smith Sr.", "johnsmith"},
		{"John Smith III", "johnsmith"},
		{"John Smith IV", "johnsmith"},
		{"O'Brien", "obrien"},
		{"  J.   Smith  ", "jsmith"},
		{"V", "v"}, // a bare suffix token is still a name
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTeam(t *testing.T) {
	if got := NormalizeTeam("  Ohio   State "); got != "ohio state" {
		t.Errorf("NormalizeTeam() = %q", got)
	}
}

func TestBuildIndexAndLookup(t *testing.T) {
	chart := models.DepthChart{
		"Ohio State": {
			"QB": {"J. Smith", "Backup Guy"},
			"RB": {"A. Runner"},
		},
	}

	idx := BuildIndex(chart)

	position, ok := idx.Lookup("Ohio State", "J. Smith")
	if !ok || position != "QB" {
		t.Errorf("Lookup(J. Smith) = %q, %v, want QB", position, ok)
	}

	// Name variants normalize to the same key.
	if position, ok := idx.Lookup("ohio state", "j smith jr."); !ok || position != "QB" {
		t.Errorf("Lookup(j smith jr.) = %q, %v, want QB", position, ok)
	}

	if _, ok := idx.Lookup("Ohio State", "Unknown Player"); ok {
		t.Error("Unknown player must not resolve")
	}
	if _, ok := idx.Lookup("Michigan", "J. Smith"); ok {
		t.Error("Same player on another team must not resolve")
	}
}

func TestBuildIndexAmbiguousNames(t *testing.T) {
	// Two different players with names normalizing to the same key at
	// different positions: neither may resolve.
	chart := models.DepthChart{
		"Ohio State": {
			"QB": {"J. Smith"},
			"WR": {"J. Smith Jr."},
		},
	}

	idx := BuildIndex(chart)
	if _, ok := idx.Lookup("Ohio State", "J. Smith"); ok {
		t.Error("Ambiguous name must never resolve")
	}
}

func TestEnrich(t *testing.T) {
	idx := BuildIndex(models.DepthChart{
		"Ohio State": {"QB": {"J. Smith"}},
	})

	items := []models.NewsItem{
		{Title: "QB out for season", Team: "Ohio State", Player: "J. Smith"},
		{Title: "No player attached", Team: "Ohio State"},
		{Title: "Already positioned", Team: "Ohio State", Player: "J. Smith", Position: "WR"},
		{Title: "Unknown team", Team: "Michigan", Player: "J. Smith"},
	}

	enriched := Enrich(items, idx)

	if enriched[0].Position != "QB" {
		t.Errorf("Position = %q, want QB", enriched[0].Position)
	}
	if enriched[1].Position != "" {
		t.Errorf("Item without a player got position %q", enriched[1].Position)
	}
	if enriched[2].Position != "WR" {
		t.Errorf("Existing position overwritten: %q", enriched[2].Position)
	}
	if enriched[3].Position != "" {
		t.Errorf("Unmatched item got position %q", enriched[3].Position)
	}

	// Input slice is untouched.
	if items[0].Position != "" {
		t.Errorf("Enrich mutated its input: %q", items[0].Position)
	}
}

func TestEnrichIdempotent(t *testing.T) {
	idx := BuildIndex(models.DepthChart{
		"Ohio State": {"QB": {"J. Smith"}},
	})

	items := []models.NewsItem{
		{Title: "QB out for season", Team: "Ohio State", Player: "J. Smith"},
	}

	once := Enrich(items, idx)
	twice := Enrich(once, idx)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Enrich is not idempotent: %v vs %v", once, twice)
	}
}

func TestEnrichNilIndex(t *testing.T) {
	items := []models.NewsItem{{Title: "A", Team: "Ohio State", Player: "J. Smith"}}

	enriched := Enrich(items, nil)
	if len(enriched) != 1 || enriched[0].Position != "" {
		t.Errorf("Nil index must pass items through, got %v", enriched)
	}
}
