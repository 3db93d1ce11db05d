package scrape

import (
	"errors"
	"testing"

	"github.com/gridironhq/sportwire/internal/models"
)

var injurySrc = models.SourceConfig{
	URL:  "https://example.com/injuries",
	Name: "Injury Report",
	Kind: models.KindScrapeInjury,
}

const injuryPage = `<html><body>
<table>
  <tr><th>Team</th><th>Player</th><th>Status</th><th>Date</th><th>Notes</th></tr>
  <tr>
    <td>Ohio State</td>
    <td>  J.   Smith </td>
    <td>Out</td>
    <td>2026-08-28</td>
    <td>Knee &amp; ankle</td>
  </tr>
  <tr>
    <td>Michigan</td>
    <td>B. Jones</td>
    <td>Questionable</td>
    <td>2026-08-27</td>
  </tr>
</table>
</body></html>`

func TestExtractInjuries(t *testing.T) {
	items, err := ExtractInjuries(injurySrc, []byte(injuryPage))
	if err != nil {
		t.Fatalf("ExtractInjuries() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Team != "Ohio State" {
		t.Errorf("Team = %q, want Ohio State", first.Team)
	}
	if first.Player != "J. Smith" {
		t.Errorf("Player = %q, want whitespace-collapsed %q", first.Player, "J. Smith")
	}
	if first.Status != "Out" {
		t.Errorf("Status = %q, want Out", first.Status)
	}
	if first.Title != "J. Smith - Out" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Description != "Knee & ankle" {
		t.Errorf("Description = %q, entities should be decoded", first.Description)
	}
	if first.ID == "" {
		t.Error("Expected derived item ID")
	}

	// Row without a notes column gets a synthesized description.
	second := items[1]
	if second.Description != "B. Jones (Michigan) - Questionable" {
		t.Errorf("Description = %q", second.Description)
	}
}

func TestExtractInjuriesNoTable(t *testing.T) {
	page := `<html><body><p>Nothing to see here.</p></body></html>`

	_, err := ExtractInjuries(injurySrc, []byte(page))
	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *models.ParseError, got %v", err)
	}
	if parseErr.Source != "Injury Report" {
		t.Errorf("ParseError names source %q", parseErr.Source)
	}
}

func TestExtractInjuriesLayoutDrift(t *testing.T) {
	// Rows exist but carry too few columns: the site's layout changed.
	page := `<html><body><table>
	  <tr><td>Ohio State</td><td>J. Smith</td></tr>
	  <tr><td>Michigan</td><td>B. Jones</td></tr>
	</table></body></html>`

	_, err := ExtractInjuries(injurySrc, []byte(page))
	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *models.ParseError, got %v", err)
	}
}

func TestExtractInjuriesEmptyTable(t *testing.T) {
	// A table with only a header row is a valid, empty report.
	page := `<html><body><table>
	  <tr><th>Team</th><th>Player</th><th>Status</th><th>Date</th></tr>
	</table></body></html>`

	items, err := ExtractInjuries(injurySrc, []byte(page))
	if err != nil {
		t.Fatalf("ExtractInjuries() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
}
