package scrape

import (
	"errors"
	"testing"

	"github.com/gridironhq/sportwire/internal/models"
)

const depthChartPage = `<html><body>
<table>
  <caption>Ohio State</caption>
  <tr><td>QB</td><td>J. Smith</td><td>Backup Guy</td></tr>
  <tr><td>RB</td><td>A. Runner</td></tr>
</table>
<h2>Michigan</h2>
<table>
  <tr><td>QB</td><td>C. Passer</td></tr>
</table>
</body></html>`

func TestExtractDepthChart(t *testing.T) {
	chart, err := ExtractDepthChart("Depth Charts", []byte(depthChartPage))
	if err != nil {
		t.Fatalf("ExtractDepthChart() error = %v", err)
	}

	if len(chart) != 2 {
		t.Fatalf("Expected 2 teams, got %d", len(chart))
	}

	qbs := chart["Ohio State"]["QB"]
	if len(qbs) != 2 {
		t.Fatalf("Expected 2 QBs for Ohio State, got %v", qbs)
	}
	if qbs[0] != "J. Smith" {
		t.Errorf("Starter = %q, first listed player must come first", qbs[0])
	}
	if qbs[1] != "Backup Guy" {
		t.Errorf("Backup = %q", qbs[1])
	}

	if got := chart["Ohio State"]["RB"]; len(got) != 1 || got[0] != "A. Runner" {
		t.Errorf("RB row = %v", got)
	}

	// Team name falls back to the preceding heading when there is no caption.
	if got := chart["Michigan"]["QB"]; len(got) != 1 || got[0] != "C. Passer" {
		t.Errorf("Michigan QB row = %v", got)
	}
}

func TestExtractDepthChartNoTables(t *testing.T) {
	page := `<html><body><p>Check back later.</p></body></html>`

	_, err := ExtractDepthChart("Depth Charts", []byte(page))
	var parseErr *models.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *models.ParseError, got %v", err)
	}
	if parseErr.Source != "Depth Charts" {
		t.Errorf("ParseError names source %q", parseErr.Source)
	}
}

func TestExtractDepthChartUnnamedTableSkipped(t *testing.T) {
	page := `<html><body>
	<table><tr><td>QB</td><td>Nobody Knows</td></tr></table>
	<table>
	  <caption>Ohio State</caption>
	  <tr><td>QB</td><td>J. Smith</td></tr>
	</table>
	</body></html>`

	chart, err := ExtractDepthChart("Depth Charts", []byte(page))
	if err != nil {
		t.Fatalf("ExtractDepthChart() error = %v", err)
	}
	if len(chart) != 1 {
		t.Errorf("Table without a team name must be skipped, got %d teams", len(chart))
	}
}
