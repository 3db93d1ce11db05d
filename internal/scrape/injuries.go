package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gridironhq/sportwire/internal/models"
	"github.com/gridironhq/sportwire/internal/utils"
)

// Injury table column order is a contract with the source site:
// team, player, status, date, then an optional description column.
const (
	colTeam = iota
	colPlayer
	colStatus
	colDate
	colDescription

	injuryMinColumns = 4
)

// ExtractInjuries parses the injury report table in payload into normalized
// news items. A page without a recognizable table, or one whose rows no
// longer carry the expected columns, is a *models.ParseError so callers can
// detect source-format drift instead of seeing a silent empty result.
func ExtractInjuries(src models.SourceConfig, payload []byte) ([]models.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, &models.ParseError{Source: src.Name, Reason: "malformed HTML", Err: err}
	}

	if doc.Find("table").Length() == 0 {
		return nil, &models.ParseError{
			Source: src.Name,
			Reason: "no injury table found; source markup may have changed",
		}
	}

	var items []models.NewsItem
	dataRows := 0

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return // header row
		}
		dataRows++
		if cells.Length() < injuryMinColumns {
			return
		}

		team := cleanText(cells.Eq(colTeam).Text())
		player := cleanText(cells.Eq(colPlayer).Text())
		status := cleanText(cells.Eq(colStatus).Text())
		date := cleanText(cells.Eq(colDate).Text())
		if player == "" {
			return
		}

		description := ""
		if cells.Length() > colDescription {
			description = cleanText(cells.Eq(colDescription).Text())
		}
		if description == "" {
			description = fmt.Sprintf("%s (%s) - %s", player, team, status)
		}

		title := fmt.Sprintf("%s - %s", player, status)
		items = append(items, models.NewsItem{
			ID:          utils.ItemID("", src.URL, title),
			Title:       title,
			Link:        src.URL,
			Source:      src.Name,
			Published:   date,
			Description: description,
			Team:        team,
			Player:      player,
			Status:      status,
		})
	})

	if dataRows > 0 && len(items) == 0 {
		return nil, &models.ParseError{
			Source: src.Name,
			Reason: "injury rows did not match the expected column layout",
		}
	}

	return items, nil
}

// cleanText trims, entity-decodes and collapses whitespace in extracted
// cell text. goquery already decodes entities when building the document.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
