package scrape

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/gridironhq/sportwire/internal/models"
)

// ExtractDepthChart parses per-team depth chart tables. Each table is one
// team (named by its caption, or the nearest preceding h2/h3); each row is
// one position followed by that position's players in depth order, so the
// first player listed is the starter.
func ExtractDepthChart(sourceName string, payload []byte) (models.DepthChart, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, &models.ParseError{Source: sourceName, Reason: "malformed HTML", Err: err}
	}

	chart := models.DepthChart{}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		team := cleanText(table.Find("caption").First().Text())
		if team == "" {
			team = cleanText(table.PrevAllFiltered("h2, h3").First().Text())
		}
		if team == "" {
			return
		}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			position := cleanText(cells.Eq(0).Text())
			if position == "" {
				return
			}

			var players []string
			cells.Slice(1, cells.Length()).Each(func(_ int, cell *goquery.Selection) {
				if name := cleanText(cell.Text()); name != "" {
					players = append(players, name)
				}
			})
			if len(players) == 0 {
				return
			}

			if chart[team] == nil {
				chart[team] = make(map[string][]string)
			}
			chart[team][position] = append(chart[team][position], players...)
		})
	})

	if len(chart) == 0 {
		return nil, &models.ParseError{
			Source: sourceName,
			Reason: "no depth chart tables found; source markup may have changed",
		}
	}

	return chart, nil
}
