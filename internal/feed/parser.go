package feed

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/gridironhq/sportwire/internal/models"
	"github.com/gridironhq/sportwire/internal/utils"
	"github.com/mmcdole/gofeed"
)

// Parser converts raw RSS 2.0 or Atom XML into normalized news items.
type Parser struct {
	fp           *gofeed.Parser
	htmlTagRegex *regexp.Regexp
	maxItems     int
}

// NewParser returns a parser that truncates each feed to maxItems entries.
// maxItems <= 0 disables the cap.
func NewParser(maxItems int) *Parser {
	return &Parser{
		fp:           gofeed.NewParser(),
		htmlTagRegex: regexp.MustCompile(`<[^>]*>`),
		maxItems:     maxItems,
	}
}

// Parse decodes the payload for sourceName into items in document order.
// Malformed XML or an unrecognized root element yields a *models.ParseError;
// an entry with neither title nor link is not a real item and is dropped.
func (p *Parser) Parse(sourceName string, payload []byte) ([]models.NewsItem, error) {
	if gofeed.DetectFeedType(bytes.NewReader(payload)) == gofeed.FeedTypeUnknown {
		return nil, &models.ParseError{
			Source: sourceName,
			Reason: "payload is neither an RSS nor an Atom document",
		}
	}

	parsed, err := p.fp.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, &models.ParseError{
			Source: sourceName,
			Reason: "malformed feed XML",
			Err:    err,
		}
	}

	items := make([]models.NewsItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if p.maxItems > 0 && len(items) >= p.maxItems {
			break
		}

		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" && link == "" {
			continue
		}

		items = append(items, models.NewsItem{
			ID:          utils.ItemID(strings.TrimSpace(entry.GUID), link, title),
			Title:       title,
			Link:        link,
			Source:      sourceName,
			Published:   strings.TrimSpace(entry.Published),
			Description: p.CleanHTML(entry.Description),
		})
	}

	return items, nil
}

// CleanHTML removes HTML tags and normalizes whitespace
func (p *Parser) CleanHTML(input string) string {
	cleaned := p.htmlTagRegex.ReplaceAllString(input, " ")
	cleaned = html.UnescapeString(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.TrimSpace(cleaned)
}
