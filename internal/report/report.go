package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/models"
)

// Metadata describes one aggregation run and heads every report.
type Metadata struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	TotalItems  int       `json:"total_items"`
	SourceCount int       `json:"source_count"`
}

// NewMetadata stamps a fresh run ID for a finished aggregation.
func NewMetadata(totalItems, sourceCount int) Metadata {
	return Metadata{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		TotalItems:  totalItems,
		SourceCount: sourceCount,
	}
}

// Generator writes Markdown and CSV reports into the output directory.
type Generator struct {
	outputDir string
	prefix    string
}

func NewGenerator(outputDir, prefix string) (*Generator, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Generator{outputDir: outputDir, prefix: prefix}, nil
}

// WriteMarkdown renders the item list as a Markdown report and returns the
// file path.
func (g *Generator) WriteMarkdown(items []models.NewsItem, meta Metadata) (string, error) {
	var b strings.Builder

	b.WriteString("# News Aggregator Report\n\n")
	b.WriteString("## Report Information\n\n")
	fmt.Fprintf(&b, "- **Run ID:** %s\n", meta.RunID)
	fmt.Fprintf(&b, "- **Generated:** %s\n", meta.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Total Items:** %d\n", meta.TotalItems)
	fmt.Fprintf(&b, "- **Sources Processed:** %d\n", meta.SourceCount)
	b.WriteString("\n---\n\n## News Items\n\n")

	for i, item := range items {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, orUntitled(item.Title))
		if item.Source != "" {
			fmt.Fprintf(&b, "**Source:** %s\n\n", item.Source)
		}
		if item.Link != "" {
			fmt.Fprintf(&b, "**Link:** [%s](%s)\n\n", item.Link, item.Link)
		}
		if item.Published != "" {
			fmt.Fprintf(&b, "**Published:** %s\n\n", item.Published)
		}
		if item.Team != "" || item.Player != "" {
			fmt.Fprintf(&b, "**Team:** %s | **Player:** %s | **Position:** %s | **Status:** %s\n\n",
				orDash(item.Team), orDash(item.Player), orDash(item.Position), orDash(item.Status))
		}
		if item.Description != "" {
			b.WriteString(truncate(item.Description, 500))
			b.WriteString("\n\n")
		}
		b.WriteString("---\n\n")
	}

	path := g.filename("md", meta.GeneratedAt)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown report: %w", err)
	}

	logger.Info().Str("path", path).Int("items", len(items)).Msg("Markdown report written")
	return path, nil
}

// WriteCSV renders the item list as a CSV report and returns the file path.
func (g *Generator) WriteCSV(items []models.NewsItem, meta Metadata) (string, error) {
	path := g.filename("csv", meta.GeneratedAt)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"id", "title", "link", "source", "published", "team", "player", "position", "status", "description"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, item := range items {
		record := []string{
			item.ID,
			item.Title,
			item.Link,
			item.Source,
			item.Published,
			item.Team,
			item.Player,
			item.Position,
			item.Status,
			item.Description,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv report: %w", err)
	}

	logger.Info().Str("path", path).Int("items", len(items)).Msg("CSV report written")
	return path, nil
}

func (g *Generator) filename(ext string, ts time.Time) string {
	name := g.prefix + "_" + ts.Format("20060102_150405") + "." + ext
	return filepath.Join(g.outputDir, name)
}

func orUntitled(s string) string {
	if s == "" {
		return "Untitled"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
