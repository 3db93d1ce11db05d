package enrich

import (
	"github.com/gridironhq/sportwire/internal/models"
)

// DepthChartIndex maps (team, normalized player name) to a position string.
// Built once per run from scraped depth charts; read-only afterwards.
type DepthChartIndex struct {
	positions map[string]string
	ambiguous map[string]bool
}

// BuildIndex flattens a depth chart into a lookup index. A normalized name
// that appears at two different positions for the same team is marked
// ambiguous and will never resolve.
func BuildIndex(chart models.DepthChart) *DepthChartIndex {
	idx := &DepthChartIndex{
		positions: make(map[string]string),
		ambiguous: make(map[string]bool),
	}

	for team, positions := range chart {
		for position, players := range positions {
			for _, player := range players {
				key := indexKey(team, player)
				if key == "" {
					continue
				}
				if existing, ok := idx.positions[key]; ok && existing != position {
					idx.ambiguous[key] = true
					continue
				}
				idx.positions[key] = position
			}
		}
	}

	return idx
}

// Lookup resolves a player's position by exact normalized match.
func (idx *DepthChartIndex) Lookup(team, player string) (string, bool) {
	key := indexKey(team, player)
	if key == "" || idx.ambiguous[key] {
		return "", false
	}
	position, ok := idx.positions[key]
	return position, ok
}

// Size returns the number of resolvable entries in the index.
func (idx *DepthChartIndex) Size() int {
	return len(idx.positions)
}

func indexKey(team, player string) string {
	name := NormalizeName(player)
	if name == "" {
		return ""
	}
	return NormalizeTeam(team) + "|" + name
}

// Enrich attaches positions to items that carry a team and player but no
// position yet. Pure over its inputs: callers get a new slice and the
// original items are untouched. Re-running enrichment is a no-op for items
// whose position is already set, so the operation is idempotent. A missing
// or ambiguous match leaves the position empty rather than guessing.
func Enrich(items []models.NewsItem, idx *DepthChartIndex) []models.NewsItem {
	out := make([]models.NewsItem, len(items))
	copy(out, items)

	if idx == nil || idx.Size() == 0 {
		return out
	}

	for i := range out {
		item := &out[i]
		if item.Team == "" || item.Player == "" || item.Position != "" {
			continue
		}
		if position, ok := idx.Lookup(item.Team, item.Player); ok {
			item.Position = position
		}
	}

	return out
}
