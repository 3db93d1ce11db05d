package models

// DepthChart maps team -> position -> ordered player names.
// The first player listed per position is the starter; later names are
// depth reserves.
type DepthChart map[string]map[string][]string

// Merge copies every entry of other into the chart, appending player lists
// for positions that appear in both.
func (dc DepthChart) Merge(other DepthChart) {
	for team, positions := range other {
		if dc[team] == nil {
			dc[team] = make(map[string][]string, len(positions))
		}
		for pos, players := range positions {
			dc[team][pos] = append(dc[team][pos], players...)
		}
	}
}

// Rows counts the (team, position, player) entries in the chart.
func (dc DepthChart) Rows() int {
	n := 0
	for _, positions := range dc {
		for _, players := range positions {
			n += len(players)
		}
	}
	return n
}
