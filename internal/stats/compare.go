package stats

import (
	"errors"
	"strings"

	"futsal-app/internal/model"
)

var ErrComparisonSize = errors.New("comparison needs two or three different players")

const (
	minCompared = 2
	maxCompared = 3
)

type MetricKind string

const (
	KindCount   MetricKind = "count"
	KindAverage MetricKind = "average"
	KindPercent MetricKind = "percent"
)

type ComparisonCell struct {
	Value float64 `json:"value"`
	Best  bool    `json:"best"`
}

type ComparisonRow struct {
	Label string     `json:"label"`
	Kind  MetricKind `json:"kind"`
	// LowerIsBetter flips which end of the row is highlighted.
	LowerIsBetter bool             `json:"lower_is_better"`
	Cells         []ComparisonCell `json:"cells"`
}

type Comparison struct {
	Players   []string        `json:"players"`
	Summaries []PlayerSummary `json:"summaries"`
	Rows      []ComparisonRow `json:"rows"`
}

type metric struct {
	label         string
	kind          MetricKind
	lowerIsBetter bool
	value         func(PlayerSummary) float64
}

var comparisonMetrics = []metric{
	{label: "Partidos", kind: KindCount, value: func(s PlayerSummary) float64 { return float64(s.Matches) }},
	{label: "Victorias", kind: KindCount, value: func(s PlayerSummary) float64 { return float64(s.Wins) }},
	{label: "% Victorias", kind: KindPercent, value: PlayerSummary.WinRate},
	{label: "Goles", kind: KindCount, value: func(s PlayerSummary) float64 { return float64(s.Goals) }},
	{label: "Goles por partido", kind: KindAverage, value: PlayerSummary.GoalsPerMatch},
	{label: "Asistencias", kind: KindCount, value: func(s PlayerSummary) float64 { return float64(s.Assists) }},
	{label: "Asistencias por partido", kind: KindAverage, value: PlayerSummary.AssistsPerMatch},
	{label: "Goles encajados", kind: KindCount, lowerIsBetter: true, value: func(s PlayerSummary) float64 { return float64(s.Conceded) }},
	{label: "MVPs", kind: KindCount, value: func(s PlayerSummary) float64 { return float64(s.MVPs) }},
	{label: "% MVP", kind: KindPercent, value: PlayerSummary.MVPRate},
}

// Compare lines up two or three players metric by metric. Every player
// sharing the best value of a row is marked.
func Compare(players []string, matches []model.Match) (Comparison, error) {
	names := make([]string, 0, len(players))
	seen := map[string]bool{}
	for _, p := range players {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		names = append(names, p)
	}
	if len(names) < minCompared || len(names) > maxCompared {
		return Comparison{}, ErrComparisonSize
	}

	comparison := Comparison{Players: names}
	for _, name := range names {
		comparison.Summaries = append(comparison.Summaries, Summary(name, matches))
	}
	for _, m := range comparisonMetrics {
		row := ComparisonRow{Label: m.label, Kind: m.kind, LowerIsBetter: m.lowerIsBetter}
		best := 0.0
		for i, s := range comparison.Summaries {
			v := m.value(s)
			row.Cells = append(row.Cells, ComparisonCell{Value: v})
			if i == 0 || (m.lowerIsBetter && v < best) || (!m.lowerIsBetter && v > best) {
				best = v
			}
		}
		for i := range row.Cells {
			row.Cells[i].Best = row.Cells[i].Value == best
		}
		comparison.Rows = append(comparison.Rows, row)
	}
	return comparison, nil
}
