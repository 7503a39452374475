package stats

import (
	"sort"

	"futsal-app/internal/model"
)

// PlayerSummary is one player's totals over the matches they played.
type PlayerSummary struct {
	Player   string `json:"player"`
	Matches  int    `json:"matches"`
	Wins     int    `json:"wins"`
	Draws    int    `json:"draws"`
	Losses   int    `json:"losses"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	Conceded int    `json:"conceded"`
	MVPs     int    `json:"mvps"`
}

func (s PlayerSummary) WinRate() float64 {
	return percent(s.Wins, s.Matches)
}

func (s PlayerSummary) MVPRate() float64 {
	return percent(s.MVPs, s.Matches)
}

func (s PlayerSummary) GoalsPerMatch() float64 {
	return ratio(s.Goals, s.Matches)
}

func (s PlayerSummary) AssistsPerMatch() float64 {
	return ratio(s.Assists, s.Matches)
}

func Summary(player string, matches []model.Match) PlayerSummary {
	summary := PlayerSummary{Player: player}
	for _, m := range matchesOf(player, matches) {
		side, p, _ := m.SideOf(player)
		_, result := Resolve(m.Outcome).For(side)
		summary.Matches++
		switch result {
		case model.ResultWin:
			summary.Wins++
		case model.ResultDraw:
			summary.Draws++
		case model.ResultLoss:
			summary.Losses++
		}
		summary.Goals += p.Goals
		summary.Assists += p.Assists
		summary.Conceded += p.Conceded
		if m.MVPName() == player {
			summary.MVPs++
		}
	}
	return summary
}

func matchesOf(player string, matches []model.Match) []model.Match {
	out := []model.Match{}
	for _, m := range matches {
		if _, _, ok := m.SideOf(player); ok {
			out = append(out, m)
		}
	}
	return out
}

// newestFirst returns a copy ordered by date, most recent first.
func newestFirst(matches []model.Match) []model.Match {
	sorted := append([]model.Match(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	return sorted
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
