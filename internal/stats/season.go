package stats

import (
	"sort"

	"futsal-app/internal/model"
)

const DefaultTopN = 3

type WinCounts struct {
	Blue int `json:"blue"`
	Red  int `json:"red"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Value  int    `json:"value"`
}

type Season struct {
	Matches                  int                `json:"matches"`
	TotalGoals               int                `json:"total_goals"`
	Wins                     WinCounts          `json:"wins"`
	Draws                    int                `json:"draws"`
	TopScorers               []LeaderboardEntry `json:"top_scorers"`
	TopAssists               []LeaderboardEntry `json:"top_assists"`
	TopConceded              []LeaderboardEntry `json:"top_conceded"`
	NonRegularParticipations int                `json:"non_regular_participations"`
}

func Summarize(matches []model.Match, regulars []string, n int) Season {
	season := Season{
		Matches:                  len(matches),
		TotalGoals:               TotalGoals(matches),
		Wins:                     CountWins(matches),
		TopScorers:               TopScorers(matches, n),
		TopAssists:               TopAssists(matches, n),
		TopConceded:              TopConceded(matches, n),
		NonRegularParticipations: NonRegularParticipationCount(matches, regulars),
	}
	for _, m := range matches {
		if m.Outcome == model.OutcomeDraw {
			season.Draws++
		}
	}
	return season
}

func TotalGoals(matches []model.Match) int {
	total := 0
	for _, m := range matches {
		for _, p := range m.Blue {
			total += p.Goals
		}
		for _, p := range m.Red {
			total += p.Goals
		}
	}
	return total
}

// CountWins tallies blue and red victories. Draws are not counted.
func CountWins(matches []model.Match) WinCounts {
	var counts WinCounts
	for _, m := range matches {
		switch m.Outcome {
		case model.OutcomeBlue:
			counts.Blue++
		case model.OutcomeRed:
			counts.Red++
		}
	}
	return counts
}

func TopScorers(matches []model.Match, n int) []LeaderboardEntry {
	return leaderboard(matches, n, func(p model.Participation) int { return p.Goals })
}

func TopAssists(matches []model.Match, n int) []LeaderboardEntry {
	return leaderboard(matches, n, func(p model.Participation) int { return p.Assists })
}

func TopConceded(matches []model.Match, n int) []LeaderboardEntry {
	return leaderboard(matches, n, func(p model.Participation) int { return p.Conceded })
}

// leaderboard uses standard competition ranking (1, 1, 1, 4, ...). Entries
// are kept while their rank is at most n, so a tie on the boundary makes
// the list longer than n.
func leaderboard(matches []model.Match, n int, value func(model.Participation) int) []LeaderboardEntry {
	if n <= 0 {
		n = DefaultTopN
	}
	index := make(map[string]int)
	totals := []LeaderboardEntry{}
	for _, m := range matches {
		for _, roster := range [][]model.Participation{m.Blue, m.Red} {
			for _, p := range roster {
				i, ok := index[p.Player]
				if !ok {
					i = len(totals)
					index[p.Player] = i
					totals = append(totals, LeaderboardEntry{Player: p.Player})
				}
				totals[i].Value += value(p)
			}
		}
	}

	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Value > totals[j].Value })

	out := []LeaderboardEntry{}
	for i, entry := range totals {
		if entry.Value <= 0 {
			break
		}
		if i > 0 && entry.Value == totals[i-1].Value {
			entry.Rank = out[len(out)-1].Rank
		} else {
			entry.Rank = i + 1
		}
		if entry.Rank > n {
			break
		}
		out = append(out, entry)
	}
	return out
}

// NonRegularParticipationCount counts appearances by players who are not
// regulars of the day. The same player on two nights counts twice.
func NonRegularParticipationCount(matches []model.Match, regulars []string) int {
	fixed := make(map[string]bool, len(regulars))
	for _, name := range regulars {
		fixed[name] = true
	}
	count := 0
	for _, m := range matches {
		for _, roster := range [][]model.Participation{m.Blue, m.Red} {
			for _, p := range roster {
				if !fixed[p.Player] {
					count++
				}
			}
		}
	}
	return count
}
