package stats

import (
	"math"
	"time"

	"futsal-app/internal/model"
)

const (
	minPartnerMatches = 3
	recentFormSize    = 10

	hotStreak  = 5
	coldStreak = 3
)

type StreakType string
type StreakLevel string

const (
	StreakNone StreakType = "none"
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"

	StreakNormal StreakLevel = "normal"
	StreakHot    StreakLevel = "hot"
	StreakCold   StreakLevel = "cold"
)

type Streak struct {
	Type  StreakType  `json:"type"`
	Count int         `json:"count"`
	Level StreakLevel `json:"level"`
}

type Partner struct {
	Found   bool    `json:"found"`
	Player  string  `json:"player"`
	Matches int     `json:"matches"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

type SidePerformance struct {
	Side          model.Side `json:"side"`
	Matches       int        `json:"matches"`
	Wins          int        `json:"wins"`
	WinRate       float64    `json:"win_rate"`
	Goals         int        `json:"goals"`
	GoalsPerMatch float64    `json:"goals_per_match"`
}

type TeamSplit struct {
	Blue SidePerformance `json:"blue"`
	Red  SidePerformance `json:"red"`
}

type FormEntry struct {
	Date    time.Time    `json:"date"`
	Result  model.Result `json:"result"`
	Goals   int          `json:"goals"`
	Assists int          `json:"assists"`
}

type PlayerAnalysis struct {
	Summary        PlayerSummary `json:"summary"`
	Streak         Streak        `json:"streak"`
	BestPartner    Partner       `json:"best_partner"`
	Teams          TeamSplit     `json:"teams"`
	RecentForm     []FormEntry   `json:"recent_form"`
	MVPProbability int           `json:"mvp_probability"`
}

// Analyze builds the player page. A player without matches gets zero values
// everywhere and no partner.
func Analyze(player string, matches []model.Match) PlayerAnalysis {
	played := matchesOf(player, matches)
	summary := Summary(player, played)
	return PlayerAnalysis{
		Summary:        summary,
		Streak:         CurrentStreak(player, played),
		BestPartner:    BestPartner(player, played),
		Teams:          SplitBySide(player, played),
		RecentForm:     RecentForm(player, played),
		MVPProbability: MVPProbability(summary),
	}
}

// CurrentStreak walks back from the most recent match counting identical
// wins or losses. A draw ends the streak; unrecognised outcomes are skipped.
func CurrentStreak(player string, matches []model.Match) Streak {
	streak := Streak{Type: StreakNone, Level: StreakNormal}
	for _, m := range newestFirst(matchesOf(player, matches)) {
		side, _, _ := m.SideOf(player)
		_, result := Resolve(m.Outcome).For(side)
		var kind StreakType
		switch result {
		case model.ResultWin:
			kind = StreakWin
		case model.ResultLoss:
			kind = StreakLoss
		case model.ResultDraw:
			return streak.withLevel()
		default:
			continue
		}
		if streak.Type == StreakNone {
			streak.Type = kind
		}
		if kind != streak.Type {
			break
		}
		streak.Count++
	}
	return streak.withLevel()
}

func (s Streak) withLevel() Streak {
	switch {
	case s.Type == StreakWin && s.Count >= hotStreak:
		s.Level = StreakHot
	case s.Type == StreakLoss && s.Count >= coldStreak:
		s.Level = StreakCold
	default:
		s.Level = StreakNormal
	}
	return s
}

// BestPartner picks the same-side teammate with the highest joint win rate
// among those who shared at least three matches with the player. Ties go to
// the pairing with more matches, then to whoever appeared first.
func BestPartner(player string, matches []model.Match) Partner {
	type pairing struct {
		name    string
		matches int
		wins    int
	}
	index := make(map[string]int)
	pairings := []pairing{}
	for _, m := range matchesOf(player, matches) {
		side, _, _ := m.SideOf(player)
		_, result := Resolve(m.Outcome).For(side)
		for _, mate := range m.Roster(side) {
			if mate.Player == player {
				continue
			}
			i, ok := index[mate.Player]
			if !ok {
				i = len(pairings)
				index[mate.Player] = i
				pairings = append(pairings, pairing{name: mate.Player})
			}
			pairings[i].matches++
			if result == model.ResultWin {
				pairings[i].wins++
			}
		}
	}

	best := Partner{}
	for _, p := range pairings {
		if p.matches < minPartnerMatches {
			continue
		}
		rate := percent(p.wins, p.matches)
		if !best.Found || rate > best.WinRate || (rate == best.WinRate && p.matches > best.Matches) {
			best = Partner{Found: true, Player: p.name, Matches: p.matches, Wins: p.wins, WinRate: rate}
		}
	}
	return best
}

func SplitBySide(player string, matches []model.Match) TeamSplit {
	split := TeamSplit{
		Blue: SidePerformance{Side: model.SideBlue},
		Red:  SidePerformance{Side: model.SideRed},
	}
	for _, m := range matchesOf(player, matches) {
		side, p, _ := m.SideOf(player)
		_, result := Resolve(m.Outcome).For(side)
		perf := &split.Blue
		if side == model.SideRed {
			perf = &split.Red
		}
		perf.Matches++
		perf.Goals += p.Goals
		if result == model.ResultWin {
			perf.Wins++
		}
	}
	for _, perf := range []*SidePerformance{&split.Blue, &split.Red} {
		perf.WinRate = percent(perf.Wins, perf.Matches)
		perf.GoalsPerMatch = ratio(perf.Goals, perf.Matches)
	}
	return split
}

// RecentForm returns the last ten matches, oldest first, ready for a chart.
func RecentForm(player string, matches []model.Match) []FormEntry {
	recent := newestFirst(matchesOf(player, matches))
	if len(recent) > recentFormSize {
		recent = recent[:recentFormSize]
	}
	form := make([]FormEntry, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		side, p, _ := m.SideOf(player)
		_, result := Resolve(m.Outcome).For(side)
		form = append(form, FormEntry{
			Date:    m.Date,
			Result:  result,
			Goals:   p.Goals,
			Assists: p.Assists,
		})
	}
	return form
}

// MVPProbability is a weighted blend of MVP rate and win rate, both in
// percent, rounded to an integer.
func MVPProbability(s PlayerSummary) int {
	if s.Matches == 0 {
		return 0
	}
	return int(math.Round(0.6*s.MVPRate() + 0.4*s.WinRate()))
}
