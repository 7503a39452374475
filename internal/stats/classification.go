package stats

import (
	"sort"

	"futsal-app/internal/model"
)

// Classify folds every match into one record per player and orders them by
// points, highest first. Players with equal points keep the order in which
// they were first seen. Every regular gets a row even without matches.
func Classify(matches []model.Match, regulars []string) []model.PlayerSeasonRecord {
	index := make(map[string]int)
	records := []model.PlayerSeasonRecord{}
	record := func(name string) *model.PlayerSeasonRecord {
		if i, ok := index[name]; ok {
			return &records[i]
		}
		index[name] = len(records)
		records = append(records, model.PlayerSeasonRecord{Player: name})
		return &records[len(records)-1]
	}

	for _, match := range matches {
		resolution := Resolve(match.Outcome)
		if match.HasMVP() {
			record(match.MVPName()).MVPs++
		}
		for _, side := range []model.Side{model.SideBlue, model.SideRed} {
			points, result := resolution.For(side)
			for _, p := range match.Roster(side) {
				entry := record(p.Player)
				entry.Points += points
				entry.Points += float64(p.Goals) * goalWeight
				entry.Goals += p.Goals
				entry.Points += float64(p.Assists) * assistWeight
				entry.Assists += p.Assists
				entry.Points += float64(p.Conceded) * concededWeight
				entry.Conceded += p.Conceded
				switch result {
				case model.ResultWin:
					entry.Wins++
				case model.ResultDraw:
					entry.Draws++
				case model.ResultLoss:
					entry.Losses++
				}
			}
		}
	}

	// MVP awards are added once the per-match totals are in.
	for i := range records {
		if records[i].MVPs > 0 {
			records[i].Points += float64(records[i].MVPs) * mvpBonus
		}
	}

	for _, name := range regulars {
		record(name).Regular = true
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Points > records[j].Points
	})
	return records
}

type StandingRow struct {
	Rank   int                      `json:"rank"`
	Record model.PlayerSeasonRecord `json:"record"`
	Top    bool                     `json:"top"`
	Bottom bool                     `json:"bottom"`
}

// Standings numbers the classification and flags its first and last rows.
func Standings(records []model.PlayerSeasonRecord) []StandingRow {
	rows := make([]StandingRow, 0, len(records))
	for i, r := range records {
		rows = append(rows, StandingRow{
			Rank:   i + 1,
			Record: r,
			Top:    i == 0,
			Bottom: len(records) > 1 && i == len(records)-1,
		})
	}
	return rows
}
