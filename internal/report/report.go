// Package report renders league data as terminal tables for leaguectl.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"futsal-app/internal/model"
	"futsal-app/internal/stats"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintStandings prints the classification. The leader is marked with "^",
// the last row with "v" and guests with "*".
func PrintStandings(w io.Writer, day model.DayCategory, rows []stats.StandingRow) {
	fmt.Fprintf(w, "\nClasificación %s\n\n", day.Label())
	if len(rows) == 0 {
		fmt.Fprintln(w, "No players yet.")
		return
	}
	table := newTable(w)
	table.Header(" ", "#", "PLAYER", "PTS", "PJ", "V", "E", "D", "G", "A", "ENC", "MVP")
	for _, row := range rows {
		r := row.Record
		marker := " "
		switch {
		case row.Top:
			marker = "^"
		case row.Bottom:
			marker = "v"
		}
		name := r.Player
		if !r.Regular {
			name += " *"
		}
		table.Append(
			marker,
			strconv.Itoa(row.Rank),
			name,
			strconv.FormatFloat(r.Points, 'f', -1, 64),
			strconv.Itoa(r.Matches()),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Draws),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.Goals),
			strconv.Itoa(r.Assists),
			strconv.Itoa(r.Conceded),
			strconv.Itoa(r.MVPs),
		)
	}
	table.Render()
}

// PrintSeason prints the season totals followed by the three leaderboards.
func PrintSeason(w io.Writer, day model.DayCategory, s stats.Season) {
	fmt.Fprintf(w, "\nTemporada %s  |  Partidos: %d  |  Goles: %d  |  Azul %d - Rojo %d - Empates %d  |  Invitados: %d\n\n",
		day.Label(), s.Matches, s.TotalGoals, s.Wins.Blue, s.Wins.Red, s.Draws, s.NonRegularParticipations)

	boards := []struct {
		title   string
		entries []stats.LeaderboardEntry
	}{
		{"GOLEADORES", s.TopScorers},
		{"ASISTENCIAS", s.TopAssists},
		{"ENCAJADOS", s.TopConceded},
	}
	for _, b := range boards {
		table := newTable(w)
		table.Header("#", b.title, "TOTAL")
		for _, e := range b.entries {
			table.Append(strconv.Itoa(e.Rank), e.Player, strconv.Itoa(e.Value))
		}
		table.Render()
	}
}

func PrintMatches(w io.Writer, matches []model.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches stored yet.")
		return
	}
	table := newTable(w)
	table.Header("DATE", "RESULT", "SCORE", "MVP", "BLUE", "RED", "ID")
	for _, m := range matches {
		mvp := m.MVPName()
		if mvp == "" {
			mvp = "-"
		}
		table.Append(
			m.Date.Format(dateLayout),
			m.Outcome.Label(),
			fmt.Sprintf("%d-%d", m.BlueScore, m.RedScore),
			mvp,
			rosterNames(m.Blue),
			rosterNames(m.Red),
			m.ID,
		)
	}
	table.Render()
}

func rosterNames(side []model.Participation) string {
	names := make([]string, 0, len(side))
	for _, p := range side {
		names = append(names, p.Player)
	}
	return strings.Join(names, ", ")
}

// PrintPlayer prints one player's analytics: totals, streak, best partner,
// side split and recent form.
func PrintPlayer(w io.Writer, a stats.PlayerAnalysis) {
	s := a.Summary
	fmt.Fprintf(w, "\n%s  |  PJ %d  |  %d-%d-%d  |  Victorias %.0f%%  |  MVP %d (%.0f%%)  |  Prob. MVP %d%%\n\n",
		s.Player, s.Matches, s.Wins, s.Draws, s.Losses, s.WinRate(), s.MVPs, s.MVPRate(), a.MVPProbability)

	table := newTable(w)
	table.Header("GOALS", "G/PJ", "ASSISTS", "A/PJ", "CONCEDED", "STREAK", "BEST PARTNER")
	table.Append(
		strconv.Itoa(s.Goals),
		fmt.Sprintf("%.2f", s.GoalsPerMatch()),
		strconv.Itoa(s.Assists),
		fmt.Sprintf("%.2f", s.AssistsPerMatch()),
		strconv.Itoa(s.Conceded),
		streakText(a.Streak),
		partnerText(a.BestPartner),
	)
	table.Render()

	sides := newTable(w)
	sides.Header("SIDE", "PJ", "V", "WIN%", "GOALS", "G/PJ")
	for _, perf := range []stats.SidePerformance{a.Teams.Blue, a.Teams.Red} {
		sides.Append(
			string(perf.Side),
			strconv.Itoa(perf.Matches),
			strconv.Itoa(perf.Wins),
			fmt.Sprintf("%.0f%%", perf.WinRate),
			strconv.Itoa(perf.Goals),
			fmt.Sprintf("%.2f", perf.GoalsPerMatch),
		)
	}
	sides.Render()

	form := make([]string, 0, len(a.RecentForm))
	for _, f := range a.RecentForm {
		form = append(form, formLetter(f.Result))
	}
	if len(form) == 0 {
		form = append(form, "-")
	}
	fmt.Fprintf(w, "Forma: %s\n", strings.Join(form, " "))
}

func streakText(s stats.Streak) string {
	if s.Type == stats.StreakNone {
		return "-"
	}
	text := fmt.Sprintf("%d %s", s.Count, s.Type)
	if s.Level != stats.StreakNormal {
		text += " (" + string(s.Level) + ")"
	}
	return text
}

func partnerText(p stats.Partner) string {
	if !p.Found {
		return "-"
	}
	return fmt.Sprintf("%s %d/%d (%.0f%%)", p.Player, p.Wins, p.Matches, p.WinRate)
}

func formLetter(r model.Result) string {
	switch r {
	case model.ResultWin:
		return "V"
	case model.ResultDraw:
		return "E"
	case model.ResultLoss:
		return "D"
	}
	return "?"
}

// PrintComparison prints one row per metric with the best value of each row
// wrapped in brackets.
func PrintComparison(w io.Writer, c stats.Comparison) {
	table := newTable(w)
	header := []any{"METRIC"}
	for _, p := range c.Players {
		header = append(header, p)
	}
	table.Header(header...)
	for _, row := range c.Rows {
		cells := []any{row.Label}
		for _, cell := range row.Cells {
			text := formatMetric(row.Kind, cell.Value)
			if cell.Best {
				text = "[" + text + "]"
			}
			cells = append(cells, text)
		}
		table.Append(cells...)
	}
	table.Render()
}

func formatMetric(kind stats.MetricKind, v float64) string {
	switch kind {
	case stats.KindPercent:
		return fmt.Sprintf("%.0f%%", v)
	case stats.KindAverage:
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

func PrintRegulars(w io.Writer, day model.DayCategory, names []string) {
	if len(names) == 0 {
		fmt.Fprintf(w, "No regulars for %s.\n", day.Label())
		return
	}
	table := newTable(w)
	table.Header("#", "REGULAR "+strings.ToUpper(day.Label()))
	for i, name := range names {
		table.Append(strconv.Itoa(i+1), name)
	}
	table.Render()
}
