package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"futsal-app/internal/model"
)

const (
	maxLineupRows   = 8
	formDateLayout  = "2006-01-02"
	defaultFormRows = 5
)

// parseMatchForm reads the admin match form and returns the message to show
// when it is not valid. Blank score fields fall back to the sum of each
// side's goals.
func parseMatchForm(r *http.Request) (model.Match, string) {
	day, dayOK := model.ParseDay(r.FormValue("day"))
	date, dateErr := time.Parse(formDateLayout, strings.TrimSpace(r.FormValue("date")))
	outcome, outcomeOK := model.ParseOutcome(r.FormValue("outcome"))
	match := model.Match{
		Day:     day,
		Date:    date,
		Outcome: outcome,
		MVP:     strings.TrimSpace(r.FormValue("mvp")),
		Blue:    parseLineup(r, model.SideBlue, maxLineupRows),
		Red:     parseLineup(r, model.SideRed, maxLineupRows),
	}
	match.BlueScore = parseScore(r.FormValue("blue_score"), sideGoals(match.Blue))
	match.RedScore = parseScore(r.FormValue("red_score"), sideGoals(match.Red))

	switch {
	case !dayOK:
		return match, "Elige lunes o jueves."
	case dateErr != nil:
		return match, "La fecha no es válida."
	case !outcomeOK:
		return match, "Elige el resultado del partido."
	case len(match.Blue)+len(match.Red) == 0:
		return match, "Añade al menos un jugador."
	}
	seen := map[string]bool{}
	for _, p := range append(append([]model.Participation{}, match.Blue...), match.Red...) {
		if seen[p.Player] {
			return match, p.Player + " aparece dos veces."
		}
		seen[p.Player] = true
	}
	return match, ""
}

func parseLineup(r *http.Request, side model.Side, maxRows int) []model.Participation {
	players := []model.Participation{}
	for i := 0; i < maxRows; i++ {
		name := strings.Join(strings.Fields(r.FormValue(fmt.Sprintf("%s_name_%d", side, i))), " ")
		if name == "" {
			continue
		}
		players = append(players, model.Participation{
			Player:   name,
			Goals:    parseCount(r.FormValue(fmt.Sprintf("%s_goal_%d", side, i))),
			Assists:  parseCount(r.FormValue(fmt.Sprintf("%s_assist_%d", side, i))),
			Conceded: parseCount(r.FormValue(fmt.Sprintf("%s_keeper_%d", side, i))),
		})
	}
	return players
}

func parseCount(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func parseScore(value string, fallback int) int {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return parseCount(value)
}

func sideGoals(side []model.Participation) int {
	total := 0
	for _, p := range side {
		total += p.Goals
	}
	return total
}

// buildLineupRows pads a roster with empty rows so the form always offers a
// few free slots, up to maxRows.
func buildLineupRows(side []model.Participation, maxRows int) []LineupRowView {
	count := len(side) + 1
	if count < defaultFormRows {
		count = defaultFormRows
	}
	if count > maxRows {
		count = maxRows
	}
	rows := make([]LineupRowView, 0, count)
	for i := 0; i < count; i++ {
		row := LineupRowView{Index: i}
		if i < len(side) {
			row.Player = side[i].Player
			row.Goals = side[i].Goals
			row.Assists = side[i].Assists
			row.Conceded = side[i].Conceded
		}
		rows = append(rows, row)
	}
	return rows
}

func dayOptions(selected model.DayCategory) []OptionView {
	options := make([]OptionView, 0, len(model.Days))
	for _, d := range model.Days {
		options = append(options, OptionView{Value: string(d), Label: d.Label(), Selected: d == selected})
	}
	return options
}

func outcomeOptions(selected model.Outcome) []OptionView {
	outcomes := []model.Outcome{model.OutcomeBlue, model.OutcomeRed, model.OutcomeDraw}
	options := make([]OptionView, 0, len(outcomes))
	for _, o := range outcomes {
		options = append(options, OptionView{Value: string(o), Label: o.Label(), Selected: o == selected})
	}
	return options
}

func (s *Server) matchFormView(r *http.Request, m model.Match, heading, action string) MatchFormView {
	view := MatchFormView{
		BaseView:   s.baseView(r, m.Day, heading, "admin"),
		Heading:    heading,
		Action:     action,
		DayOptions: dayOptions(m.Day),
		Outcomes:   outcomeOptions(m.Outcome),
		BlueScore:  m.BlueScore,
		RedScore:   m.RedScore,
		MVP:        m.MVPName(),
		Sides:      []LineupSideView{
			{Side: string(model.SideBlue), Label: "Azul", Rows: buildLineupRows(m.Blue, maxLineupRows)},
			{Side: string(model.SideRed), Label: "Rojo", Rows: buildLineupRows(m.Red, maxLineupRows)},
		},
	}
	if !m.Date.IsZero() {
		view.DateValue = m.Date.Format(formDateLayout)
	}
	if data, err := s.loadDay(m.Day); err == nil {
		view.Players = data.players()
	}
	return view
}
