package web

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"futsal-app/internal/model"
	"futsal-app/internal/stats"
)

const dateLabelLayout = "02/01/2006"

type dayData struct {
	day      model.DayCategory
	matches  []model.Match
	regulars []string
}

func (s *Server) loadDay(day model.DayCategory) (dayData, error) {
	matches, err := s.store.ListMatches(day)
	if err != nil {
		return dayData{}, fmt.Errorf("list matches: %w", err)
	}
	regulars, err := s.store.ListRegulars(day)
	if err != nil {
		return dayData{}, fmt.Errorf("list regulars: %w", err)
	}
	return dayData{day: day, matches: matches, regulars: regulars}, nil
}

// players lists everyone who appears in a match or on the regular roster.
func (d dayData) players() []string {
	seen := map[string]bool{}
	names := []string{}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range d.regulars {
		add(name)
	}
	for _, m := range d.matches {
		for _, p := range m.Blue {
			add(p.Player)
		}
		for _, p := range m.Red {
			add(p.Player)
		}
	}
	sort.Strings(names)
	return names
}

func (d dayData) isRegular(name string) bool {
	for _, r := range d.regulars {
		if r == name {
			return true
		}
	}
	return false
}

func dayPath(day model.DayCategory) string {
	return "/days/" + string(day)
}

func playerPath(day model.DayCategory, player string) string {
	return dayPath(day) + "/players/" + url.PathEscape(player)
}

var sectionSuffix = map[string]string{
	"standings": "/",
	"matches":   "/matches",
	"stats":     "/stats",
	"compare":   "/compare",
}

func (s *Server) baseView(r *http.Request, day model.DayCategory, title, section string) BaseView {
	user := s.currentUser(r)
	suffix, ok := sectionSuffix[section]
	if !ok {
		suffix = "/"
	}
	links := make([]DayLink, 0, len(model.Days))
	for _, d := range model.Days {
		links = append(links, DayLink{Label: d.Label(), URL: dayPath(d) + suffix, Active: d == day})
	}
	return BaseView{
		Title:        title,
		Day:          day,
		DayLabel:     day.Label(),
		Days:         links,
		Section:      section,
		CurrentUser:  user,
		IsAdmin:      user.IsAdmin(),
		FlashSuccess: flashMessage(r.URL.Query().Get("notice")),
		IsDev:        s.opts.Dev,
	}
}

func (s *Server) logError(r *http.Request, err error) {
	log.Printf("web: %s %s: %v", r.Method, r.URL.Path, err)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logError(r, err)
	message := "No se han podido cargar los datos. Inténtalo de nuevo en unos minutos."
	if status == http.StatusNotFound {
		message = "No encontramos lo que buscabas."
	}
	view := ErrorView{
		BaseView: s.baseView(r, s.opts.DefaultDay, "Error", ""),
		Message:  message,
	}
	if err := s.templates.RenderStatus(w, status, "error.html", view); err != nil {
		http.Error(w, message, status)
	}
}

func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}

func formatValue(kind stats.MetricKind, value float64) string {
	switch kind {
	case stats.KindPercent:
		return fmt.Sprintf("%.0f%%", value)
	case stats.KindAverage:
		return fmt.Sprintf("%.2f", value)
	}
	return fmt.Sprintf("%.0f", value)
}

func standingRowViews(day model.DayCategory, rows []stats.StandingRow) []StandingRowView {
	views := make([]StandingRowView, 0, len(rows))
	for _, row := range rows {
		rec := row.Record
		views = append(views, StandingRowView{
			Rank:      row.Rank,
			Player:    rec.Player,
			PlayerURL: playerPath(day, rec.Player),
			Points:    formatPoints(rec.Points),
			Matches:   rec.Matches(),
			Wins:      rec.Wins,
			Draws:     rec.Draws,
			Losses:    rec.Losses,
			Goals:     rec.Goals,
			Assists:   rec.Assists,
			Conceded:  rec.Conceded,
			MVPs:      rec.MVPs,
			Top:       row.Top,
			Bottom:    row.Bottom,
			Regular:   rec.Regular,
		})
	}
	return views
}

func outcomeClass(o model.Outcome) string {
	if o.Known() {
		return "outcome-" + string(o)
	}
	return "outcome-unknown"
}

func matchView(m model.Match) MatchView {
	mvp := m.MVPName()
	roster := func(side []model.Participation) []ParticipationView {
		views := make([]ParticipationView, 0, len(side))
		for _, p := range side {
			views = append(views, ParticipationView{
				Player:    p.Player,
				PlayerURL: playerPath(m.Day, p.Player),
				Goals:     p.Goals,
				Assists:   p.Assists,
				Conceded:  p.Conceded,
				MVP:       mvp != "" && p.Player == mvp,
			})
		}
		return views
	}
	return MatchView{
		ID:           m.ID,
		DateLabel:    m.Date.Format(dateLabelLayout),
		OutcomeLabel: m.Outcome.Label(),
		OutcomeClass: outcomeClass(m.Outcome),
		ScoreLine:    fmt.Sprintf("%d - %d", m.BlueScore, m.RedScore),
		MVP:          mvp,
		Blue:         roster(m.Blue),
		Red:          roster(m.Red),
		EditURL:      "/admin/matches/" + url.PathEscape(m.ID) + "/edit",
		DeleteURL:    "/admin/matches/" + url.PathEscape(m.ID) + "/delete",
	}
}

func matchViews(matches []model.Match) []MatchView {
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, matchView(m))
	}
	return views
}

func leaderboardView(day model.DayCategory, title, empty string, entries []stats.LeaderboardEntry) LeaderboardView {
	view := LeaderboardView{Title: title, Empty: empty}
	for _, e := range entries {
		view.Rows = append(view.Rows, LeaderboardRowView{
			Rank:      e.Rank,
			Player:    e.Player,
			PlayerURL: playerPath(day, e.Player),
			Value:     e.Value,
		})
	}
	return view
}

func streakView(s stats.Streak) (label, class string) {
	switch s.Type {
	case stats.StreakWin:
		label = fmt.Sprintf("%d victorias seguidas", s.Count)
		if s.Count == 1 {
			label = "1 victoria"
		}
	case stats.StreakLoss:
		label = fmt.Sprintf("%d derrotas seguidas", s.Count)
		if s.Count == 1 {
			label = "1 derrota"
		}
	default:
		label = "Sin racha"
	}
	return label, "streak-" + string(s.Level)
}

func resultLabel(r model.Result) string {
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

func formViews(form []stats.FormEntry) []FormEntryView {
	views := make([]FormEntryView, 0, len(form))
	for _, f := range form {
		class := "form-unknown"
		if f.Result != "" {
			class = "form-" + string(f.Result)
		}
		views = append(views, FormEntryView{
			DateLabel:   f.Date.Format(dateLabelLayout),
			ResultClass: class,
			ResultLabel: resultLabel(f.Result),
			Goals:       f.Goals,
			Assists:     f.Assists,
		})
	}
	return views
}

func compareTableView(day model.DayCategory, c stats.Comparison) *CompareTableView {
	table := &CompareTableView{Players: c.Players}
	for _, p := range c.Players {
		table.PlayerURLs = append(table.PlayerURLs, playerPath(day, p))
	}
	for _, row := range c.Rows {
		view := CompareRowView{Label: row.Label, LowerIsBetter: row.LowerIsBetter}
		for _, cell := range row.Cells {
			view.Cells = append(view.Cells, CompareCellView{Text: formatValue(row.Kind, cell.Value), Best: cell.Best})
		}
		table.Rows = append(table.Rows, view)
	}
	return table
}
