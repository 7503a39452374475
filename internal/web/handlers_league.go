package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"futsal-app/internal/stats"

	"github.com/go-chi/chi/v5"
)

const compareSlots = 3

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	day := dayFrom(r)
	data, err := s.loadDay(day)
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	view := StandingsView{
		BaseView:   s.baseView(r, day, "Clasificación "+day.Label(), "standings"),
		Rows:       standingRowViews(day, stats.Standings(stats.Classify(data.matches, data.regulars))),
		MatchCount: len(data.matches),
	}
	if err := s.templates.Render(w, "standings.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	day := dayFrom(r)
	data, err := s.loadDay(day)
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	view := MatchesView{
		BaseView: s.baseView(r, day, "Partidos "+day.Label(), "matches"),
		Matches:  matchViews(data.matches),
	}
	if err := s.templates.Render(w, "matches.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSeasonStats(w http.ResponseWriter, r *http.Request) {
	day := dayFrom(r)
	data, err := s.loadDay(day)
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	season := stats.Summarize(data.matches, data.regulars, stats.DefaultTopN)
	view := SeasonView{
		BaseView: s.baseView(r, day, "Estadísticas "+day.Label(), "stats"),
		Season:   season,
		Boards: []LeaderboardView{
			leaderboardView(day, "Goleadores", "Todavía no hay goles.", season.TopScorers),
			leaderboardView(day, "Asistentes", "Todavía no hay asistencias.", season.TopAssists),
			leaderboardView(day, "Más goles encajados", "Nadie ha encajado goles.", season.TopConceded),
		},
	}
	if err := s.templates.Render(w, "stats.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	day := dayFrom(r)
	player := playerParam(r)
	data, err := s.loadDay(day)
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	if !knownPlayer(data, player) {
		s.renderError(w, r, http.StatusNotFound, errors.New("unknown player "+player))
		return
	}
	analysis := stats.Analyze(player, data.matches)
	streakLabel, streakClass := streakView(analysis.Streak)
	view := PlayerView{
		BaseView:    s.baseView(r, day, player, "player"),
		Player:      player,
		Regular:     data.isRegular(player),
		Analysis:    analysis,
		StreakLabel: streakLabel,
		StreakClass: streakClass,
		Form:        formViews(analysis.RecentForm),
		CompareURL:  dayPath(day) + "/compare?player=" + url.QueryEscape(player),
	}
	if analysis.BestPartner.Found {
		view.PartnerURL = playerPath(day, analysis.BestPartner.Player)
	}
	if err := s.templates.Render(w, "player.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCompare renders the full page, or only the comparison table when the
// selector form posts through htmx.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	day := dayFrom(r)
	data, err := s.loadDay(day)
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	selected := comparedPlayers(r)
	view := CompareView{
		BaseView:   s.baseView(r, day, "Comparar jugadores", "compare"),
		Candidates: data.players(),
		Selected:   make([]string, compareSlots),
	}
	copy(view.Selected, selected)
	if len(selected) > 0 {
		comparison, err := stats.Compare(selected, data.matches)
		if err != nil {
			view.Error = "Elige dos o tres jugadores distintos."
		} else {
			view.Table = compareTableView(day, comparison)
		}
	}
	s.renderSwap(w, r, "compare.html", "comparison.html", view)
}

func playerParam(r *http.Request) string {
	raw := chi.URLParam(r, "player")
	if name, err := url.PathUnescape(raw); err == nil {
		raw = name
	}
	return strings.TrimSpace(raw)
}

func comparedPlayers(r *http.Request) []string {
	names := []string{}
	for _, name := range r.URL.Query()["player"] {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func knownPlayer(data dayData, player string) bool {
	if player == "" {
		return false
	}
	for _, name := range data.players() {
		if name == player {
			return true
		}
	}
	return false
}
