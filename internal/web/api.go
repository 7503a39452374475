package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"futsal-app/internal/lineup"
	"futsal-app/internal/model"
	"futsal-app/internal/stats"
	"futsal-app/internal/store"
)

const maxRecordBytes = 1 << 20

type standingsResponse struct {
	Day       model.DayCategory   `json:"day"`
	Matches   int                 `json:"matches"`
	Standings []stats.StandingRow `json:"standings"`
}

type seasonResponse struct {
	Day    model.DayCategory `json:"day"`
	Season stats.Season      `json:"season"`
}

type matchesResponse struct {
	Day     model.DayCategory `json:"day"`
	Matches []model.Match     `json:"matches"`
}

type playerResponse struct {
	Day             model.DayCategory    `json:"day"`
	Player          string               `json:"player"`
	Regular         bool                 `json:"regular"`
	WinRate         float64              `json:"win_rate"`
	MVPRate         float64              `json:"mvp_rate"`
	GoalsPerMatch   float64              `json:"goals_per_match"`
	AssistsPerMatch float64              `json:"assists_per_match"`
	Analysis        stats.PlayerAnalysis `json:"analysis"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) apiLoadDay(w http.ResponseWriter, r *http.Request) (dayData, bool) {
	data, err := s.loadDay(dayFrom(r))
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusServiceUnavailable, "data unavailable")
		return dayData{}, false
	}
	return data, true
}

func (s *Server) apiStandings(w http.ResponseWriter, r *http.Request) {
	data, ok := s.apiLoadDay(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, standingsResponse{
		Day:       data.day,
		Matches:   len(data.matches),
		Standings: stats.Standings(stats.Classify(data.matches, data.regulars)),
	})
}

func (s *Server) apiSeason(w http.ResponseWriter, r *http.Request) {
	data, ok := s.apiLoadDay(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, seasonResponse{
		Day:    data.day,
		Season: stats.Summarize(data.matches, data.regulars, stats.DefaultTopN),
	})
}

func (s *Server) apiMatches(w http.ResponseWriter, r *http.Request) {
	data, ok := s.apiLoadDay(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, matchesResponse{Day: data.day, Matches: data.matches})
}

func (s *Server) apiPlayer(w http.ResponseWriter, r *http.Request) {
	data, ok := s.apiLoadDay(w, r)
	if !ok {
		return
	}
	player := playerParam(r)
	if !knownPlayer(data, player) {
		writeError(w, http.StatusNotFound, "unknown player")
		return
	}
	analysis := stats.Analyze(player, data.matches)
	writeJSON(w, http.StatusOK, playerResponse{
		Day:             data.day,
		Player:          player,
		Regular:         data.isRegular(player),
		WinRate:         analysis.Summary.WinRate(),
		MVPRate:         analysis.Summary.MVPRate(),
		GoalsPerMatch:   analysis.Summary.GoalsPerMatch(),
		AssistsPerMatch: analysis.Summary.AssistsPerMatch(),
		Analysis:        analysis,
	})
}

func (s *Server) apiCompare(w http.ResponseWriter, r *http.Request) {
	data, ok := s.apiLoadDay(w, r)
	if !ok {
		return
	}
	comparison, err := stats.Compare(comparedPlayers(r), data.matches)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// apiCreateMatch accepts one raw match record in either lineup layout. The
// day may come from the record itself or from ?day=.
func (s *Server) apiCreateMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRecordBytes)
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	match, err := lineup.ParseRecord(raw)
	switch {
	case errors.Is(err, lineup.ErrUnknownShape):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if match.Day == "" {
		if day, ok := model.ParseDay(r.URL.Query().Get("day")); ok {
			match.Day = day
		}
	}
	if !match.Outcome.Known() {
		writeError(w, http.StatusBadRequest, "unknown outcome "+strings.TrimSpace(string(match.Outcome)))
		return
	}
	if _, exists := s.store.GetMatch(match.ID); match.ID != "" && exists {
		writeError(w, http.StatusConflict, "match already exists")
		return
	}
	created, err := s.store.CreateMatch(match)
	if err != nil {
		if errors.Is(err, store.ErrInvalidMatch) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logError(r, err)
		writeError(w, http.StatusServiceUnavailable, "could not save match")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
