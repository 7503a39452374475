package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"futsal-app/internal/model"
	"futsal-app/internal/store"

	"github.com/go-chi/chi/v5"
)

func (s *Server) adminDay(r *http.Request) model.DayCategory {
	if day, ok := model.ParseDay(r.URL.Query().Get("day")); ok {
		return day
	}
	return s.opts.DefaultDay
}

func adminRedirect(w http.ResponseWriter, r *http.Request, day model.DayCategory, notice string) {
	target := "/admin?day=" + url.QueryEscape(string(day))
	if notice != "" {
		target += "&notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	day := s.adminDay(r)
	data, err := s.loadDay(day)
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	view := AdminView{
		BaseView: s.baseView(r, day, "Administración "+day.Label(), "admin"),
		Matches:  matchViews(data.matches),
		Regulars: data.regulars,
	}
	for i := range view.Days {
		view.Days[i].URL = "/admin?day=" + string(model.Days[i])
	}
	for _, name := range data.players() {
		if !data.isRegular(name) {
			view.Guests = append(view.Guests, name)
		}
	}
	if err := s.templates.Render(w, "admin.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleMatchNew(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	match := model.Match{
		Day:  s.adminDay(r),
		Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	view := s.matchFormView(r, match, "Nuevo partido", "/admin/matches")
	if err := s.templates.Render(w, "match_form.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "datos no válidos", http.StatusBadRequest)
		return
	}
	match, problem := parseMatchForm(r)
	if problem != "" {
		s.renderMatchForm(w, r, match, "Nuevo partido", "/admin/matches", problem)
		return
	}
	if _, err := s.store.CreateMatch(match); err != nil {
		if errors.Is(err, store.ErrInvalidMatch) {
			s.renderMatchForm(w, r, match, "Nuevo partido", "/admin/matches", err.Error())
			return
		}
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	adminRedirect(w, r, match.Day, "match_added")
}

func (s *Server) handleMatchEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "matchID")
	match, ok := s.store.GetMatch(id)
	if !ok {
		s.renderError(w, r, http.StatusNotFound, errors.New("match "+id+" not found"))
		return
	}
	view := s.matchFormView(r, match, "Editar partido", "/admin/matches/"+url.PathEscape(id))
	if err := s.templates.Render(w, "match_form.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "matchID")
	if _, ok := s.store.GetMatch(id); !ok {
		s.renderError(w, r, http.StatusNotFound, errors.New("match "+id+" not found"))
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "datos no válidos", http.StatusBadRequest)
		return
	}
	action := "/admin/matches/" + url.PathEscape(id)
	match, problem := parseMatchForm(r)
	match.ID = id
	if problem != "" {
		s.renderMatchForm(w, r, match, "Editar partido", action, problem)
		return
	}
	if err := s.store.UpdateMatch(match); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.renderError(w, r, http.StatusNotFound, err)
		case errors.Is(err, store.ErrInvalidMatch):
			s.renderMatchForm(w, r, match, "Editar partido", action, err.Error())
		default:
			s.renderError(w, r, http.StatusServiceUnavailable, err)
		}
		return
	}
	adminRedirect(w, r, match.Day, "match_updated")
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "matchID")
	match, ok := s.store.GetMatch(id)
	if !ok {
		s.renderError(w, r, http.StatusNotFound, errors.New("match "+id+" not found"))
		return
	}
	if err := s.store.DeleteMatch(id); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.renderError(w, r, status, err)
		return
	}
	adminRedirect(w, r, match.Day, "match_deleted")
}

func (s *Server) handleRegularAdd(w http.ResponseWriter, r *http.Request) {
	s.changeRegular(w, r, s.store.AddRegular, "regular_added")
}

func (s *Server) handleRegularRemove(w http.ResponseWriter, r *http.Request) {
	s.changeRegular(w, r, s.store.RemoveRegular, "regular_removed")
}

func (s *Server) changeRegular(w http.ResponseWriter, r *http.Request, change func(model.DayCategory, string) error, notice string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "datos no válidos", http.StatusBadRequest)
		return
	}
	day, ok := model.ParseDay(r.FormValue("day"))
	name := strings.TrimSpace(r.FormValue("name"))
	if !ok || name == "" {
		http.Error(w, "faltan el día o el nombre", http.StatusBadRequest)
		return
	}
	if err := change(day, name); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.renderError(w, r, status, err)
		return
	}
	adminRedirect(w, r, day, notice)
}

func (s *Server) renderMatchForm(w http.ResponseWriter, r *http.Request, match model.Match, heading, action, problem string) {
	view := s.matchFormView(r, match, heading, action)
	view.Error = problem
	if err := s.templates.RenderStatus(w, http.StatusUnprocessableEntity, "match_form.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
