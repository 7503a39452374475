package web

import (
	"context"
	"net/http"
	"time"

	"futsal-app/internal/model"

	"github.com/go-chi/chi/v5"
)

const adminCookieName = "futsal_admin_id"

type dayKey struct{}

// withDay resolves the {day} segment and answers 404 for unknown nights.
func withDay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		day, ok := model.ParseDay(chi.URLParam(r, "day"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), dayKey{}, day)))
	})
}

func withDayJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		day, ok := model.ParseDay(chi.URLParam(r, "day"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown day")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), dayKey{}, day)))
	})
}

func dayFrom(r *http.Request) model.DayCategory {
	day, _ := r.Context().Value(dayKey{}).(model.DayCategory)
	return day
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.currentUser(r).IsAdmin() {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
	})
}

func (s *Server) requireAdminJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.currentUser(r).IsAdmin() {
			next.ServeHTTP(w, r)
			return
		}
		writeError(w, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *Server) currentUser(r *http.Request) model.User {
	cookie, err := r.Cookie(adminCookieName)
	if err == nil {
		if user, ok := s.store.GetUser(cookie.Value); ok {
			return user
		}
	}
	return model.User{}
}

func (s *Server) setAuthCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    userID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
