package web

import (
	"log"
	"net"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r).IsAdmin() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	view := AuthView{BaseView: s.baseView(r, s.opts.DefaultDay, "Acceso administración", "admin")}
	if err := s.templates.Render(w, "login.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "datos no válidos", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	view := AuthView{
		BaseView: s.baseView(r, s.opts.DefaultDay, "Acceso administración", "admin"),
		Email:    email,
	}

	key := clientIP(r)
	allowed, err := s.limiter.Allow(r.Context(), key)
	if err != nil {
		// A broken limiter must not lock the admin out.
		log.Printf("web: login limiter: %v", err)
		allowed = true
	}
	if !allowed {
		view.Error = "Demasiados intentos. Espera unos minutos."
		if err := s.templates.RenderStatus(w, http.StatusTooManyRequests, "login.html", view); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	user, ok := s.store.GetUserByEmail(email)
	if !ok || !user.IsAdmin() || !checkPassword(user.PasswordHash, password) {
		view.Error = "Email o contraseña incorrectos"
		if err := s.templates.RenderStatus(w, http.StatusUnauthorized, "login.html", view); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if err := s.limiter.Reset(r.Context(), key); err != nil {
		log.Printf("web: login limiter reset: %v", err)
	}
	s.setAuthCookie(w, user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	http.Redirect(w, r, "/admin/login?notice=logged_out", http.StatusSeeOther)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func checkPassword(hash string, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
