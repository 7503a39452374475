package web

import (
	"net/http"

	"futsal-app/internal/model"
	"futsal-app/internal/ratelimit"
	"futsal-app/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Options struct {
	DefaultDay  model.DayCategory
	CORSOrigins []string
	// SecureCookies marks the admin cookie Secure; set it behind HTTPS.
	SecureCookies bool
	// Dev shows the demo banner on every page.
	Dev bool
}

type Server struct {
	store     store.Store
	templates *Templates
	limiter   ratelimit.Limiter
	opts      Options
}

func NewServer(store store.Store, templates *Templates, limiter ratelimit.Limiter, opts Options) *Server {
	if _, ok := model.ParseDay(string(opts.DefaultDay)); !ok {
		opts.DefaultDay = model.DayMonday
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{store: store, templates: templates, limiter: limiter, opts: opts}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth)
	r.Get("/", s.handleHome)

	r.Route("/days/{day}", func(r chi.Router) {
		r.Use(withDay)
		r.Get("/", s.handleStandings)
		r.Get("/matches", s.handleMatches)
		r.Get("/stats", s.handleSeasonStats)
		r.Get("/players/{player}", s.handlePlayer)
		r.Get("/compare", s.handleCompare)
	})

	r.Get("/admin/login", s.handleLogin)
	r.Post("/admin/login", s.handleLoginPost)
	r.Post("/admin/logout", s.handleLogout)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/admin", s.handleAdmin)
		r.Get("/admin/matches/new", s.handleMatchNew)
		r.Post("/admin/matches", s.handleMatchCreate)
		r.Get("/admin/matches/{matchID}/edit", s.handleMatchEdit)
		r.Post("/admin/matches/{matchID}", s.handleMatchUpdate)
		r.Post("/admin/matches/{matchID}/delete", s.handleMatchDelete)
		r.Post("/admin/regulars", s.handleRegularAdd)
		r.Post("/admin/regulars/remove", s.handleRegularRemove)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Route("/days/{day}", func(r chi.Router) {
			r.Use(withDayJSON)
			r.Get("/standings", s.apiStandings)
			r.Get("/season", s.apiSeason)
			r.Get("/matches", s.apiMatches)
			r.Get("/players/{player}", s.apiPlayer)
			r.Get("/compare", s.apiCompare)
		})
		r.With(s.requireAdminJSON).Post("/matches", s.apiCreateMatch)
	})

	return r
}
