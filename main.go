package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futsal-app/internal/config"
	"futsal-app/internal/ratelimit"
	"futsal-app/internal/store"
	"futsal-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

//go:embed templates/* templates/partials/* static/css/*
var content embed.FS

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}
	cfg := config.LoadConfig()

	templates, err := web.NewTemplates(content)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	appStore, err := store.Open(store.Options{
		PostgresDSN:           cfg.Store.PostgresDSN,
		PostgresMigrationsDir: cfg.Store.PostgresMigrationsDir,
		SQLitePath:            cfg.Store.SQLitePath,
		SQLiteMigrationsDir:   cfg.Store.SQLiteMigrationsDir,
		Seed:                  !cfg.IsProd(),
	})
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer appStore.Close()

	switch {
	case cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "":
		if _, err := store.EnsureAdmin(appStore, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			log.Fatalf("admin bootstrap: %v", err)
		}
	case cfg.Auth.AdminEmail != "":
		log.Printf("admin bootstrap skipped: ADMIN_PASSWORD is not set for %s", cfg.Auth.AdminEmail)
	}

	limiter, closeLimiter := newLimiter(cfg)
	defer closeLimiter()

	server := web.NewServer(appStore, templates, limiter, web.Options{
		DefaultDay:    cfg.DefaultDay,
		CORSOrigins:   cfg.Server.CORSOrigins,
		SecureCookies: cfg.IsProd(),
		Dev:           !cfg.IsProd(),
	})
	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("static fs: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Mount("/", server.Routes())

	if cfg.Server.Lambda {
		log.Println("starting in lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// newLimiter prefers Redis so every instance shares one login budget, and
// falls back to process memory when Redis is not configured or unreachable.
func newLimiter(cfg *config.Config) (ratelimit.Limiter, func()) {
	maxAttempts, window := cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
		if err == nil {
			log.Println("login limiter: redis")
			return ratelimit.NewRedisLimiter(client, maxAttempts, window), func() { _ = client.Close() }
		}
		log.Printf("login limiter: redis unavailable, using memory: %v", err)
	}
	return ratelimit.NewMemoryLimiter(maxAttempts, window), func() {}
}
