package store

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"futsal-app/internal/lineup"
	"futsal-app/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("email already exists")
	ErrInvalidMatch = errors.New("invalid match")
)

type Store interface {
	ListUsers() []model.User
	GetUser(id string) (model.User, bool)
	GetUserByEmail(email string) (model.User, bool)
	CreateUser(user model.User) (model.User, error)

	// ListMatches returns the matches of one day category, newest first.
	ListMatches(day model.DayCategory) ([]model.Match, error)
	GetMatch(id string) (model.Match, bool)
	CreateMatch(match model.Match) (model.Match, error)
	UpdateMatch(match model.Match) error
	DeleteMatch(id string) error

	// ListRegulars returns the regular roster of a day category sorted by name.
	ListRegulars(day model.DayCategory) ([]string, error)
	AddRegular(day model.DayCategory, name string) error
	RemoveRegular(day model.DayCategory, name string) error

	Close() error
}

type Options struct {
	PostgresDSN           string
	PostgresMigrationsDir string
	SQLitePath            string
	SQLiteMigrationsDir   string
	// Seed fills an in-memory store with demo data.
	Seed bool
}

// Open picks Postgres when a DSN is set, then SQLite when a path is set, and
// falls back to memory.
func Open(opts Options) (Store, error) {
	if dsn := strings.TrimSpace(opts.PostgresDSN); dsn != "" {
		pgStore, err := NewPostgresStore(dsn, PostgresOptions{MigrationsDir: opts.PostgresMigrationsDir})
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		log.Println("store: postgres")
		return pgStore, nil
	}
	if path := strings.TrimSpace(opts.SQLitePath); path != "" {
		sqliteStore, err := NewSQLiteStore(path, SQLiteOptions{MigrationsDir: opts.SQLiteMigrationsDir})
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		log.Printf("store: sqlite at %s", path)
		return sqliteStore, nil
	}
	log.Println("store: memory")
	return NewMemoryStore(MemoryOptions{Seed: opts.Seed}), nil
}

func validateMatch(m model.Match) error {
	if _, ok := model.ParseDay(string(m.Day)); !ok {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidMatch, m.Day)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidMatch)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// decodeLineups accepts both stored lineup shapes. A row that cannot be read
// comes back with empty rosters and an error wrapping lineup.ErrUnknownShape.
func decodeLineups(matchID string, raw []byte) (model.Lineups, error) {
	lineups, err := lineup.Normalize(raw)
	if err != nil {
		return lineups, fmt.Errorf("match %s: %w", matchID, err)
	}
	return lineups, nil
}

// unreadable reports whether a scan failed only because of the lineup column.
// Listings skip such rows; single lookups still return them for editing.
func unreadable(err error) bool {
	return errors.Is(err, lineup.ErrUnknownShape)
}

func skipUnreadable(err error) {
	log.Printf("store: skipping row: %v", err)
}

func encodeLineups(m model.Match) string {
	return string(lineup.Encode(m.Lineups()))
}

// EnsureAdmin creates an admin account for email unless one already exists.
// An existing account is returned as is, whatever its role.
func EnsureAdmin(s Store, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, errors.New("admin email and password are required")
	}
	if user, ok := s.GetUserByEmail(email); ok {
		return user, nil
	}
	hash := hashPassword(password)
	if hash == "" {
		return model.User{}, errors.New("could not hash admin password")
	}
	return s.CreateUser(model.User{
		Name:         "Administración",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
}
