package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"futsal-app/internal/model"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	// MigrationsDir overrides the embedded migrations.
	MigrationsDir string
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := applyMigrations(db, postgresDialect, opts.MigrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) ListUsers() []model.User {
	rows, err := s.db.Query(`SELECT id, name, email, password_hash, role, created_at FROM users`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (s *PostgresStore) GetUser(id string) (model.User, bool) {
	u, err := scanUserRow(s.db.QueryRow(`SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = $1`, id))
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *PostgresStore) GetUserByEmail(email string) (model.User, bool) {
	u, err := scanUserRow(s.db.QueryRow(`SELECT id, name, email, password_hash, role, created_at FROM users WHERE lower(email) = lower($1) LIMIT 1`, email))
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *PostgresStore) CreateUser(user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if strings.TrimSpace(user.Email) == "" {
		return model.User{}, errors.New("email is required")
	}
	if user.Role == "" {
		user.Role = model.RoleViewer
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(err.Error(), "23505") {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *PostgresStore) ListMatches(day model.DayCategory) ([]model.Match, error) {
	rows, err := s.db.Query(`SELECT id, day, played_on, outcome, blue_score, red_score, mvp, lineup_json, created_at FROM matches WHERE day = $1 ORDER BY played_on DESC, created_at DESC`, string(day))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		match, err := scanMatchRow(rows)
		if unreadable(err) {
			skipUnreadable(err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (s *PostgresStore) GetMatch(id string) (model.Match, bool) {
	row := s.db.QueryRow(`SELECT id, day, played_on, outcome, blue_score, red_score, mvp, lineup_json, created_at FROM matches WHERE id = $1`, id)
	match, err := scanMatchRow(row)
	if err != nil && !unreadable(err) {
		return model.Match{}, false
	}
	return match, true
}

func (s *PostgresStore) CreateMatch(match model.Match) (model.Match, error) {
	if err := validateMatch(match); err != nil {
		return model.Match{}, err
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO matches (id, day, played_on, outcome, blue_score, red_score, mvp, lineup_json, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		match.ID, string(match.Day), match.Date, string(match.Outcome), match.BlueScore, match.RedScore, match.MVP, encodeLineups(match), match.CreatedAt,
	)
	if err != nil {
		return model.Match{}, err
	}
	return match, nil
}

func (s *PostgresStore) UpdateMatch(match model.Match) error {
	if err := validateMatch(match); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE matches SET day = $1, played_on = $2, outcome = $3, blue_score = $4, red_score = $5, mvp = $6, lineup_json = $7 WHERE id = $8`,
		string(match.Day), match.Date, string(match.Outcome), match.BlueScore, match.RedScore, match.MVP, encodeLineups(match), match.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteMatch(id string) error {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRegulars(day model.DayCategory) ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM regulars WHERE day = $1 ORDER BY name`, string(day))
	if err != nil {
		return nil, fmt.Errorf("list regulars: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan regular: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *PostgresStore) AddRegular(day model.DayCategory, name string) error {
	name = normalizeName(name)
	if name == "" {
		return errors.New("name is required")
	}
	_, err := s.db.Exec(`INSERT INTO regulars (day, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`, string(day), name)
	return err
}

func (s *PostgresStore) RemoveRegular(day model.DayCategory, name string) error {
	res, err := s.db.Exec(`DELETE FROM regulars WHERE day = $1 AND name = $2`, string(day), normalizeName(name))
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUserRow(scanner interface{ Scan(dest ...any) error }) (model.User, error) {
	var u model.User
	var role string
	var createdAt sql.NullTime
	if err := scanner.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &createdAt); err != nil {
		return model.User{}, err
	}
	u.Role = model.UserRole(role)
	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	return u, nil
}

func scanMatchRow(scanner interface{ Scan(dest ...any) error }) (model.Match, error) {
	var match model.Match
	var day, outcome string
	var playedOn time.Time
	var lineupJSON []byte
	var createdAt sql.NullTime
	if err := scanner.Scan(
		&match.ID,
		&day,
		&playedOn,
		&outcome,
		&match.BlueScore,
		&match.RedScore,
		&match.MVP,
		&lineupJSON,
		&createdAt,
	); err != nil {
		return model.Match{}, err
	}
	match.Day = model.DayCategory(day)
	match.Outcome = model.Outcome(outcome)
	match.Date = playedOn.UTC()
	if createdAt.Valid {
		match.CreatedAt = createdAt.Time
	}
	lineups, err := decodeLineups(match.ID, lineupJSON)
	match.Blue, match.Red = lineups.Blue, lineups.Red
	return match, err
}
