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
	_ "modernc.org/sqlite"
)

const sqliteDateLayout = "2006-01-02"

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	// MigrationsDir overrides the embedded migrations.
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := applyMigrations(db, sqliteDialect, opts.MigrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListUsers() []model.User {
	rows, err := s.db.Query(`SELECT id, name, email, password_hash, role, created_at FROM users`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanSQLiteUserRow(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (s *SQLiteStore) GetUser(id string) (model.User, bool) {
	u, err := scanSQLiteUserRow(s.db.QueryRow(`SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = ?`, id))
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) GetUserByEmail(email string) (model.User, bool) {
	u, err := scanSQLiteUserRow(s.db.QueryRow(`SELECT id, name, email, password_hash, role, created_at FROM users WHERE lower(email) = lower(?) LIMIT 1`, email))
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) CreateUser(user model.User) (model.User, error) {
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
	if _, ok := s.GetUserByEmail(user.Email); ok {
		return model.User{}, ErrEmailTaken
	}
	_, err := s.db.Exec(`INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES (?,?,?,?,?,?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), timeValueString(user.CreatedAt),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *SQLiteStore) ListMatches(day model.DayCategory) ([]model.Match, error) {
	rows, err := s.db.Query(`SELECT id, day, played_on, outcome, blue_score, red_score, mvp, lineup_json, created_at FROM matches WHERE day = ? ORDER BY played_on DESC, created_at DESC`, string(day))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		match, err := scanSQLiteMatchRow(rows)
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

func (s *SQLiteStore) GetMatch(id string) (model.Match, bool) {
	row := s.db.QueryRow(`SELECT id, day, played_on, outcome, blue_score, red_score, mvp, lineup_json, created_at FROM matches WHERE id = ?`, id)
	match, err := scanSQLiteMatchRow(row)
	if err != nil && !unreadable(err) {
		return model.Match{}, false
	}
	return match, true
}

func (s *SQLiteStore) CreateMatch(match model.Match) (model.Match, error) {
	if err := validateMatch(match); err != nil {
		return model.Match{}, err
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO matches (id, day, played_on, outcome, blue_score, red_score, mvp, lineup_json, created_at) VALUES (?,?,?,?,?,?,?,?,?)`,
		match.ID, string(match.Day), match.Date.Format(sqliteDateLayout), string(match.Outcome), match.BlueScore, match.RedScore, match.MVP, encodeLineups(match), timeValueString(match.CreatedAt),
	)
	if err != nil {
		return model.Match{}, err
	}
	return match, nil
}

func (s *SQLiteStore) UpdateMatch(match model.Match) error {
	if err := validateMatch(match); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE matches SET day = ?, played_on = ?, outcome = ?, blue_score = ?, red_score = ?, mvp = ?, lineup_json = ? WHERE id = ?`,
		string(match.Day), match.Date.Format(sqliteDateLayout), string(match.Outcome), match.BlueScore, match.RedScore, match.MVP, encodeLineups(match), match.ID,
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

func (s *SQLiteStore) DeleteMatch(id string) error {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListRegulars(day model.DayCategory) ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM regulars WHERE day = ? ORDER BY name`, string(day))
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

func (s *SQLiteStore) AddRegular(day model.DayCategory, name string) error {
	name = normalizeName(name)
	if name == "" {
		return errors.New("name is required")
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO regulars (day, name) VALUES (?, ?)`, string(day), name)
	return err
}

func (s *SQLiteStore) RemoveRegular(day model.DayCategory, name string) error {
	res, err := s.db.Exec(`DELETE FROM regulars WHERE day = ? AND name = ?`, string(day), normalizeName(name))
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSQLiteUserRow(scanner interface{ Scan(dest ...any) error }) (model.User, error) {
	var u model.User
	var role string
	var createdAt sql.NullString
	if err := scanner.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &createdAt); err != nil {
		return model.User{}, err
	}
	u.Role = model.UserRole(role)
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			u.CreatedAt = parsed
		}
	}
	return u, nil
}

func scanSQLiteMatchRow(scanner interface{ Scan(dest ...any) error }) (model.Match, error) {
	var match model.Match
	var day, playedOn, outcome string
	var lineupJSON []byte
	var createdAt sql.NullString
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
	if parsed, err := time.Parse(sqliteDateLayout, playedOn); err == nil {
		match.Date = parsed
	} else if parsed, ok := parseTimeString(playedOn); ok {
		match.Date = parsed
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			match.CreatedAt = parsed
		}
	}
	lineups, err := decodeLineups(match.ID, lineupJSON)
	match.Blue, match.Red = lineups.Blue, lineups.Red
	return match, err
}

func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
