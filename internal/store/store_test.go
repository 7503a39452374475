package store

import (
	"errors"
	"testing"
	"time"

	"futsal-app/internal/model"
)

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", SQLiteOptions{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// backends runs fn against every store that needs no external service.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore(MemoryOptions{})) })
	t.Run("sqlite", func(t *testing.T) { fn(t, openSQLite(t)) })
}

func sampleMatch(day model.DayCategory, date time.Time) model.Match {
	return model.Match{
		Day:       day,
		Date:      date,
		Outcome:   model.OutcomeBlue,
		BlueScore: 3,
		RedScore:  1,
		MVP:       "Ana",
		Blue:      []model.Participation{{Player: "Ana", Goals: 2, Assists: 1}, {Player: "Bea", Goals: 1}},
		Red:       []model.Participation{{Player: "Carla", Goals: 1, Conceded: 3}},
	}
}

func TestMatchLifecycle(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		created, err := s.CreateMatch(sampleMatch(model.DayMonday, time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected generated id")
		}

		got, ok := s.GetMatch(created.ID)
		if !ok {
			t.Fatal("match not found after create")
		}
		if got.MVP != "Ana" || got.BlueScore != 3 || len(got.Blue) != 2 || len(got.Red) != 1 {
			t.Fatalf("unexpected match: %+v", got)
		}
		if got.Blue[0] != (model.Participation{Player: "Ana", Goals: 2, Assists: 1}) {
			t.Fatalf("unexpected participation: %+v", got.Blue[0])
		}
		if !got.Date.Equal(time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected date: %v", got.Date)
		}

		got.Outcome = model.OutcomeDraw
		got.Red = append(got.Red, model.Participation{Player: "Dani"})
		if err := s.UpdateMatch(got); err != nil {
			t.Fatalf("update: %v", err)
		}
		updated, _ := s.GetMatch(created.ID)
		if updated.Outcome != model.OutcomeDraw || len(updated.Red) != 2 {
			t.Fatalf("update not persisted: %+v", updated)
		}

		if err := s.DeleteMatch(created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, ok := s.GetMatch(created.ID); ok {
			t.Fatal("match still present after delete")
		}
		if err := s.DeleteMatch(created.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		missing := sampleMatch(model.DayMonday, time.Now())
		missing.ID = "missing"
		if err := s.UpdateMatch(missing); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound on update, got %v", err)
		}
	})
}

func TestListMatchesFiltersByDayNewestFirst(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		base := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
		for _, offset := range []int{7, 0, 14} {
			if _, err := s.CreateMatch(sampleMatch(model.DayMonday, base.AddDate(0, 0, offset))); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		if _, err := s.CreateMatch(sampleMatch(model.DayThursday, base.AddDate(0, 0, 3))); err != nil {
			t.Fatalf("create: %v", err)
		}

		monday, err := s.ListMatches(model.DayMonday)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(monday) != 3 {
			t.Fatalf("expected 3 monday matches, got %d", len(monday))
		}
		for i := 1; i < len(monday); i++ {
			if monday[i].Date.After(monday[i-1].Date) {
				t.Fatalf("matches not newest first: %v then %v", monday[i-1].Date, monday[i].Date)
			}
		}
		thursday, _ := s.ListMatches(model.DayThursday)
		if len(thursday) != 1 {
			t.Fatalf("expected 1 thursday match, got %d", len(thursday))
		}
	})
}

func TestCreateMatchValidates(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		bad := sampleMatch(model.DayCategory("domingo"), time.Now())
		if _, err := s.CreateMatch(bad); !errors.Is(err, ErrInvalidMatch) {
			t.Fatalf("expected ErrInvalidMatch for day, got %v", err)
		}
		bad = sampleMatch(model.DayMonday, time.Time{})
		if _, err := s.CreateMatch(bad); !errors.Is(err, ErrInvalidMatch) {
			t.Fatalf("expected ErrInvalidMatch for date, got %v", err)
		}
	})
}

func TestRegulars(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		for _, name := range []string{"Carla", "  Ana  ", "Carla"} {
			if err := s.AddRegular(model.DayMonday, name); err != nil {
				t.Fatalf("add %q: %v", name, err)
			}
		}
		if err := s.AddRegular(model.DayMonday, "   "); err == nil {
			t.Fatal("expected error for empty name")
		}
		got, err := s.ListRegulars(model.DayMonday)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0] != "Ana" || got[1] != "Carla" {
			t.Fatalf("unexpected regulars: %v", got)
		}
		if other, _ := s.ListRegulars(model.DayThursday); len(other) != 0 {
			t.Fatalf("regulars leaked across days: %v", other)
		}
		if err := s.RemoveRegular(model.DayMonday, "Ana"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if err := s.RemoveRegular(model.DayMonday, "Ana"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUsers(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		u, err := s.CreateUser(model.User{Name: "Admin", Email: "Admin@Liga.local", PasswordHash: "x", Role: model.RoleAdmin})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		byEmail, ok := s.GetUserByEmail("admin@liga.local")
		if !ok || byEmail.ID != u.ID || !byEmail.IsAdmin() {
			t.Fatalf("lookup by email failed: %+v", byEmail)
		}
		if _, ok := s.GetUser(u.ID); !ok {
			t.Fatal("lookup by id failed")
		}
		if _, err := s.CreateUser(model.User{Email: "ADMIN@liga.local"}); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
		viewer, err := s.CreateUser(model.User{Name: "Viewer", Email: "v@liga.local"})
		if err != nil {
			t.Fatalf("create viewer: %v", err)
		}
		if viewer.Role != model.RoleViewer {
			t.Fatalf("expected default viewer role, got %s", viewer.Role)
		}
		if users := s.ListUsers(); len(users) != 2 {
			t.Fatalf("expected 2 users, got %d", len(users))
		}
	})
}

func TestSQLiteReadsLegacyNestedLineups(t *testing.T) {
	s := openSQLite(t)
	nested := `{"teams":[{"blue":[{"lineup":[{"member":[{"nombre":"Ana","goles":2,"asistencias":1,"portero":0}]}]}],"red":[{"lineup":[{"member":[{"nombre":"Bea","goles":0,"asistencias":0,"portero":2}]}]}]}]}`
	_, err := s.db.Exec(`INSERT INTO matches (id, day, played_on, outcome, blue_score, red_score, mvp, lineup_json, created_at) VALUES (?,?,?,?,?,?,?,?,?)`,
		"legacy", "lunes", "2023-05-08", "blue", 2, 0, "Ana", nested, "2023-05-08T20:00:00Z")
	if err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}
	_, err = s.db.Exec(`INSERT INTO matches (id, day, played_on, outcome, lineup_json) VALUES (?,?,?,?,?)`,
		"broken", "lunes", "2023-05-01", "red", `{"something":"else"}`)
	if err != nil {
		t.Fatalf("insert broken row: %v", err)
	}

	matches, err := s.ListMatches(model.DayMonday)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected the unreadable row to be skipped, got %d matches", len(matches))
	}
	legacy := matches[0]
	if legacy.ID != "legacy" || len(legacy.Blue) != 1 || legacy.Blue[0].Goals != 2 || legacy.Red[0].Conceded != 2 {
		t.Fatalf("legacy lineup not normalized: %+v", legacy)
	}

	broken, ok := s.GetMatch("broken")
	if !ok {
		t.Fatal("unreadable row should still be reachable by id")
	}
	if len(broken.Blue) != 0 || len(broken.Red) != 0 || broken.Outcome != model.OutcomeRed {
		t.Fatalf("unexpected unreadable row: %+v", broken)
	}
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	s := openSQLite(t)
	if err := applyMigrations(s.db, sqliteDialect, ""); err != nil {
		t.Fatalf("second run: %v", err)
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", count)
	}
}

func TestMemorySeed(t *testing.T) {
	s := NewMemoryStore(MemoryOptions{Seed: true})
	admin, ok := s.GetUserByEmail(seedAdminEmail)
	if !ok || !admin.IsAdmin() {
		t.Fatalf("seed admin missing: %+v", admin)
	}
	for _, day := range model.Days {
		matches, _ := s.ListMatches(day)
		if len(matches) != seedWeeks {
			t.Fatalf("%s: expected %d matches, got %d", day, seedWeeks, len(matches))
		}
		for _, m := range matches {
			if m.BlueScore > m.RedScore && m.Outcome != model.OutcomeBlue {
				t.Fatalf("outcome does not match score: %+v", m)
			}
		}
		regulars, _ := s.ListRegulars(day)
		if len(regulars) != 10 {
			t.Fatalf("%s: expected 10 regulars, got %d", day, len(regulars))
		}
	}
}

func TestOpenFallsBackToMemory(t *testing.T) {
	s, err := Open(Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}
	s, err = Open(Options{SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", s)
	}
}

func TestEnsureAdmin(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		first, err := EnsureAdmin(s, "boss@liga.local", "secret")
		if err != nil {
			t.Fatalf("ensure admin: %v", err)
		}
		if !first.IsAdmin() || first.PasswordHash == "" {
			t.Fatalf("expected hashed admin, got %+v", first)
		}
		again, err := EnsureAdmin(s, "Boss@liga.local", "other")
		if err != nil {
			t.Fatalf("ensure admin twice: %v", err)
		}
		if again.ID != first.ID {
			t.Fatalf("expected existing admin %s, got %s", first.ID, again.ID)
		}
		if _, err := EnsureAdmin(s, " ", "secret"); err == nil {
			t.Fatalf("expected error for blank email")
		}
	})
}
