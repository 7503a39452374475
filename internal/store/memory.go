package store

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"futsal-app/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]model.User
	matches  map[string]model.Match
	regulars map[model.DayCategory]map[string]bool
}

type MemoryOptions struct {
	Seed bool
}

func NewMemoryStore(opts MemoryOptions) *MemoryStore {
	s := &MemoryStore{
		users:    make(map[string]model.User),
		matches:  make(map[string]model.Match),
		regulars: make(map[model.DayCategory]map[string]bool),
	}
	if opts.Seed {
		seedData(s)
	}
	return s
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (s *MemoryStore) GetUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *MemoryStore) GetUserByEmail(email string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *MemoryStore) CreateUser(user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return model.User{}, ErrEmailTaken
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) ListMatches(day model.DayCategory) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []model.Match{}
	for _, m := range s.matches {
		if m.Day == day {
			matches = append(matches, cloneMatch(m))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.After(matches[j].Date)
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

func (s *MemoryStore) GetMatch(id string) (model.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return model.Match{}, false
	}
	return cloneMatch(m), true
}

func (s *MemoryStore) CreateMatch(match model.Match) (model.Match, error) {
	if err := validateMatch(match); err != nil {
		return model.Match{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}
	s.matches[match.ID] = cloneMatch(match)
	return match, nil
}

func (s *MemoryStore) UpdateMatch(match model.Match) error {
	if err := validateMatch(match); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.matches[match.ID]
	if !ok {
		return ErrNotFound
	}
	match.CreatedAt = existing.CreatedAt
	s.matches[match.ID] = cloneMatch(match)
	return nil
}

func (s *MemoryStore) DeleteMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return ErrNotFound
	}
	delete(s.matches, id)
	return nil
}

func (s *MemoryStore) ListRegulars(day model.DayCategory) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.regulars[day]))
	for name := range s.regulars[day] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) AddRegular(day model.DayCategory, name string) error {
	name = normalizeName(name)
	if name == "" {
		return errors.New("name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addRegularLocked(day, name)
	return nil
}

func (s *MemoryStore) addRegularLocked(day model.DayCategory, name string) {
	if s.regulars[day] == nil {
		s.regulars[day] = make(map[string]bool)
	}
	s.regulars[day][name] = true
}

func (s *MemoryStore) RemoveRegular(day model.DayCategory, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = normalizeName(name)
	if !s.regulars[day][name] {
		return ErrNotFound
	}
	delete(s.regulars[day], name)
	return nil
}

func cloneMatch(m model.Match) model.Match {
	m.Blue = append([]model.Participation{}, m.Blue...)
	m.Red = append([]model.Participation{}, m.Red...)
	return m
}

func hashPassword(password string) string {
	if password == "" {
		return ""
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

// Seed accounts and rosters. The admin logs in with password123.
const (
	seedAdminEmail = "admin@liga.local"
	seedPassword   = "password123"
	seedWeeks      = 12
	seedSideSize   = 5
)

var seedRosters = map[model.DayCategory]struct {
	regulars []string
	guests   []string
	start    time.Time
}{
	model.DayMonday: {
		regulars: []string{"Álvaro", "Bruno", "Carlos", "Diego", "Edu", "Fran", "Gonzalo", "Hugo", "Iván", "Javi"},
		guests:   []string{"Kike", "Luis", "Mario"},
		start:    time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC),
	},
	model.DayThursday: {
		regulars: []string{"Adrián", "Borja", "César", "Dani", "Emilio", "Fede", "Guille", "Héctor", "Iker", "Jorge"},
		guests:   []string{"Lucas", "Manu", "Nico"},
		start:    time.Date(2024, time.September, 5, 0, 0, 0, 0, time.UTC),
	},
}

func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(42))

	admin := model.User{
		ID:           uuid.NewString(),
		Name:         "Administración",
		Email:        seedAdminEmail,
		PasswordHash: hashPassword(seedPassword),
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	s.users[admin.ID] = admin

	for _, day := range model.Days {
		roster := seedRosters[day]
		for _, name := range roster.regulars {
			s.addRegularLocked(day, name)
		}
		pool := append(append([]string{}, roster.regulars...), roster.guests...)
		for week := 0; week < seedWeeks; week++ {
			match := seedMatch(rng, day, roster.start.AddDate(0, 0, 7*week), pool)
			s.matches[match.ID] = match
		}
	}
}

func seedMatch(rng *rand.Rand, day model.DayCategory, date time.Time, pool []string) model.Match {
	picked := append([]string{}, pool...)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	blue := seedSide(rng, picked[:seedSideSize])
	red := seedSide(rng, picked[seedSideSize:2*seedSideSize])

	blueScore, redScore := sideGoals(blue), sideGoals(red)
	blue[len(blue)-1].Conceded = redScore
	red[len(red)-1].Conceded = blueScore

	match := model.Match{
		ID:        uuid.NewString(),
		Day:       day,
		Date:      date,
		BlueScore: blueScore,
		RedScore:  redScore,
		MVP:       "-",
		Blue:      blue,
		Red:       red,
		CreatedAt: date,
	}
	switch {
	case blueScore > redScore:
		match.Outcome = model.OutcomeBlue
		match.MVP = topScorer(blue)
	case redScore > blueScore:
		match.Outcome = model.OutcomeRed
		match.MVP = topScorer(red)
	default:
		match.Outcome = model.OutcomeDraw
	}
	return match
}

// seedSide gives random goals and assists; the last player keeps goal.
func seedSide(rng *rand.Rand, names []string) []model.Participation {
	side := make([]model.Participation, 0, len(names))
	for i, name := range names {
		p := model.Participation{Player: name}
		if i < len(names)-1 {
			p.Goals = rng.Intn(4)
			p.Assists = rng.Intn(3)
		}
		side = append(side, p)
	}
	return side
}

func sideGoals(side []model.Participation) int {
	total := 0
	for _, p := range side {
		total += p.Goals
	}
	return total
}

func topScorer(side []model.Participation) string {
	best := side[0]
	for _, p := range side[1:] {
		if p.Goals > best.Goals {
			best = p
		}
	}
	return best.Player
}
