package web

import (
	"futsal-app/internal/model"
	"futsal-app/internal/stats"
)

type DayLink struct {
	Label  string
	URL    string
	Active bool
}

type BaseView struct {
	Title        string
	Day          model.DayCategory
	DayLabel     string
	Days         []DayLink
	Section      string
	CurrentUser  model.User
	IsAdmin      bool
	FlashSuccess string
	IsDev        bool
}

type StandingRowView struct {
	Rank      int
	Player    string
	PlayerURL string
	Points    string
	Matches   int
	Wins      int
	Draws     int
	Losses    int
	Goals     int
	Assists   int
	Conceded  int
	MVPs      int
	Top       bool
	Bottom    bool
	Regular   bool
}

type StandingsView struct {
	BaseView
	Rows       []StandingRowView
	MatchCount int
}

type ParticipationView struct {
	Player    string
	PlayerURL string
	Goals     int
	Assists   int
	Conceded  int
	MVP       bool
}

type MatchView struct {
	ID           string
	DateLabel    string
	OutcomeLabel string
	OutcomeClass string
	ScoreLine    string
	MVP          string
	Blue         []ParticipationView
	Red          []ParticipationView
	EditURL      string
	DeleteURL    string
}

type MatchesView struct {
	BaseView
	Matches []MatchView
}

type LeaderboardRowView struct {
	Rank      int
	Player    string
	PlayerURL string
	Value     int
}

type LeaderboardView struct {
	Title string
	Empty string
	Rows  []LeaderboardRowView
}

type SeasonView struct {
	BaseView
	Season stats.Season
	Boards []LeaderboardView
}

type FormEntryView struct {
	DateLabel   string
	ResultClass string
	ResultLabel string
	Goals       int
	Assists     int
}

type PlayerView struct {
	BaseView
	Player      string
	Regular     bool
	Analysis    stats.PlayerAnalysis
	StreakLabel string
	StreakClass string
	PartnerURL  string
	Form        []FormEntryView
	CompareURL  string
}

type CompareCellView struct {
	Text string
	Best bool
}

type CompareRowView struct {
	Label         string
	LowerIsBetter bool
	Cells         []CompareCellView
}

type CompareTableView struct {
	Players    []string
	PlayerURLs []string
	Rows       []CompareRowView
}

type CompareView struct {
	BaseView
	Candidates []string
	Selected   []string
	Table      *CompareTableView
	Error      string
}

type AuthView struct {
	BaseView
	Email string
	Error string
}

type AdminView struct {
	BaseView
	Matches  []MatchView
	Regulars []string
	// Guests are players seen in matches who are not regulars yet.
	Guests []string
}

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

type LineupRowView struct {
	Index    int
	Player   string
	Goals    int
	Assists  int
	Conceded int
}

type LineupSideView struct {
	Side  string
	Label string
	Rows  []LineupRowView
}

type MatchFormView struct {
	BaseView
	Heading    string
	Action     string
	Error      string
	DayOptions []OptionView
	Outcomes   []OptionView
	DateValue  string
	BlueScore  int
	RedScore   int
	MVP        string
	Sides      []LineupSideView
	Players    []string
}

type ErrorView struct {
	BaseView
	Message string
}
