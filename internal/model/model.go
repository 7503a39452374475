package model

import (
	"strings"
	"time"
)

type DayCategory string
type Outcome string
type Side string
type Result string
type UserRole string

const (
	DayMonday   DayCategory = "lunes"
	DayThursday DayCategory = "jueves"

	OutcomeBlue Outcome = "blue"
	OutcomeRed  Outcome = "red"
	OutcomeDraw Outcome = "draw"

	SideBlue Side = "blue"
	SideRed  Side = "red"

	ResultWin  Result = "win"
	ResultDraw Result = "draw"
	ResultLoss Result = "loss"

	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

// Days lists the league nights in display order.
var Days = []DayCategory{DayMonday, DayThursday}

func ParseDay(value string) (DayCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(DayMonday), "monday":
		return DayMonday, true
	case string(DayThursday), "thursday":
		return DayThursday, true
	}
	return "", false
}

func (d DayCategory) Label() string {
	switch d {
	case DayMonday:
		return "Lunes"
	case DayThursday:
		return "Jueves"
	}
	return string(d)
}

// ParseOutcome maps the tags used across historical records onto an Outcome.
// Unrecognised values are returned unchanged and ok is false.
func ParseOutcome(value string) (Outcome, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "blue", "azul", "blue_win", "bluewin", "gana_azul":
		return OutcomeBlue, true
	case "red", "rojo", "red_win", "redwin", "gana_rojo":
		return OutcomeRed, true
	case "draw", "empate", "tie", "x":
		return OutcomeDraw, true
	}
	return Outcome(strings.TrimSpace(value)), false
}

func (o Outcome) Known() bool {
	return o == OutcomeBlue || o == OutcomeRed || o == OutcomeDraw
}

func (o Outcome) Label() string {
	switch o {
	case OutcomeBlue:
		return "Gana Azul"
	case OutcomeRed:
		return "Gana Rojo"
	case OutcomeDraw:
		return "Empate"
	}
	return "Sin resultado"
}

type Participation struct {
	Player   string `json:"name"`
	Goals    int    `json:"goal"`
	Assists  int    `json:"assist"`
	Conceded int    `json:"keeper"`
}

type Lineups struct {
	Blue []Participation `json:"blue_lineup"`
	Red  []Participation `json:"red_lineup"`
}

type Match struct {
	ID        string          `json:"id"`
	Day       DayCategory     `json:"day"`
	Date      time.Time       `json:"date"`
	Outcome   Outcome         `json:"outcome"`
	BlueScore int             `json:"blue_score"`
	RedScore  int             `json:"red_score"`
	MVP       string          `json:"mvp"`
	Blue      []Participation `json:"blue_lineup"`
	Red       []Participation `json:"red_lineup"`
	CreatedAt time.Time       `json:"created_at"`
}

// HasMVP reports whether the match names an MVP. Empty and "-" both mean none.
func (m Match) HasMVP() bool {
	name := strings.TrimSpace(m.MVP)
	return name != "" && name != "-"
}

func (m Match) MVPName() string {
	if !m.HasMVP() {
		return ""
	}
	return strings.TrimSpace(m.MVP)
}

func (m Match) Roster(side Side) []Participation {
	if side == SideRed {
		return m.Red
	}
	return m.Blue
}

// SideOf finds the player's participation. Blue is searched first.
func (m Match) SideOf(player string) (Side, Participation, bool) {
	for _, p := range m.Blue {
		if p.Player == player {
			return SideBlue, p, true
		}
	}
	for _, p := range m.Red {
		if p.Player == player {
			return SideRed, p, true
		}
	}
	return "", Participation{}, false
}

func (m Match) Lineups() Lineups {
	return Lineups{Blue: m.Blue, Red: m.Red}
}

type PlayerSeasonRecord struct {
	Player   string  `json:"player"`
	Points   float64 `json:"points"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
	Conceded int     `json:"conceded"`
	Wins     int     `json:"wins"`
	Draws    int     `json:"draws"`
	Losses   int     `json:"losses"`
	MVPs     int     `json:"mvps"`
	Regular  bool    `json:"regular"`
}

func (r PlayerSeasonRecord) Matches() int {
	return r.Wins + r.Draws + r.Losses
}

type Regular struct {
	Day  DayCategory
	Name string
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
