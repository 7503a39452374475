package lineup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"futsal-app/internal/model"

	"github.com/tidwall/gjson"
)

var ErrInvalidRecord = errors.New("invalid match record")

const dateLayout = "2006-01-02"

// ParseRecord decodes one match record as exported by the old dashboard or
// posted to the API. A record whose lineup cannot be recognised is still
// returned, with empty rosters, alongside ErrUnknownShape.
func ParseRecord(raw []byte) (model.Match, error) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return model.Match{}, ErrInvalidRecord
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return model.Match{}, ErrInvalidRecord
	}

	date, err := parseDate(firstPresent(doc, []string{"date", "fecha"}).String())
	if err != nil {
		return model.Match{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	match := model.Match{
		ID:        strings.TrimSpace(doc.Get("id").String()),
		Date:      date,
		BlueScore: counter(doc, []string{"blue_score", "goles_azul"}),
		RedScore:  counter(doc, []string{"red_score", "goles_rojo"}),
		MVP:       strings.TrimSpace(doc.Get("mvp").String()),
	}
	if day, ok := model.ParseDay(firstPresent(doc, []string{"day", "dia"}).String()); ok {
		match.Day = day
	}
	outcome, _ := model.ParseOutcome(firstPresent(doc, []string{"result", "resultado", "outcome"}).String())
	match.Outcome = outcome

	lineups, err := fromResult(doc)
	match.Blue = lineups.Blue
	match.Red = lineups.Red
	if err != nil {
		return match, err
	}
	return match, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
