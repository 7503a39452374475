package lineup

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"futsal-app/internal/model"
)

const flatDocJSON = `{
  "blue_lineup": [
    {"name": "Ana", "goal": 2, "assist": 1},
    {"name": "Carla", "keeper": 3}
  ],
  "red_lineup": [
    {"name": "Bea", "goal": 1}
  ]
}`

const nestedDocJSON = `{
  "teams": [{
    "blue": [{"lineup": [{"member": [
      {"nombre": "Ana", "goles": 2, "asistencias": 1},
      {"nombre": "Carla", "portero": 3}
    ]}]}],
    "red": [{"lineup": [{"member": [
      {"nombre": "Bea", "goles": 1}
    ]}]}]
  }]
}`

func TestNormalizeFlatAndNestedAgree(t *testing.T) {
	flat, err := Normalize([]byte(flatDocJSON))
	if err != nil {
		t.Fatalf("flat: %v", err)
	}
	nested, err := Normalize([]byte(nestedDocJSON))
	if err != nil {
		t.Fatalf("nested: %v", err)
	}
	if !reflect.DeepEqual(flat, nested) {
		t.Fatalf("expected identical lineups\nflat:   %+v\nnested: %+v", flat, nested)
	}
	want := []model.Participation{
		{Player: "Ana", Goals: 2, Assists: 1},
		{Player: "Carla", Conceded: 3},
	}
	if !reflect.DeepEqual(flat.Blue, want) {
		t.Fatalf("unexpected blue roster: %+v", flat.Blue)
	}
	if len(flat.Red) != 1 || flat.Red[0].Player != "Bea" || flat.Red[0].Goals != 1 {
		t.Fatalf("unexpected red roster: %+v", flat.Red)
	}
}

func TestNormalizeMissingAndBadNumbersDefaultToZero(t *testing.T) {
	raw := `{"blue_lineup":[{"name":"Ana","goal":"abc","assist":null,"keeper":-2}],"red_lineup":[]}`
	got, err := Normalize([]byte(raw))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(got.Blue) != 1 {
		t.Fatalf("expected one entry, got %d", len(got.Blue))
	}
	p := got.Blue[0]
	if p.Goals != 0 || p.Assists != 0 || p.Conceded != 0 {
		t.Fatalf("expected zeroed counters, got %+v", p)
	}
}

func TestNormalizeTerseKeyWinsOverVerbose(t *testing.T) {
	raw := `{"blue_lineup":[{"name":"Ana","goal":1,"goles":4}]}`
	got, err := Normalize([]byte(raw))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Blue[0].Goals != 1 {
		t.Fatalf("expected terse key to win, got %d", got.Blue[0].Goals)
	}
	if got.Red == nil || len(got.Red) != 0 {
		t.Fatalf("expected empty red roster, got %+v", got.Red)
	}
}

func TestNormalizeSkipsNamelessEntries(t *testing.T) {
	raw := `{"blue_lineup":[{"goal":3},{"name":"  "},{"name":"Ana"}]}`
	got, _ := Normalize([]byte(raw))
	if len(got.Blue) != 1 || got.Blue[0].Player != "Ana" {
		t.Fatalf("unexpected roster: %+v", got.Blue)
	}
}

func TestNormalizeUnknownShape(t *testing.T) {
	for _, raw := range []string{``, `not json`, `{"players":[]}`, `[]`} {
		got, err := Normalize([]byte(raw))
		if !errors.Is(err, ErrUnknownShape) {
			t.Fatalf("%q: expected ErrUnknownShape, got %v", raw, err)
		}
		if len(got.Blue) != 0 || len(got.Red) != 0 {
			t.Fatalf("%q: expected empty rosters, got %+v", raw, got)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := model.Lineups{
		Blue: []model.Participation{{Player: "Ana", Goals: 2, Assists: 1}},
		Red:  []model.Participation{{Player: "Bea", Conceded: 4}},
	}
	out, err := Normalize(Encode(in))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v vs %+v", in, out)
	}
}

func TestEncodeNilRosters(t *testing.T) {
	if got := string(Encode(model.Lineups{})); got != `{"blue_lineup":[],"red_lineup":[]}` {
		t.Fatalf("unexpected encoding: %s", got)
	}
}

func TestParseRecord(t *testing.T) {
	raw := `{
	  "fecha": "2024-03-04",
	  "dia": "Lunes",
	  "resultado": "azul",
	  "blue_score": 5,
	  "red_score": 3,
	  "mvp": "Ana",
	  "blue_lineup": [{"name":"Ana","goal":2}],
	  "red_lineup": [{"name":"Bea","keeper":5}]
	}`
	m, err := ParseRecord([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Date.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %s", m.Date)
	}
	if m.Day != model.DayMonday {
		t.Fatalf("unexpected day: %s", m.Day)
	}
	if m.Outcome != model.OutcomeBlue {
		t.Fatalf("unexpected outcome: %s", m.Outcome)
	}
	if m.BlueScore != 5 || m.RedScore != 3 || m.MVP != "Ana" {
		t.Fatalf("unexpected header: %+v", m)
	}
	if len(m.Blue) != 1 || len(m.Red) != 1 || m.Red[0].Conceded != 5 {
		t.Fatalf("unexpected rosters: %+v / %+v", m.Blue, m.Red)
	}
}

func TestParseRecordUnknownLineupStillReturnsMatch(t *testing.T) {
	m, err := ParseRecord([]byte(`{"date":"2024-03-07","result":"draw"}`))
	if !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
	if m.Outcome != model.OutcomeDraw || m.Date.IsZero() {
		t.Fatalf("expected header fields to be parsed, got %+v", m)
	}
}

func TestParseRecordRequiresDate(t *testing.T) {
	if _, err := ParseRecord([]byte(`{"result":"blue","blue_lineup":[]}`)); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if _, err := ParseRecord([]byte(`[1,2]`)); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for array, got %v", err)
	}
}
