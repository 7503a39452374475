package stats

import (
	"errors"
	"testing"

	"futsal-app/internal/model"
)

func row(t *testing.T, c Comparison, label string) ComparisonRow {
	t.Helper()
	for _, r := range c.Rows {
		if r.Label == label {
			return r
		}
	}
	t.Fatalf("no row %q", label)
	return ComparisonRow{}
}

func TestCompareRejectsWrongSize(t *testing.T) {
	cases := [][]string{
		nil,
		{"Ana"},
		{"Ana", "Ana", " Ana "},
		{"Ana", "Bea", "Carla", "Dani"},
	}
	for _, players := range cases {
		if _, err := Compare(players, nil); !errors.Is(err, ErrComparisonSize) {
			t.Fatalf("%v: expected ErrComparisonSize, got %v", players, err)
		}
	}
}

func TestCompareMarksAllTiedBest(t *testing.T) {
	matches := []model.Match{
		match(0, model.OutcomeBlue, "Ana", []model.Participation{p("Ana", 2, 1, 0), p("Bea", 2, 0, 0)}, []model.Participation{p("Carla", 1, 0, 3)}),
		match(1, model.OutcomeRed, "", []model.Participation{p("Ana", 0, 0, 1)}, []model.Participation{p("Carla", 0, 2, 0), p("Bea", 0, 0, 0)}),
	}
	c, err := Compare([]string{"Ana", "Bea", "Carla"}, matches)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(c.Rows) != len(comparisonMetrics) || len(c.Summaries) != 3 {
		t.Fatalf("unexpected shape: %d rows, %d summaries", len(c.Rows), len(c.Summaries))
	}

	goals := row(t, c, "Goles")
	if !goals.Cells[0].Best || !goals.Cells[1].Best || goals.Cells[2].Best {
		t.Fatalf("expected Ana and Bea tied on goals, got %+v", goals.Cells)
	}

	// Bea won both matches she played.
	wins := row(t, c, "% Victorias")
	if wins.Cells[1].Value != 100 || !wins.Cells[1].Best || wins.Cells[0].Best {
		t.Fatalf("unexpected win rate row: %+v", wins.Cells)
	}
	if wins.Kind != KindPercent {
		t.Fatalf("expected percent kind, got %s", wins.Kind)
	}
}

func TestCompareConcededLowerIsBetter(t *testing.T) {
	matches := []model.Match{
		match(0, model.OutcomeDraw, "", []model.Participation{p("Ana", 0, 0, 4)}, []model.Participation{p("Bea", 0, 0, 1)}),
	}
	c, err := Compare([]string{"Ana", "Bea"}, matches)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	conceded := row(t, c, "Goles encajados")
	if !conceded.LowerIsBetter {
		t.Fatal("conceded should be lower-is-better")
	}
	if conceded.Cells[0].Best || !conceded.Cells[1].Best {
		t.Fatalf("expected Bea best on conceded, got %+v", conceded.Cells)
	}
}

func TestCompareTrimsAndDedups(t *testing.T) {
	c, err := Compare([]string{" Ana", "Bea ", "Ana", ""}, nil)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(c.Players) != 2 || c.Players[0] != "Ana" || c.Players[1] != "Bea" {
		t.Fatalf("unexpected players: %v", c.Players)
	}
	// Nobody played: every cell ties at zero.
	for _, r := range c.Rows {
		for _, cell := range r.Cells {
			if cell.Value != 0 || !cell.Best {
				t.Fatalf("%s: expected zero tie, got %+v", r.Label, r.Cells)
			}
		}
	}
}
