package stats

import (
	"testing"

	"futsal-app/internal/model"
)

// winFor returns a match the named player wins on blue with the given mates.
func winFor(day int, player string, mates ...string) model.Match {
	blue := []model.Participation{p(player, 0, 0, 0)}
	for _, m := range mates {
		blue = append(blue, p(m, 0, 0, 0))
	}
	return match(day, model.OutcomeBlue, "", blue, []model.Participation{p("Rival", 0, 0, 0)})
}

func lossFor(day int, player string, mates ...string) model.Match {
	m := winFor(day, player, mates...)
	m.Outcome = model.OutcomeRed
	return m
}

func TestAnalyzeNoMatches(t *testing.T) {
	got := Analyze("Nadie", []model.Match{winFor(0, "Ana")})
	if got.Summary.Matches != 0 || got.MVPProbability != 0 {
		t.Fatalf("expected empty summary, got %+v", got.Summary)
	}
	if got.Streak.Type != StreakNone || got.Streak.Count != 0 {
		t.Fatalf("expected no streak, got %+v", got.Streak)
	}
	if got.BestPartner.Found {
		t.Fatalf("expected no partner, got %+v", got.BestPartner)
	}
	if len(got.RecentForm) != 0 {
		t.Fatalf("expected empty form, got %d entries", len(got.RecentForm))
	}
	if got.Teams.Blue.Matches != 0 || got.Teams.Red.WinRate != 0 {
		t.Fatalf("expected empty split, got %+v", got.Teams)
	}
}

func TestCurrentStreakWalksNewestFirst(t *testing.T) {
	// Input order is deliberately shuffled.
	matches := []model.Match{
		winFor(3, "Ana"),
		lossFor(1, "Ana"),
		winFor(5, "Ana"),
		winFor(4, "Ana"),
		winFor(2, "Ana"),
	}
	got := CurrentStreak("Ana", matches)
	if got.Type != StreakWin || got.Count != 4 || got.Level != StreakNormal {
		t.Fatalf("unexpected streak: %+v", got)
	}
}

func TestCurrentStreakLevels(t *testing.T) {
	hot := []model.Match{}
	for i := 0; i < 5; i++ {
		hot = append(hot, winFor(i, "Ana"))
	}
	if got := CurrentStreak("Ana", hot); got.Level != StreakHot || got.Count != 5 {
		t.Fatalf("expected hot streak, got %+v", got)
	}

	cold := []model.Match{winFor(0, "Ana"), lossFor(1, "Ana"), lossFor(2, "Ana"), lossFor(3, "Ana")}
	if got := CurrentStreak("Ana", cold); got.Type != StreakLoss || got.Count != 3 || got.Level != StreakCold {
		t.Fatalf("expected cold streak, got %+v", got)
	}
}

func TestCurrentStreakDrawBreaksAndUnknownIsSkipped(t *testing.T) {
	draw := winFor(2, "Ana")
	draw.Outcome = model.OutcomeDraw
	unknown := winFor(4, "Ana")
	unknown.Outcome = model.Outcome("suspended")

	matches := []model.Match{winFor(1, "Ana"), draw, winFor(3, "Ana"), unknown, winFor(5, "Ana")}
	got := CurrentStreak("Ana", matches)
	if got.Type != StreakWin || got.Count != 2 {
		t.Fatalf("expected two wins before the draw, got %+v", got)
	}

	latestDraw := winFor(9, "Ana")
	latestDraw.Outcome = model.OutcomeDraw
	got = CurrentStreak("Ana", append(matches, latestDraw))
	if got.Type != StreakNone || got.Count != 0 {
		t.Fatalf("a draw as latest result leaves no streak, got %+v", got)
	}
}

func TestCurrentStreakFromRedSide(t *testing.T) {
	m := match(0, model.OutcomeRed, "", []model.Participation{p("Bea", 0, 0, 0)}, []model.Participation{p("Ana", 0, 0, 0)})
	got := CurrentStreak("Ana", []model.Match{m})
	if got.Type != StreakWin || got.Count != 1 {
		t.Fatalf("expected red win to count for Ana, got %+v", got)
	}
}

func TestBestPartnerRequiresMinimumSample(t *testing.T) {
	matches := []model.Match{
		// Ana and Bea: two matches, two wins.
		winFor(0, "Ana", "Bea"),
		winFor(1, "Ana", "Bea"),
		// Ana and Carla: three matches, two wins.
		winFor(2, "Ana", "Carla"),
		winFor(3, "Ana", "Carla"),
		lossFor(4, "Ana", "Carla"),
	}
	got := BestPartner("Ana", matches)
	if !got.Found || got.Player != "Carla" {
		t.Fatalf("expected Carla, got %+v", got)
	}
	if got.Matches != 3 || got.Wins != 2 {
		t.Fatalf("unexpected pairing counts: %+v", got)
	}
	if got.WinRate < 66.6 || got.WinRate > 66.7 {
		t.Fatalf("unexpected win rate %.3f", got.WinRate)
	}
}

func TestBestPartnerIgnoresOpponentsAndTieBreaks(t *testing.T) {
	matches := []model.Match{
		winFor(0, "Ana", "Bea", "Carla"),
		winFor(1, "Ana", "Bea", "Carla"),
		lossFor(2, "Ana", "Bea", "Carla"),
		lossFor(3, "Ana", "Carla"),
		winFor(4, "Ana", "Carla"),
		winFor(5, "Ana", "Carla"),
	}
	// Bea: 2/3, Carla: 4/6. Same rate, Carla has more matches.
	got := BestPartner("Ana", matches)
	if got.Player != "Carla" {
		t.Fatalf("expected Carla on tie-break, got %+v", got)
	}
	if rival := BestPartner("Rival", matches); rival.Found {
		t.Fatalf("Rival never had a teammate, got %+v", rival)
	}
}

func TestBestPartnerNotFound(t *testing.T) {
	matches := []model.Match{winFor(0, "Ana", "Bea"), winFor(1, "Ana", "Bea")}
	if got := BestPartner("Ana", matches); got.Found {
		t.Fatalf("expected no partner below threshold, got %+v", got)
	}
}

func TestSplitBySide(t *testing.T) {
	matches := []model.Match{
		match(0, model.OutcomeBlue, "", []model.Participation{p("Ana", 2, 0, 0)}, nil),
		match(1, model.OutcomeRed, "", []model.Participation{p("Ana", 1, 0, 0)}, nil),
		match(2, model.OutcomeRed, "", nil, []model.Participation{p("Ana", 3, 0, 0)}),
	}
	got := SplitBySide("Ana", matches)
	if got.Blue.Matches != 2 || got.Blue.Wins != 1 || got.Blue.WinRate != 50 || got.Blue.GoalsPerMatch != 1.5 {
		t.Fatalf("unexpected blue split: %+v", got.Blue)
	}
	if got.Red.Matches != 1 || got.Red.Wins != 1 || got.Red.WinRate != 100 || got.Red.GoalsPerMatch != 3 {
		t.Fatalf("unexpected red split: %+v", got.Red)
	}
}

func TestRecentFormLastTenOldestFirst(t *testing.T) {
	matches := []model.Match{}
	for i := 0; i < 12; i++ {
		m := match(i, model.OutcomeBlue, "", []model.Participation{p("Ana", i, 1, 0)}, nil)
		if i%2 == 1 {
			m.Outcome = model.OutcomeRed
		}
		matches = append(matches, m)
	}
	form := RecentForm("Ana", matches)
	if len(form) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(form))
	}
	if form[0].Goals != 2 || form[9].Goals != 11 {
		t.Fatalf("expected matches 2..11 oldest first, got %d..%d", form[0].Goals, form[9].Goals)
	}
	if !form[0].Date.Before(form[9].Date) {
		t.Fatal("form is not in ascending date order")
	}
	if form[0].Result != model.ResultWin || form[1].Result != model.ResultLoss {
		t.Fatalf("unexpected results: %s, %s", form[0].Result, form[1].Result)
	}
}

func TestMVPProbability(t *testing.T) {
	matches := []model.Match{
		match(0, model.OutcomeBlue, "Ana", []model.Participation{p("Ana", 0, 0, 0)}, nil),
		match(1, model.OutcomeBlue, "", []model.Participation{p("Ana", 0, 0, 0)}, nil),
		match(2, model.OutcomeRed, "", []model.Participation{p("Ana", 0, 0, 0)}, nil),
		match(3, model.OutcomeRed, "", []model.Participation{p("Ana", 0, 0, 0)}, nil),
	}
	// MVP rate 25%, win rate 50%: 0.6*25 + 0.4*50 = 35.
	got := Analyze("Ana", matches)
	if got.MVPProbability != 35 {
		t.Fatalf("expected 35, got %d", got.MVPProbability)
	}
	if got.Summary.MVPs != 1 || got.Summary.Wins != 2 || got.Summary.Losses != 2 {
		t.Fatalf("unexpected summary: %+v", got.Summary)
	}
}

func TestMVPProbabilityRounds(t *testing.T) {
	// MVP 1/3, wins 1/3: 0.6*33.33 + 0.4*33.33 = 33.33 -> 33.
	s := PlayerSummary{Matches: 3, MVPs: 1, Wins: 1}
	if got := MVPProbability(s); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	s = PlayerSummary{Matches: 2, MVPs: 1, Wins: 2}
	// 0.6*50 + 0.4*100 = 70.
	if got := MVPProbability(s); got != 70 {
		t.Fatalf("expected 70, got %d", got)
	}
}
