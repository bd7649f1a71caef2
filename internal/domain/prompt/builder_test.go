package prompt

import (
	"strings"
	"testing"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/analysis"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
)

func TestMatch_SportSpecificTotalsHeader(t *testing.T) {
	t.Parallel()

	soccer := Match("Arsenal", "Chelsea", "Premier League", sport.Soccer, nil)
	if !strings.Contains(soccer, "## Total Goals") {
		t.Fatalf("soccer prompt missing Total Goals header:\n%s", soccer)
	}

	basketball := Match("Lakers", "Celtics", "NBA", sport.Basketball, nil)
	if !strings.Contains(basketball, "## Total Points") {
		t.Fatalf("basketball prompt missing Total Points header:\n%s", basketball)
	}
	if strings.Contains(basketball, "## Total Goals") {
		t.Fatal("basketball prompt must not ask for Total Goals")
	}
}

func TestMatch_LiveContextEmbedded(t *testing.T) {
	t.Parallel()

	live := &analysis.LiveState{CurrentScore: "2-1", MatchTime: "67'"}
	p := Match("Arsenal", "Chelsea", "", sport.Soccer, live)

	for _, want := range []string{"LIVE", "2-1", "67'", "## Live Analysis"} {
		if !strings.Contains(p, want) {
			t.Fatalf("live prompt missing %q:\n%s", want, p)
		}
	}

	preMatch := Match("Arsenal", "Chelsea", "", sport.Soccer, nil)
	if strings.Contains(preMatch, "## Live Analysis") {
		t.Fatal("pre-match prompt must not request a live section")
	}
}

func TestMatch_UnknownSportUsesSoccerTemplate(t *testing.T) {
	t.Parallel()

	p := Match("A", "B", "", sport.Sport("CRICKET"), nil)
	if !strings.Contains(p, "## Total Goals") {
		t.Fatalf("unknown sport should fall back to the soccer template:\n%s", p)
	}
}

func TestFixtures_RequestsStrictJSONArray(t *testing.T) {
	t.Parallel()

	p := Fixtures("NBA", "2026-03-01", sport.Basketball)
	for _, want := range []string{"NBA", "2026-03-01", "homeTeam", "No prose"} {
		if !strings.Contains(p, want) {
			t.Fatalf("fixtures prompt missing %q:\n%s", want, p)
		}
	}
}

func TestOdds_DrawlessSports(t *testing.T) {
	t.Parallel()

	p := Odds("Bruins", "Rangers", "NHL", sport.IceHockey)
	if !strings.Contains(p, `"draw" set to 0`) {
		t.Fatalf("drawless sport should pin draw odds to 0:\n%s", p)
	}
}
