// Package prompt assembles the natural-language requests sent to the
// completion model. Phrasing is table-driven per sport so new sports only add
// a template row, and the parser's header synonyms stay in sync with what we
// ask the model to emit.
package prompt

import (
	"fmt"
	"strings"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/analysis"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
)

type sportTemplate struct {
	totalsHeader string
	scoreHint    string
	unit         string
}

var sportTemplates = map[sport.Sport]sportTemplate{
	sport.Soccer:     {totalsHeader: "Total Goals", scoreHint: "a realistic full-time scoreline such as 2-1", unit: "goals"},
	sport.Basketball: {totalsHeader: "Total Points", scoreHint: "a realistic final score such as 112-105", unit: "points"},
	sport.IceHockey:  {totalsHeader: "Total Goals", scoreHint: "a realistic final score such as 3-2", unit: "goals"},
	sport.Handball:   {totalsHeader: "Total Goals", scoreHint: "a realistic final score such as 31-28", unit: "goals"},
}

func templateFor(s sport.Sport) sportTemplate {
	if tpl, ok := sportTemplates[s]; ok {
		return tpl
	}
	return sportTemplates[sport.Soccer]
}

// Match builds the full-analysis prompt for one matchup. The requested
// headers mirror the parser's canonical sections and the trailing JSON
// contract mirrors analysis.MatchStats.
func Match(home, away, league string, s sport.Sport, live *analysis.LiveState) string {
	tpl := templateFor(s)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a sports analyst. Analyze the %s match %s vs %s", s.Display(), home, away)
	if league != "" {
		fmt.Fprintf(&b, " in the %s", league)
	}
	b.WriteString(". Use current team news and form from the web.\n\n")

	if live != nil {
		fmt.Fprintf(&b, "The match is LIVE. Current score: %s", live.CurrentScore)
		if live.MatchTime != "" {
			fmt.Fprintf(&b, " at %s", live.MatchTime)
		}
		b.WriteString(". Your final score prediction must not be lower than the current score on either side.\n\n")
	}

	b.WriteString("Respond with these markdown sections, each introduced by a '## ' header:\n")
	fmt.Fprintf(&b, "## Score Prediction — %s\n", tpl.scoreHint)
	b.WriteString("## Confidence — High, Medium or Low\n")
	b.WriteString("## Summary — two or three sentences\n")
	b.WriteString("## Key Factors — short bullet lines\n")
	b.WriteString("## Form Analysis\n")
	b.WriteString("## Head to Head\n")
	fmt.Fprintf(&b, "## %s — expected %s line and lean\n", tpl.totalsHeader, tpl.unit)
	b.WriteString("## Key Stat\n")
	b.WriteString("## Key Stat 2\n")
	b.WriteString("## Betting Tip\n")
	if live != nil {
		b.WriteString("## Live Analysis — momentum and what changes from here\n")
	}
	b.WriteString("## Red Flags — anything that undermines the prediction\n\n")

	b.WriteString("Then append exactly one fenced ```json block with this shape:\n")
	b.WriteString("{\"lastFive\":{\"home\":[],\"away\":[]},\"possession\":{\"home\":0,\"away\":0},")
	b.WriteString("\"winProbability\":{\"home\":0,\"draw\":0,\"away\":0},\"odds\":{\"home\":0,\"draw\":0,\"away\":0},")
	b.WriteString("\"comparison\":{\"home\":{\"value\":\"\",\"position\":\"\",\"rating\":0},\"away\":{\"value\":\"\",\"position\":\"\",\"rating\":0}},")
	b.WriteString("\"keyPlayers\":{\"home\":[],\"away\":[]}}")

	return b.String()
}

// Fixtures builds the fixture-list prompt for one league and date.
func Fixtures(league, date string, s sport.Sport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "List the %s fixtures", s.Display())
	if league != "" {
		fmt.Fprintf(&b, " in the %s", league)
	}
	if date != "" {
		fmt.Fprintf(&b, " on %s", date)
	} else {
		b.WriteString(" today")
	}
	b.WriteString(", including any matches currently in progress. Use live web results.\n")
	b.WriteString("Respond with only a fenced ```json array of objects with keys: ")
	b.WriteString(`"homeTeam", "awayTeam", "league", "kickoff", "matchTime", "score", "status" `)
	b.WriteString("(status one of SCHEDULED, LIVE, FINISHED). No prose.")
	return b.String()
}

// Odds builds the odds-lookup prompt for one matchup.
func Odds(home, away, league string, s sport.Sport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find current decimal betting odds for the %s match %s vs %s", s.Display(), home, away)
	if league != "" {
		fmt.Fprintf(&b, " in the %s", league)
	}
	b.WriteString(". Respond with only a fenced ```json object: ")
	b.WriteString(`{"odds":{"home":0,"draw":0,"away":0}}`)
	if !s.HasDraw() {
		b.WriteString(` with "draw" set to 0`)
	}
	b.WriteString(". No prose.")
	return b.String()
}

// Comparison builds the slow-changing team-comparison prompt.
func Comparison(home, away string, s sport.Sport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compare the %s teams %s and %s on squad market value, current table position and form rating out of 10.", s.Display(), home, away)
	b.WriteString(" Respond with only a fenced ```json object: ")
	b.WriteString(`{"comparison":{"home":{"value":"","position":"","rating":0},"away":{"value":"","position":"","rating":0}},"keyPlayers":{"home":[],"away":[]}}`)
	b.WriteString(". No prose.")
	return b.String()
}
