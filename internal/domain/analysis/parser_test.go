package analysis

import (
	"reflect"
	"testing"
)

func TestParse_EndToEnd(t *testing.T) {
	t.Parallel()

	raw := "## Score Prediction\n2-1\n## Confidence\nHigh\n```json\n{\"winProbability\":{\"home\":60,\"draw\":20,\"away\":20}}\n```"
	parsed := Parse(raw)

	if got := parsed.Sections[SectionScorePrediction]; got != "2-1" {
		t.Fatalf("scorePrediction=%q, want 2-1", got)
	}
	if got := parsed.Sections[SectionConfidence]; got != "High" {
		t.Fatalf("confidence=%q, want High", got)
	}
	if parsed.Stats == nil || parsed.Stats.WinProbability == nil {
		t.Fatalf("expected winProbability stats, got %+v", parsed.Stats)
	}
	if parsed.Stats.WinProbability.Home != 60 {
		t.Fatalf("winProbability.home=%v, want 60", parsed.Stats.WinProbability.Home)
	}
	if parsed.RawText != raw {
		t.Fatalf("raw text must be preserved unmodified")
	}
}

func TestParse_FencedJSONBlock(t *testing.T) {
	t.Parallel()

	raw := "## Summary\nTight match expected.\n```json\n{\"possession\":{\"home\":55,\"away\":45},\"odds\":{\"home\":1.8,\"draw\":3.4,\"away\":4.2}}\n```"
	parsed := Parse(raw)

	if parsed.Stats == nil {
		t.Fatal("expected stats from fenced block")
	}
	if parsed.Stats.Possession == nil || parsed.Stats.Possession.Home != 55 {
		t.Fatalf("possession=%+v, want home=55", parsed.Stats.Possession)
	}
	if parsed.Stats.Odds == nil || parsed.Stats.Odds.Away != 4.2 {
		t.Fatalf("odds=%+v, want away=4.2", parsed.Stats.Odds)
	}
	if got := parsed.Sections[SectionSummary]; got != "Tight match expected." {
		t.Fatalf("summary=%q, JSON block content leaked into prose", got)
	}
}

func TestParse_BareBraceSpan(t *testing.T) {
	t.Parallel()

	raw := "## Summary\nSolid favorites.\n{\"winProbability\":{\"home\":70,\"draw\":15,\"away\":15}}"
	parsed := Parse(raw)

	if parsed.Stats == nil || parsed.Stats.WinProbability == nil {
		t.Fatalf("expected stats from bare brace span, got %+v", parsed.Stats)
	}
	if parsed.Stats.WinProbability.Home != 70 {
		t.Fatalf("winProbability.home=%v, want 70", parsed.Stats.WinProbability.Home)
	}
}

func TestParse_MalformedJSONLeavesStatsNil(t *testing.T) {
	t.Parallel()

	for name, raw := range map[string]string{
		"truncated fenced": "## Summary\nfoo\n```json\n{\"winProbability\":{\"home\":60,\n```",
		"not json at all":  "## Summary\nbar {not json}",
		"no json":          "## Summary\nplain prose only",
	} {
		parsed := Parse(raw)
		if parsed.Stats != nil {
			t.Fatalf("%s: stats=%+v, want nil", name, parsed.Stats)
		}
	}
}

func TestParse_AllSectionKeysAlwaysPresent(t *testing.T) {
	t.Parallel()

	parsed := Parse("completely unstructured text with no headers")
	for _, key := range SectionKeys() {
		if _, ok := parsed.Sections[key]; !ok {
			t.Fatalf("section %q missing from parsed map", key)
		}
	}
	if len(parsed.Sections) != len(SectionKeys()) {
		t.Fatalf("sections has %d keys, want %d", len(parsed.Sections), len(SectionKeys()))
	}
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	raw := "## Score Prediction: 3-0\n## Key Factors\nPace on the wings\nSet pieces\n```json\n{\"possession\":{\"home\":60,\"away\":40}}\n```"
	first := Parse(raw)
	second := Parse(raw)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing is not idempotent:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestParse_HeaderSynonymsMapToCanonicalKey(t *testing.T) {
	t.Parallel()

	basketball := Parse("## Total Points\nOver 215.5")
	soccer := Parse("## Total Goals\nOver 2.5")

	if got := basketball.Sections[SectionTotalGoals]; got != "Over 215.5" {
		t.Fatalf("basketball totals=%q, want Over 215.5", got)
	}
	if got := soccer.Sections[SectionTotalGoals]; got != "Over 2.5" {
		t.Fatalf("soccer totals=%q, want Over 2.5", got)
	}
}

func TestParse_KeyStatOrdinalsDoNotCollide(t *testing.T) {
	t.Parallel()

	parsed := Parse("## Key Stat\nFirst-half goals\n## Key Stat 2\nCorner count")
	if got := parsed.Sections[SectionKeyStat]; got != "First-half goals" {
		t.Fatalf("keyStat=%q", got)
	}
	if got := parsed.Sections[SectionKeyStatTwo]; got != "Corner count" {
		t.Fatalf("keyStatTwo=%q", got)
	}
}

func TestParse_UnknownHeaderIsolation(t *testing.T) {
	t.Parallel()

	parsed := Parse("## Summary\nfoo\n## UnknownThing\nbar\nbaz")
	if got := parsed.Sections[SectionSummary]; got != "foo" {
		t.Fatalf("summary=%q, unknown-header content leaked", got)
	}
}

func TestParse_MarkupInsensitiveHeaders(t *testing.T) {
	t.Parallel()

	for name, raw := range map[string]string{
		"bold":           "**Summary**\ncontent here",
		"bold colon":     "**Summary:**\ncontent here",
		"deep heading":   "#### Summary\ncontent here",
		"trailing colon": "## Summary:\ncontent here",
	} {
		parsed := Parse(raw)
		if got := parsed.Sections[SectionSummary]; got != "content here" {
			t.Fatalf("%s: summary=%q, want %q", name, got, "content here")
		}
	}
}

func TestParse_InlineHeaderContent(t *testing.T) {
	t.Parallel()

	parsed := Parse("## Score Prediction: 2-1\nConvincing win expected.")
	want := "2-1\nConvincing win expected."
	if got := parsed.Sections[SectionScorePrediction]; got != want {
		t.Fatalf("scorePrediction=%q, want %q", got, want)
	}
}

func TestParse_SuppressesConsecutiveDuplicateLines(t *testing.T) {
	t.Parallel()

	parsed := Parse("## Key Factors\nHome form\nHome form\nInjuries")
	want := "Home form\nInjuries"
	if got := parsed.Sections[SectionKeyFactors]; got != want {
		t.Fatalf("keyFactors=%q, want %q", got, want)
	}
}

func TestParse_ScorelineFallbackFromProse(t *testing.T) {
	t.Parallel()

	parsed := Parse("The most likely outcome is a 2 - 0 home win based on recent form.")
	if got := parsed.Sections[SectionScorePrediction]; got != "2 - 0" {
		t.Fatalf("scorePrediction=%q, want fallback 2 - 0", got)
	}
}
