package analysis

import "strings"

// headerSynonym maps one normalized header spelling onto its canonical key.
// The table is evaluated top to bottom, so more specific spellings must come
// before their prefixes ("key stat 2" before "key stat"). Sport-specific
// prompt variants add rows here, never branches in the scan loop.
type headerSynonym struct {
	name string
	key  SectionKey
}

var headerSynonyms = []headerSynonym{
	{"score prediction", SectionScorePrediction},
	{"predicted score", SectionScorePrediction},
	{"final score prediction", SectionScorePrediction},
	{"confidence level", SectionConfidence},
	{"confidence", SectionConfidence},
	{"match summary", SectionSummary},
	{"analysis summary", SectionSummary},
	{"summary", SectionSummary},
	{"overview", SectionSummary},
	{"key factors", SectionKeyFactors},
	{"key considerations", SectionKeyFactors},
	{"form analysis", SectionFormAnalysis},
	{"recent form", SectionFormAnalysis},
	{"head to head", SectionHeadToHead},
	{"head-to-head", SectionHeadToHead},
	{"h2h", SectionHeadToHead},

	// Totals market: each sport phrases this differently but they all land on
	// the same canonical slot.
	{"total goals", SectionTotalGoals},
	{"total points", SectionTotalGoals},
	{"total score", SectionTotalGoals},
	{"over/under", SectionTotalGoals},

	{"key stat 2", SectionKeyStatTwo},
	{"second key stat", SectionKeyStatTwo},
	{"key stat", SectionKeyStat},
	{"key statistic", SectionKeyStat},

	{"betting tips", SectionBettingTip},
	{"betting tip", SectionBettingTip},
	{"best bet", SectionBettingTip},

	{"live analysis", SectionLiveAnalysis},
	{"live match analysis", SectionLiveAnalysis},
	{"in-game analysis", SectionLiveAnalysis},

	{"red flags", SectionRedFlags},
	{"risk factors", SectionRedFlags},
	{"warnings", SectionRedFlags},
}

// normalizeHeader strips markdown decoration from a candidate header line:
// leading '#' runs, bold markers and a trailing colon. The result is
// lowercased for table lookup.
func normalizeHeader(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#")
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.ReplaceAll(trimmed, "**", "")
	trimmed = strings.TrimSpace(trimmed)
	return strings.ToLower(trimmed)
}

// matchHeader resolves a line against the synonym table. When the line is a
// recognized header it returns the canonical key plus any inline content that
// followed the header on the same line ("## Score Prediction: 2-1").
func matchHeader(line string) (SectionKey, string, bool) {
	normalized := normalizeHeader(line)
	if normalized == "" {
		return "", "", false
	}

	for _, synonym := range headerSynonyms {
		if !strings.HasPrefix(normalized, synonym.name) {
			continue
		}
		rest := normalized[len(synonym.name):]
		switch {
		case rest == "" || rest == ":":
			return synonym.key, "", true
		case strings.HasPrefix(rest, ":"):
			// Inline content keeps its original casing, so re-slice the
			// cleaned original line rather than the lowercased copy.
			original := strings.ReplaceAll(strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#")), "**", "")
			idx := strings.Index(original, ":")
			if idx >= 0 {
				return synonym.key, strings.TrimSpace(original[idx+1:]), true
			}
			return synonym.key, "", true
		}
	}
	return "", "", false
}

// looksLikeHeader reports whether a line is shaped like a section header even
// if no synonym matches it. Unknown headers must reset the current section so
// their content does not leak into the previous one.
func looksLikeHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if strings.HasPrefix(trimmed, "**") && (strings.HasSuffix(trimmed, "**") || strings.HasSuffix(trimmed, ":")) {
		return true
	}
	return false
}
