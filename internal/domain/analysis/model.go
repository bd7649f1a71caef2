package analysis

// SectionKey is the canonical name a parsed text block is stored under,
// independent of which header synonym produced it.
type SectionKey string

const (
	SectionScorePrediction SectionKey = "scorePrediction"
	SectionConfidence      SectionKey = "confidence"
	SectionSummary         SectionKey = "summary"
	SectionKeyFactors      SectionKey = "keyFactors"
	SectionFormAnalysis    SectionKey = "formAnalysis"
	SectionHeadToHead      SectionKey = "headToHead"
	SectionTotalGoals      SectionKey = "totalGoals"
	SectionKeyStat         SectionKey = "keyStat"
	SectionKeyStatTwo      SectionKey = "keyStatTwo"
	SectionBettingTip      SectionKey = "bettingTip"
	SectionLiveAnalysis    SectionKey = "liveAnalysis"
	SectionRedFlags        SectionKey = "redFlags"
)

// SectionKeys returns the closed set of canonical keys in a stable order.
func SectionKeys() []SectionKey {
	return []SectionKey{
		SectionScorePrediction,
		SectionConfidence,
		SectionSummary,
		SectionKeyFactors,
		SectionFormAnalysis,
		SectionHeadToHead,
		SectionTotalGoals,
		SectionKeyStat,
		SectionKeyStatTwo,
		SectionBettingTip,
		SectionLiveAnalysis,
		SectionRedFlags,
	}
}

// NewSections returns a map holding every canonical key with an empty value.
// Consumers never need an existence check: a missing section reads as "".
func NewSections() map[SectionKey]string {
	sections := make(map[SectionKey]string, 12)
	for _, key := range SectionKeys() {
		sections[key] = ""
	}
	return sections
}

// Citation is one grounding source the model claims to have used.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// LiveState carries the in-play context an analysis was requested with.
type LiveState struct {
	CurrentScore string `json:"current_score"`
	MatchTime    string `json:"match_time"`
}

// MatchStats is the structured numeric payload embedded in a completion.
// Every field is optional: the model is untrusted and may omit any of them.
// WinProbability components are display hints and are not guaranteed to sum
// to 100.
type MatchStats struct {
	LastFive       *LastFive   `json:"lastFive,omitempty"`
	Possession     *Split      `json:"possession,omitempty"`
	WinProbability *Outcome    `json:"winProbability,omitempty"`
	Odds           *Outcome    `json:"odds,omitempty"`
	Comparison     *Comparison `json:"comparison,omitempty"`
	KeyPlayers     *KeyPlayers `json:"keyPlayers,omitempty"`
	Logos          *Logos      `json:"logos,omitempty"`
}

// LastFive holds per-side scoring from the most recent five matches.
type LastFive struct {
	Home []int `json:"home"`
	Away []int `json:"away"`
}

// Split is a two-way percentage split, e.g. possession.
type Split struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Outcome is a home/draw/away triple: probabilities in percent or decimal
// odds, depending on which field it sits in.
type Outcome struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Comparison contrasts the two sides on market value, table position and
// a form rating.
type Comparison struct {
	Home SideForm `json:"home"`
	Away SideForm `json:"away"`
}

type SideForm struct {
	Value    string  `json:"value"`
	Position string  `json:"position"`
	Rating   float64 `json:"rating"`
}

type KeyPlayers struct {
	Home []string `json:"home"`
	Away []string `json:"away"`
}

type Logos struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Response is the typed result of one analysis request. It is immutable
// after creation and owned by whoever requested it.
type Response struct {
	RawText   string                `json:"raw_text"`
	Citations []Citation            `json:"citations,omitempty"`
	Sections  map[SectionKey]string `json:"sections"`
	Stats     *MatchStats           `json:"stats,omitempty"`
	Live      *LiveState            `json:"live,omitempty"`

	// Synthetic marks degraded-mode output from the offline predictor so the
	// consumer can render it visibly differently. The redFlags section carries
	// the matching sentinel text.
	Synthetic bool `json:"synthetic"`
}
