package sport

import "strings"

// Sport identifies the discipline a match belongs to. The set is closed:
// prompt templates, synthetic scorelines and header synonyms are all keyed
// off it.
type Sport string

const (
	Soccer     Sport = "SOCCER"
	Basketball Sport = "BASKETBALL"
	IceHockey  Sport = "ICE_HOCKEY"
	Handball   Sport = "HANDBALL"
)

func All() []Sport {
	return []Sport{Soccer, Basketball, IceHockey, Handball}
}

func Normalize(value string) (Sport, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch Sport(normalized) {
	case Soccer, Basketball, IceHockey, Handball:
		return Sport(normalized), true
	}
	switch normalized {
	case "FOOTBALL":
		return Soccer, true
	case "HOCKEY", "NHL":
		return IceHockey, true
	case "NBA":
		return Basketball, true
	}
	return "", false
}

// Display returns the lowercase human-readable name used in prose.
func (s Sport) Display() string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", " "))
}

// HasDraw reports whether a regulation-time draw is a possible outcome.
func (s Sport) HasDraw() bool {
	switch s {
	case Soccer, Handball:
		return true
	default:
		return false
	}
}
