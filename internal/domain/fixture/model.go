package fixture

import (
	"errors"
	"regexp"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
)

var ErrNoFixturePayload = errors.New("no fixture payload in completion")

// Summary is one scheduled or in-progress match as surfaced to the UI layer.
type Summary struct {
	HomeTeam  string      `json:"homeTeam"`
	AwayTeam  string      `json:"awayTeam"`
	League    string      `json:"league"`
	Sport     sport.Sport `json:"sport"`
	Kickoff   string      `json:"kickoff,omitempty"`
	MatchTime string      `json:"matchTime,omitempty"`
	Score     string      `json:"score,omitempty"`
	Status    string      `json:"status"`
}

func NormalizeStatus(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case StatusLive, "IN_PLAY", "IN PROGRESS", "HT", "1H", "2H":
		return StatusLive
	case StatusFinished, "FT", "FINAL", "ENDED":
		return StatusFinished
	default:
		return StatusScheduled
	}
}

func (s Summary) IsLive() bool {
	return s.Status == StatusLive
}

var fencedArrayRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")

// ParseList extracts a fixture array from a raw model completion. The model
// is asked for a fenced JSON array but often wraps it in prose, so the
// outermost bracket span is accepted as a fallback. Rows without both team
// names are dropped; statuses are normalized.
func ParseList(raw string, league string, sportTag sport.Sport) ([]Summary, error) {
	blob := ""
	if match := fencedArrayRegex.FindStringSubmatch(raw); match != nil {
		blob = match[1]
	} else {
		start := strings.Index(raw, "[")
		end := strings.LastIndex(raw, "]")
		if start < 0 || end <= start {
			return nil, ErrNoFixturePayload
		}
		blob = raw[start : end+1]
	}

	var rows []Summary
	if err := sonic.Unmarshal([]byte(blob), &rows); err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		row.HomeTeam = strings.TrimSpace(row.HomeTeam)
		row.AwayTeam = strings.TrimSpace(row.AwayTeam)
		if row.HomeTeam == "" || row.AwayTeam == "" {
			continue
		}
		if strings.TrimSpace(row.League) == "" {
			row.League = league
		}
		row.Sport = sportTag
		row.Status = NormalizeStatus(row.Status)
		out = append(out, row)
	}
	return out, nil
}
