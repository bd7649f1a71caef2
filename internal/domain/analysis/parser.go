package analysis

import (
	"regexp"
	"strings"

	sonic "github.com/bytedance/sonic"
)

var (
	fencedJSONRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	scorelineRegex  = regexp.MustCompile(`\d+\s*-\s*\d+`)
)

// Parse converts one raw model completion into a typed Response. It is a pure
// function and never fails: malformed JSON leaves Stats nil, missing headers
// leave their sections empty. Citations and live context are attached by the
// caller.
func Parse(raw string) Response {
	response := Response{
		RawText:  raw,
		Sections: NewSections(),
	}

	stats, remainder := extractStats(raw)
	response.Stats = stats

	scanSections(remainder, response.Sections)

	for key, value := range response.Sections {
		response.Sections[key] = strings.TrimSpace(value)
	}

	// Best-effort recovery for the headline: the model sometimes buries the
	// scoreline in prose instead of under a recognized header.
	if response.Sections[SectionScorePrediction] == "" {
		if match := scorelineRegex.FindString(raw); match != "" {
			response.Sections[SectionScorePrediction] = match
		}
	}

	return response
}

// extractStats locates the embedded JSON payload, either as a fenced code
// block or as the outermost brace span, and strictly decodes it. The decoded
// span is removed from the returned text so its contents cannot be misread as
// section prose. A fenced block is removed even when it fails to decode; a
// bare brace span is only removed on success, since braces also occur in
// ordinary prose.
func extractStats(raw string) (*MatchStats, string) {
	if match := fencedJSONRegex.FindStringSubmatchIndex(raw); match != nil {
		blob := raw[match[2]:match[3]]
		remainder := raw[:match[0]] + raw[match[1]:]
		var stats MatchStats
		if err := sonic.Unmarshal([]byte(blob), &stats); err != nil {
			return nil, remainder
		}
		return &stats, remainder
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, raw
	}

	var stats MatchStats
	if err := sonic.Unmarshal([]byte(raw[start:end+1]), &stats); err != nil {
		return nil, raw
	}
	return &stats, raw[:start] + raw[end+1:]
}

// scanSections walks the text line by line, keeping a current-section pointer.
// Recognized headers switch it, unknown header-looking lines reset it to none
// so stray content is discarded rather than appended to the previous section.
func scanSections(text string, sections map[SectionKey]string) {
	var current SectionKey
	var lastLine string
	active := false

	appendLine := func(line string) {
		if !active {
			return
		}
		// The model occasionally repeats itself verbatim; drop exact
		// consecutive duplicates.
		if line == lastLine {
			return
		}
		if sections[current] == "" {
			sections[current] = line
		} else {
			sections[current] += "\n" + line
		}
		lastLine = line
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if key, inline, ok := matchHeader(line); ok {
			current = key
			active = true
			lastLine = ""
			if inline != "" {
				appendLine(inline)
			}
			continue
		}

		if looksLikeHeader(line) {
			current = ""
			active = false
			lastLine = ""
			continue
		}

		appendLine(line)
	}
}
