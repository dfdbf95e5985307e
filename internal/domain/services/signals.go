package services

import (
	"regexp"
	"strings"

	"redflag-lab/internal/domain/models"
)

var (
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+|www\.[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?1?[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
)

// SignalExtractor scans message text for structured entities and keyword
// categories, producing the heuristic score and tactic list.
type SignalExtractor struct {
	maxEntities int
}

// NewSignalExtractor creates a signal extractor with the given entity cap.
func NewSignalExtractor(maxEntities int) *SignalExtractor {
	if maxEntities <= 0 {
		maxEntities = 30
	}
	return &SignalExtractor{maxEntities: maxEntities}
}

// SignalReport is the extractor's complete output for one message.
type SignalReport struct {
	Entities  models.ExtractedEntities
	Score     int
	Tactics   []models.Tactic
	Triggered map[string]bool
	HasURLs   bool
	HasShort  bool
}

// Extract runs all scans over text. The text is read only; nothing here
// mutates or normalizes the caller's copy.
func (e *SignalExtractor) Extract(text string) *SignalReport {
	report := &SignalReport{
		Entities: models.ExtractedEntities{
			URLs:         e.extractURLs(text),
			Emails:       e.extractEmails(text),
			PhoneNumbers: e.extractPhoneNumbers(text),
		},
		Triggered: make(map[string]bool),
	}

	lower := strings.ToLower(text)

	report.HasURLs = len(report.Entities.URLs) > 0
	report.HasShort = containsShortener(lower)

	score := 0
	if report.HasURLs {
		score += urlWeight
		report.Tactics = append(report.Tactics, models.Tactic{
			Name:        "Suspicious Link",
			Confidence:  urlConfidence,
			Evidence:    evidenceSlice(report.Entities.URLs),
			Explanation: "Message contains links pushing you off-platform",
		})
	}
	if report.HasShort {
		score += shortenerWeight
		report.Tactics = append(report.Tactics, models.Tactic{
			Name:        "Shortened Link",
			Confidence:  shortenerConfidence,
			Evidence:    matchedShorteners(lower),
			Explanation: "Shortened links hide the real destination",
		})
	}

	for _, cat := range ruleTable {
		matched := matchPhrases(lower, cat.Phrases)
		if len(matched) == 0 {
			continue
		}
		report.Triggered[cat.Key] = true
		score += cat.Weight
		report.Tactics = append(report.Tactics, models.Tactic{
			Name:        cat.TacticName,
			Confidence:  cat.Confidence,
			Evidence:    evidenceSlice(matched),
			Explanation: cat.Explanation,
		})
	}

	if len(report.Tactics) == 0 {
		report.Tactics = append(report.Tactics, models.Tactic{
			Name:        "Low Signal",
			Confidence:  lowSignalConfidence,
			Evidence:    []string{},
			Explanation: "No known social-engineering markers detected",
		})
	}

	report.Score = clampScore(score)
	return report
}

func (e *SignalExtractor) extractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	return dedupeOrdered(matches, true, e.maxEntities)
}

func (e *SignalExtractor) extractEmails(text string) []string {
	matches := emailPattern.FindAllString(text, -1)
	return dedupeOrdered(matches, false, e.maxEntities)
}

func (e *SignalExtractor) extractPhoneNumbers(text string) []string {
	matches := phonePattern.FindAllString(text, -1)
	cleaned := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		// Require at least 10 digits to filter out dates and short numbers
		if countDigits(m) >= 10 {
			cleaned = append(cleaned, m)
		}
	}
	return dedupeOrdered(cleaned, false, e.maxEntities)
}

// dedupeOrdered removes duplicates preserving first-seen order. URLs are
// deduped case-insensitively; other entities by exact match.
func dedupeOrdered(items []string, caseInsensitive bool, limit int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := item
		if caseInsensitive {
			key = strings.ToLower(item)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func matchPhrases(lower string, phrases []string) []string {
	var matched []string
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// evidenceSlice returns at most the first three items for tactic evidence.
func evidenceSlice(items []string) []string {
	if len(items) > 3 {
		items = items[:3]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func containsShortener(lower string) bool {
	for _, d := range shortenerDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

func matchedShorteners(lower string) []string {
	var out []string
	for _, d := range shortenerDomains {
		if strings.Contains(lower, d) {
			out = append(out, d)
		}
	}
	return evidenceSlice(out)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
