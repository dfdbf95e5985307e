package services

import (
	"sort"
	"strings"

	"redflag-lab/internal/domain/models"
)

// SpanLocator finds every case-insensitive occurrence of the highlight
// dictionary phrases in the original text. Indices always reference the
// caller's exact text, never a normalized copy.
type SpanLocator struct {
	maxSpans int
}

// NewSpanLocator creates a span locator with the given global cap.
func NewSpanLocator(maxSpans int) *SpanLocator {
	if maxSpans <= 0 {
		maxSpans = 30
	}
	return &SpanLocator{maxSpans: maxSpans}
}

// Locate returns merged, non-overlapping spans over text, capped. Repeated
// occurrences of the same phrase all count; repeated risky phrases are
// meaningfully riskier.
func (l *SpanLocator) Locate(text string) []models.SuspiciousSpan {
	lower := lowerASCII(text)

	var raw []models.SuspiciousSpan
	for _, entry := range spanDictionary {
		phrase := strings.ToLower(entry.Phrase)
		from := 0
		for len(raw) < l.maxSpans {
			idx := strings.Index(lower[from:], phrase)
			if idx < 0 {
				break
			}
			start := from + idx
			raw = append(raw, models.SuspiciousSpan{
				Start:  start,
				End:    start + len(phrase),
				Label:  entry.Label,
				Reason: entry.Reason,
			})
			from = start + len(phrase)
		}
		if len(raw) >= l.maxSpans {
			break
		}
	}

	return mergeSpans(raw)
}

// lowerASCII lowercases A-Z only, so byte offsets stay identical to the
// original text. strings.ToLower can change byte length for some runes,
// which would corrupt span indices.
func lowerASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// mergeSpans collapses overlapping or adjacent spans into maximal
// non-overlapping intervals, keeping the first span's label and reason.
func mergeSpans(spans []models.SuspiciousSpan) []models.SuspiciousSpan {
	if len(spans) == 0 {
		return []models.SuspiciousSpan{}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})

	merged := []models.SuspiciousSpan{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}

	return merged
}
