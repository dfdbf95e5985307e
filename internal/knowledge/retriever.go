package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

const (
	defaultTopK     = 4
	tagMatchScore   = 3
	mismatchBonus   = 6
	workModeBias    = 2
	mismatchEntryID = "kb-format-mismatch"
	ceoFraudEntryID = "kb-ceo-fraud"
)

// Retriever ranks knowledge-base entries against message text by additive
// tag matching. The entry table is immutable for the process lifetime.
type Retriever struct {
	entries []Entry
	topK    int
}

// NewRetriever creates a retriever over the given entries.
func NewRetriever(entries []Entry) *Retriever {
	return &Retriever{entries: entries, topK: defaultTopK}
}

// RetrievalResult is the ranked hit list plus the two aggregates the score
// blender consumes.
type RetrievalResult struct {
	Entries      []Entry
	RiskBoostSum int
	MinRiskMax   int
}

// Query scores every entry against the lowercased text and returns the top k
// hits. Entries with no tag match score zero and are excluded, so unmatched
// text yields zero boost and zero minimum risk.
func (r *Retriever) Query(text, kind, emailMode string, mismatch bool) *RetrievalResult {
	lower := strings.ToLower(text)

	type scored struct {
		entry Entry
		score int
	}
	var hits []scored

	for _, entry := range r.entries {
		score := 0
		for _, tag := range entry.Tags {
			if strings.Contains(lower, tag) {
				score += tagMatchScore
			}
		}
		if mismatch && entry.ID == mismatchEntryID {
			score += mismatchBonus
		}
		if kind == "email" && emailMode == "work" && entry.ID == ceoFraudEntryID && score > 0 {
			score += workModeBias
		}
		if score > 0 {
			hits = append(hits, scored{entry: entry, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > r.topK {
		hits = hits[:r.topK]
	}

	result := &RetrievalResult{Entries: make([]Entry, 0, len(hits))}
	for _, h := range hits {
		result.Entries = append(result.Entries, h.entry)
		result.RiskBoostSum += h.entry.RiskBoost
		if h.entry.MinRisk > result.MinRiskMax {
			result.MinRiskMax = h.entry.MinRisk
		}
	}
	return result
}

// RenderContext renders the hit list as prompt context for the external
// classifier, truncated to maxChars to bound request cost.
func (res *RetrievalResult) RenderContext(maxChars int) string {
	if len(res.Entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Known scam patterns matched against this message:\n")
	for _, e := range res.Entries {
		fmt.Fprintf(&b, "- %s: %s\n", e.Title, e.WhyRisky)
		for _, step := range e.WhatToDo {
			fmt.Fprintf(&b, "  * %s\n", step)
		}
	}

	out := b.String()
	if maxChars > 0 && len(out) > maxChars {
		out = out[:maxChars]
	}
	return out
}

// SafeReply returns the first non-empty reply template among the hits.
func (res *RetrievalResult) SafeReply() string {
	for _, e := range res.Entries {
		if e.SafeReplyTemplate != "" {
			return e.SafeReplyTemplate
		}
	}
	return ""
}
