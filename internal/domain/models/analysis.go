package models

import "time"

// Message kinds accepted by the analyzer
const (
	KindText   = "text"
	KindEmail  = "email"
	KindSocial = "social"
)

// Email modes, only meaningful for KindEmail
const (
	EmailModePersonal = "personal"
	EmailModeWork     = "work"
)

// Verdict levels, fixed thresholds applied to the final score
const (
	VerdictHarmless   = "harmless"
	VerdictSuspicious = "suspicious"
	VerdictDangerous  = "dangerous"
)

// ValidKind reports whether k is an accepted message kind.
func ValidKind(k string) bool {
	return k == KindText || k == KindEmail || k == KindSocial
}

// ValidEmailMode reports whether m is an accepted email mode.
// Empty is valid and defaults to personal downstream.
func ValidEmailMode(m string) bool {
	return m == "" || m == EmailModePersonal || m == EmailModeWork
}

// AnalysisInput is the request body for an analysis.
// Text is never mutated; all span indices reference it verbatim.
type AnalysisInput struct {
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	EmailMode   string `json:"email_mode,omitempty"`
	SenderEmail string `json:"sender_email,omitempty"`
}

// ExtractedEntities holds structured tokens pulled from the message text,
// in first-occurrence order with exact duplicates removed.
type ExtractedEntities struct {
	URLs         []string `json:"urls"`
	PhoneNumbers []string `json:"phone_numbers"`
	Emails       []string `json:"emails"`
}

// Tactic is one detected social-engineering technique with its evidence.
type Tactic struct {
	Name        string   `json:"name"`
	Confidence  int      `json:"confidence"`
	Evidence    []string `json:"evidence"`
	Explanation string   `json:"explanation"`
}

// SuspiciousSpan marks a byte range of the original text for highlighting.
type SuspiciousSpan struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// AttackType is a coarse classification tag, deduplicated by max confidence.
type AttackType struct {
	Tag        string `json:"tag"`
	Confidence int    `json:"confidence"`
	Rationale  string `json:"rationale"`
}

// SenderAnalysis holds header-derived sender details for email-kind input.
// All fields are empty when no header lines were found; that is not an error.
type SenderAnalysis struct {
	SenderEmail string   `json:"sender_email"`
	FromHeader  string   `json:"from_header"`
	ReplyTo     string   `json:"reply_to"`
	ReturnPath  string   `json:"return_path"`
	Domain      string   `json:"domain"`
	Flags       []string `json:"flags"`
}

// AnalysisResult is the complete response for one analyzed message.
type AnalysisResult struct {
	ID              string            `json:"id"`
	RiskScore       int               `json:"risk_score"`
	Verdict         string            `json:"verdict"`
	Tactics         []Tactic          `json:"tactics"`
	SuspiciousSpans []SuspiciousSpan  `json:"suspicious_spans"`
	Extracted       ExtractedEntities `json:"extracted"`
	AttackTypes     []AttackType      `json:"attack_types"`
	NextSteps       []string          `json:"next_steps"`
	SafeReply       string            `json:"safe_reply"`
	Summary         string            `json:"summary"`
	Sender          *SenderAnalysis   `json:"sender,omitempty"`
	AnalyzedAt      time.Time         `json:"analyzed_at"`
}

// BatchAnalysisRequest carries multiple messages to analyze in one call.
type BatchAnalysisRequest struct {
	Messages []AnalysisInput `json:"messages"`
}

// BatchAnalysisResponse is the aggregate result for a batch request.
type BatchAnalysisResponse struct {
	Results []AnalysisResult `json:"results"`
	Total   int              `json:"total"`
}

// AnalyzerStats tracks process-wide counters since startup.
type AnalyzerStats struct {
	TotalAnalyzed   int64            `json:"total_analyzed"`
	DangerousCount  int64            `json:"dangerous_count"`
	SuspiciousCount int64            `json:"suspicious_count"`
	HarmlessCount   int64            `json:"harmless_count"`
	BlendedCount    int64            `json:"blended_count"`
	FallbackCount   int64            `json:"fallback_count"`
	AttackTagCounts map[string]int64 `json:"attack_tag_counts"`
	StartedAt       time.Time        `json:"started_at"`
}
