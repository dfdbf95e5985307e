package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"redflag-lab/internal/domain/models"
)

// ModelJudgment is the validated payload an external classifier returned.
type ModelJudgment struct {
	RiskScore       int
	Verdict         string
	Tactics         []models.Tactic
	SuspiciousSpans []models.SuspiciousSpan
	Extracted       models.ExtractedEntities
	AttackTypes     []models.AttackType
	NextSteps       []string
	SafeReply       string
	Summary         string
}

// Wire types use pointers for required scalars so missing fields are
// distinguishable from zero values.
type judgmentWire struct {
	RiskScore       *float64      `json:"risk_score"`
	Verdict         *string       `json:"verdict"`
	Tactics         []tacticWire  `json:"tactics"`
	SuspiciousSpans []spanWire    `json:"suspicious_spans"`
	Extracted       *entitiesWire `json:"extracted"`
	AttackTypes     []attackWire  `json:"attack_types"`
	NextSteps       []string      `json:"next_steps"`
	SafeReply       *string       `json:"safe_reply"`
	Summary         *string       `json:"summary"`
}

type tacticWire struct {
	Name        *string  `json:"name"`
	Confidence  *float64 `json:"confidence"`
	Evidence    []string `json:"evidence"`
	Explanation *string  `json:"explanation"`
}

type spanWire struct {
	Start  *int    `json:"start"`
	End    *int    `json:"end"`
	Label  *string `json:"label"`
	Reason *string `json:"reason"`
}

type entitiesWire struct {
	URLs         []string `json:"urls"`
	PhoneNumbers []string `json:"phone_numbers"`
	Emails       []string `json:"emails"`
}

type attackWire struct {
	Tag        *string  `json:"tag"`
	Confidence *float64 `json:"confidence"`
	Rationale  *string  `json:"rationale"`
}

// ParseJudgment decodes and validates raw classifier output against the
// response schema. Anything not exactly matching the shape is rejected;
// nothing is coerced.
func ParseJudgment(raw []byte, textLen int) (*ModelJudgment, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var wire judgmentWire
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("response is not valid schema JSON: %w", err)
	}

	if wire.RiskScore == nil {
		return nil, fmt.Errorf("missing required field risk_score")
	}
	score := *wire.RiskScore
	if score != math.Trunc(score) || score < 0 || score > 100 {
		return nil, fmt.Errorf("risk_score %v out of range [0,100]", score)
	}

	if wire.Verdict == nil {
		return nil, fmt.Errorf("missing required field verdict")
	}
	switch *wire.Verdict {
	case models.VerdictHarmless, models.VerdictSuspicious, models.VerdictDangerous:
	default:
		return nil, fmt.Errorf("invalid verdict %q", *wire.Verdict)
	}

	if wire.SafeReply == nil {
		return nil, fmt.Errorf("missing required field safe_reply")
	}
	if wire.Summary == nil {
		return nil, fmt.Errorf("missing required field summary")
	}
	if wire.Extracted == nil {
		return nil, fmt.Errorf("missing required field extracted")
	}
	if wire.NextSteps == nil {
		return nil, fmt.Errorf("missing required field next_steps")
	}
	if wire.Tactics == nil {
		return nil, fmt.Errorf("missing required field tactics")
	}
	if wire.SuspiciousSpans == nil {
		return nil, fmt.Errorf("missing required field suspicious_spans")
	}
	if wire.AttackTypes == nil {
		return nil, fmt.Errorf("missing required field attack_types")
	}

	out := &ModelJudgment{
		RiskScore: int(score),
		Verdict:   *wire.Verdict,
		Extracted: models.ExtractedEntities{
			URLs:         orEmpty(wire.Extracted.URLs),
			PhoneNumbers: orEmpty(wire.Extracted.PhoneNumbers),
			Emails:       orEmpty(wire.Extracted.Emails),
		},
		NextSteps: wire.NextSteps,
		SafeReply: *wire.SafeReply,
		Summary:   *wire.Summary,
	}

	for i, t := range wire.Tactics {
		if t.Name == nil || t.Confidence == nil {
			return nil, fmt.Errorf("tactics[%d] missing name or confidence", i)
		}
		if *t.Confidence < 0 || *t.Confidence > 100 {
			return nil, fmt.Errorf("tactics[%d] confidence %v out of range", i, *t.Confidence)
		}
		explanation := ""
		if t.Explanation != nil {
			explanation = *t.Explanation
		}
		out.Tactics = append(out.Tactics, models.Tactic{
			Name:        *t.Name,
			Confidence:  int(*t.Confidence),
			Evidence:    orEmpty(t.Evidence),
			Explanation: explanation,
		})
	}

	for i, s := range wire.SuspiciousSpans {
		if s.Start == nil || s.End == nil || s.Label == nil {
			return nil, fmt.Errorf("suspicious_spans[%d] missing required fields", i)
		}
		if *s.Start < 0 || *s.End <= *s.Start || (textLen > 0 && *s.End > textLen) {
			return nil, fmt.Errorf("suspicious_spans[%d] invalid range [%d,%d)", i, *s.Start, *s.End)
		}
		reason := ""
		if s.Reason != nil {
			reason = *s.Reason
		}
		out.SuspiciousSpans = append(out.SuspiciousSpans, models.SuspiciousSpan{
			Start:  *s.Start,
			End:    *s.End,
			Label:  *s.Label,
			Reason: reason,
		})
	}

	for i, a := range wire.AttackTypes {
		if a.Tag == nil || a.Confidence == nil {
			return nil, fmt.Errorf("attack_types[%d] missing tag or confidence", i)
		}
		if *a.Confidence < 0 || *a.Confidence > 100 {
			return nil, fmt.Errorf("attack_types[%d] confidence %v out of range", i, *a.Confidence)
		}
		rationale := ""
		if a.Rationale != nil {
			rationale = *a.Rationale
		}
		out.AttackTypes = append(out.AttackTypes, models.AttackType{
			Tag:        *a.Tag,
			Confidence: int(*a.Confidence),
			Rationale:  rationale,
		})
	}

	return out, nil
}

// ExtractJSON pulls a JSON object out of classifier output that may be
// wrapped in markdown fences or surrounding prose.
func ExtractJSON(content string) ([]byte, error) {
	content = strings.TrimSpace(content)

	if strings.Contains(content, "```json") {
		start := strings.Index(content, "```json") + len("```json")
		if end := strings.Index(content[start:], "```"); end >= 0 {
			content = content[start : start+end]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	return []byte(content[start : end+1]), nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
