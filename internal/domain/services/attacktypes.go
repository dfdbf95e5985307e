package services

import (
	"sort"

	"redflag-lab/internal/domain/models"
)

const maxAttackTypes = 6

// AttackTypeClassifier maps keyword-hit signals and message kind onto coarse
// attack categories.
type AttackTypeClassifier struct{}

// NewAttackTypeClassifier creates an attack-type classifier.
func NewAttackTypeClassifier() *AttackTypeClassifier {
	return &AttackTypeClassifier{}
}

// Classify derives attack tags from the extractor's report. Duplicate tags
// keep only the highest-confidence instance; the result is sorted descending
// by confidence and capped.
func (c *AttackTypeClassifier) Classify(kind string, report *SignalReport) []models.AttackType {
	hasCred := report.Triggered["credential"]
	hasOTP := report.Triggered["otp"]
	hasMoney := report.Triggered["money"]
	hasAuthority := report.Triggered["authority"]
	hasAttachment := report.Triggered["attachment"]
	hasVirality := report.Triggered["virality"]
	hasGetRich := report.Triggered["getrich"]

	var candidates []models.AttackType

	if (kind == models.KindEmail || kind == models.KindText) && (hasCred || hasOTP || report.HasURLs) {
		conf := 55
		if hasOTP {
			conf += 30
		}
		if hasCred {
			conf += 20
		}
		if report.HasURLs {
			conf += 10
		}
		if conf > 95 {
			conf = 95
		}
		candidates = append(candidates, models.AttackType{
			Tag:        "phishing",
			Confidence: conf,
			Rationale:  "Credential or code request combined with link delivery",
		})
	}

	if hasAuthority {
		candidates = append(candidates, models.AttackType{
			Tag:        "pretexting",
			Confidence: 80,
			Rationale:  "Sender impersonates an authority figure or organization",
		})
	}

	if hasMoney && hasAuthority {
		candidates = append(candidates, models.AttackType{
			Tag:        "BEC / CEO fraud",
			Confidence: 85,
			Rationale:  "Payment request paired with executive or organizational impersonation",
		})
	}

	if hasAttachment {
		candidates = append(candidates, models.AttackType{
			Tag:        "malware lure",
			Confidence: 75,
			Rationale:  "Pushes the recipient to open a file or enable macros",
		})
	}

	if hasOTP {
		candidates = append(candidates, models.AttackType{
			Tag:        "code theft",
			Confidence: 90,
			Rationale:  "Asks for a one-time code, enabling account takeover",
		})
	}

	if hasCred {
		candidates = append(candidates, models.AttackType{
			Tag:        "credential harvesting",
			Confidence: 84,
			Rationale:  "Attempts to capture login or identity details",
		})
	}

	if hasVirality || hasGetRich {
		candidates = append(candidates, models.AttackType{
			Tag:        "spam / engagement bait",
			Confidence: 85,
			Rationale:  "Engineered for resharing rather than genuine communication",
		})
	}

	if kind == models.KindSocial {
		if hasVirality {
			candidates = append(candidates, models.AttackType{
				Tag:        "misinformation / engagement bait",
				Confidence: 85,
				Rationale:  "Viral-bait framing designed to spread before verification",
			})
		}
		if hasGetRich {
			candidates = append(candidates, models.AttackType{
				Tag:        "investment fraud / get-rich-quick",
				Confidence: 85,
				Rationale:  "Promises outsized returns through an unverified channel",
			})
		}
	}

	return dedupeByMaxConfidence(candidates)
}

func dedupeByMaxConfidence(candidates []models.AttackType) []models.AttackType {
	best := make(map[string]models.AttackType, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		existing, ok := best[c.Tag]
		if !ok {
			order = append(order, c.Tag)
			best[c.Tag] = c
			continue
		}
		if c.Confidence > existing.Confidence {
			best[c.Tag] = c
		}
	}

	out := make([]models.AttackType, 0, len(order))
	for _, tag := range order {
		out = append(out, best[tag])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if len(out) > maxAttackTypes {
		out = out[:maxAttackTypes]
	}
	return out
}
