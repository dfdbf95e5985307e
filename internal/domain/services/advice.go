package services

import (
	"regexp"
	"strings"

	"redflag-lab/internal/domain/models"
)

const maxNextSteps = 10

var headerLinePattern = regexp.MustCompile(`(?im)^(subject|from|to|date|cc):`)

// DetectKindMismatch reports whether text the user labeled as email actually
// reads like a viral social post: no email markers at all, but known
// viral-bait phrasing present.
func DetectKindMismatch(kind, text string) bool {
	if kind != models.KindEmail {
		return false
	}
	emailLike := headerLinePattern.MatchString(text) || strings.Contains(text, "@")
	if emailLike {
		return false
	}
	return containsAnyPhrase(strings.ToLower(text), viralBaitPhrases)
}

// AdviceComposer turns the final verdict context into next steps and a safe
// reply. Replies never instruct the user to click a link or share a code.
type AdviceComposer struct{}

// NewAdviceComposer creates an advice composer.
func NewAdviceComposer() *AdviceComposer {
	return &AdviceComposer{}
}

// NextSteps returns ordered guidance scaled by severity and tailored to the
// message kind. A detected kind mismatch prepends the tab-switch instruction
// regardless of kind.
func (c *AdviceComposer) NextSteps(kind, emailMode string, mismatch bool, score int) []string {
	var steps []string

	if mismatch {
		steps = append(steps,
			"Switch to the social-post tab: this content matches viral-post patterns, not email",
			"Treat viral-bait language as a manipulation marker; do not forward or reshare",
		)
	}

	switch {
	case kind == models.KindEmail && emailMode == models.EmailModeWork:
		steps = append(steps,
			"Verify the sender through your company directory, not by replying to this email",
			"Do not approve unexpected sign-in or MFA prompts",
		)
		if score >= 35 {
			steps = append(steps,
				"Report this email to your IT or security team",
				"Do not open attachments or click links until the sender is verified",
			)
		}
		if score >= 70 {
			steps = append(steps,
				"If you already clicked or entered credentials, tell IT now; early escalation limits damage",
				"Change your password from a known-good device",
			)
		}
	case kind == models.KindEmail:
		steps = append(steps,
			"Do not click any link in this email",
			"Check the claimed issue directly in the official app or website",
			"Never share one-time codes, even with callers claiming to be support",
		)
		if score >= 35 {
			steps = append(steps, "Block the sender and report the message as phishing")
		}
	case kind == models.KindSocial:
		steps = append(steps,
			"Do not reshare or repost this content",
			"Treat urgency and secrecy framing as bait, not news",
			"Report the post on the platform",
		)
	default:
		steps = append(steps,
			"Do not click the link or share any code",
			"Contact the organization through its official app or number",
			"Block the sender and report the message",
		)
	}

	if len(steps) > maxNextSteps {
		steps = steps[:maxNextSteps]
	}
	return steps
}

// SafeReply picks a reply template. A knowledge-base template wins; otherwise
// a kind-specific canned reply is used.
func (c *AdviceComposer) SafeReply(kind, emailMode, kbTemplate string) string {
	if kbTemplate != "" {
		return kbTemplate
	}

	switch {
	case kind == models.KindEmail && emailMode == models.EmailModeWork:
		return "Thanks for reaching out. Per our process I need to verify this request through official channels before acting on it. I'll follow up once confirmed."
	case kind == models.KindEmail:
		return "I don't act on account issues by email. I'll check my account directly through the official site."
	case kind == models.KindSocial:
		return "I'm not resharing this. I'd suggest checking a primary source before spreading it."
	default:
		return "I don't respond to requests like this by text. If this is legitimate, contact me through an official, verifiable channel."
	}
}

// Summary produces the heuristic-path summary line. When a mismatch is
// active, the format discrepancy is stated explicitly.
func (c *AdviceComposer) Summary(verdict string, tactics []models.Tactic, mismatch bool) string {
	var b strings.Builder
	if mismatch {
		b.WriteString("Format mismatch: this was submitted as an email but reads like a viral social post. ")
	}

	switch verdict {
	case models.VerdictDangerous:
		b.WriteString("This message shows strong social-engineering markers and should not be acted on.")
	case models.VerdictSuspicious:
		b.WriteString("This message shows several manipulation signals; verify independently before responding.")
	default:
		b.WriteString("No strong social-engineering markers were found, but stay cautious with unexpected requests.")
	}

	names := make([]string, 0, 3)
	for i, t := range tactics {
		if i == 3 {
			break
		}
		if t.Name == "Low Signal" {
			continue
		}
		names = append(names, t.Name)
	}
	if len(names) > 0 {
		b.WriteString(" Detected techniques: ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(".")
	}

	return b.String()
}

// EnsureMismatchStated prepends the mismatch notice to an externally produced
// summary that omitted it.
func EnsureMismatchStated(summary string) string {
	lower := strings.ToLower(summary)
	if strings.Contains(lower, "mismatch") || strings.Contains(lower, "not an email") {
		return summary
	}
	return "Format mismatch: this was submitted as an email but reads like a viral social post. " + summary
}
