package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"redflag-lab/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// provider is one concrete external classification backend.
type provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

// Config holds external classifier settings.
type Config struct {
	Provider     string
	ClaudeAPIKey string
	OpenAIAPIKey string
	Model        string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
}

// Classifier sends a message to an external language model and returns its
// schema-validated judgment. Any failure is returned as an error; the caller
// falls back to the heuristic-only result.
type Classifier struct {
	provider provider
	timeout  time.Duration
	logger   *logger.Logger
}

// NewClassifier creates a classifier for the configured provider, or an error
// if no usable credential is present.
func NewClassifier(cfg Config, log *logger.Logger) (*Classifier, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1500
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}

	var p provider
	switch cfg.Provider {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			return nil, fmt.Errorf("claude provider selected but no API key configured")
		}
		if cfg.Model == "" {
			cfg.Model = "claude-3-5-sonnet-20241022"
		}
		p = newClaudeProvider(cfg)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider selected but no API key configured")
		}
		if cfg.Model == "" {
			cfg.Model = "gpt-4o-mini"
		}
		p = newOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Provider)
	}

	return &Classifier{
		provider: p,
		timeout:  cfg.Timeout,
		logger:   log.WithComponent("classifier"),
	}, nil
}

// ClassifyRequest carries everything the prompt builder needs.
type ClassifyRequest struct {
	Kind       string
	EmailMode  string
	Text       string
	KBContext  string
	SenderHint string
}

// Classify sends the message for judgment under a bounded timeout and
// validates the response. The request text is included verbatim.
func (c *Classifier) Classify(ctx context.Context, req *ClassifyRequest) (*ModelJudgment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	content, err := c.provider.Complete(ctx, systemPrompt, c.buildUserPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", c.provider.Name(), err)
	}

	raw, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	judgment, err := ParseJudgment(raw, len(req.Text))
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("provider", c.provider.Name()).
		Int("risk_score", judgment.RiskScore).
		Dur("elapsed", time.Since(start)).
		Msg("classifier judgment accepted")

	return judgment, nil
}

const systemPrompt = `You are a social-engineering analyst. Assess the message for manipulation, phishing, fraud and scam patterns.

Respond with ONLY a JSON object in exactly this shape, no prose:
{
  "risk_score": integer 0-100,
  "verdict": "harmless" | "suspicious" | "dangerous",
  "tactics": [{"name": string, "confidence": integer 0-100, "evidence": [string], "explanation": string}],
  "suspicious_spans": [{"start": int, "end": int, "label": string, "reason": string}],
  "extracted": {"urls": [string], "phone_numbers": [string], "emails": [string]},
  "attack_types": [{"tag": string, "confidence": integer 0-100, "rationale": string}],
  "next_steps": [string],
  "safe_reply": string,
  "summary": string
}

Span start/end are byte offsets into the exact message text as given. Never advise clicking links or sharing codes.`

func (c *Classifier) buildUserPrompt(req *ClassifyRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Message kind: %s\n", req.Kind)
	if req.EmailMode != "" {
		fmt.Fprintf(&b, "Email context: %s\n", req.EmailMode)
	}
	if req.SenderHint != "" {
		fmt.Fprintf(&b, "Claimed sender: %s\n", req.SenderHint)
	}
	if req.KBContext != "" {
		b.WriteString("\n")
		b.WriteString(req.KBContext)
	}

	b.WriteString("\nMessage to analyze:\n```\n")
	b.WriteString(req.Text)
	b.WriteString("\n```\n")

	return b.String()
}
