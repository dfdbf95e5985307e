package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag-lab/internal/ai"
	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/knowledge"
	"redflag-lab/pkg/logger"
)

type fakeClassifier struct {
	judgment *ai.ModelJudgment
	err      error
	calls    int
}

func (f *fakeClassifier) Classify(ctx context.Context, req *ai.ClassifyRequest) (*ai.ModelJudgment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.judgment, nil
}

func newTestAnalyzer(classifier ModelClassifier) *MessageAnalyzer {
	retriever := knowledge.NewRetriever(knowledge.DefaultEntries())
	return NewMessageAnalyzer(retriever, classifier, AnalyzerOptions{}, logger.NewDefault())
}

func TestAnalyzeHeuristicLockout(t *testing.T) {
	a := newTestAnalyzer(nil)

	result, err := a.Analyze(context.Background(), &models.AnalysisInput{
		Kind: models.KindText,
		Text: "Your account will be locked in 30 minutes. Verify immediately: https://bit.ly/lock-verify",
	})
	require.NoError(t, err)

	assert.Equal(t, 46, result.RiskScore)
	assert.Equal(t, models.VerdictSuspicious, result.Verdict)
	require.NotEmpty(t, result.Extracted.URLs)
	assert.Contains(t, result.Extracted.URLs[0], "bit.ly")
	assert.Nil(t, result.Sender)

	stats := a.Stats()
	assert.Equal(t, int64(1), stats.TotalAnalyzed)
	assert.Equal(t, int64(1), stats.SuspiciousCount)
	assert.Equal(t, int64(1), stats.AttackTagCounts["phishing"])
}

func TestAnalyzeLowSignal(t *testing.T) {
	a := newTestAnalyzer(nil)

	result, err := a.Analyze(context.Background(), &models.AnalysisInput{
		Kind: models.KindText,
		Text: "Lunch at noon tomorrow?",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, models.VerdictHarmless, result.Verdict)
	require.Len(t, result.Tactics, 1)
	assert.Equal(t, "Low Signal", result.Tactics[0].Name)
	assert.Equal(t, 60, result.Tactics[0].Confidence)
}

func TestAnalyzeMismatchFloor(t *testing.T) {
	a := newTestAnalyzer(nil)

	result, err := a.Analyze(context.Background(), &models.AnalysisInput{
		Kind: models.KindEmail,
		Text: "They don't want you to know this! Share before it's deleted. Link in bio.",
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.RiskScore, 70)
	assert.Equal(t, models.VerdictDangerous, result.Verdict)
	require.NotEmpty(t, result.NextSteps)
	assert.Contains(t, result.NextSteps[0], "Switch to the social-post tab")
	assert.Contains(t, result.Summary, "Format mismatch")
}

func TestAnalyzeKnowledgeBoostAndFloor(t *testing.T) {
	a := newTestAnalyzer(nil)

	result, err := a.Analyze(context.Background(), &models.AnalysisInput{
		Kind: models.KindText,
		Text: "They asked me to pay with a gift card",
	})
	require.NoError(t, err)

	// money(16) + boost(round(25/3)=8) = 24, floored at the entry minimum 55
	assert.Equal(t, 55, result.RiskScore)
	assert.Equal(t, models.VerdictSuspicious, result.Verdict)
	assert.Contains(t, result.SafeReply, "gift cards")
}

func TestAnalyzeBlendedScore(t *testing.T) {
	fake := &fakeClassifier{judgment: &ai.ModelJudgment{
		RiskScore: 80,
		Verdict:   models.VerdictDangerous,
		Summary:   "The model thinks this is bad.",
	}}
	a := newTestAnalyzer(fake)

	result, err := a.Analyze(context.Background(), &models.AnalysisInput{
		Kind: models.KindText,
		Text: "See you at the cinema tonight",
	})
	require.NoError(t, err)

	// round(0.55*80 + 0.45*0) = 44
	assert.Equal(t, 44, result.RiskScore)
	assert.Equal(t, models.VerdictSuspicious, result.Verdict)
	assert.Equal(t, "The model thinks this is bad.", result.Summary)
	assert.Equal(t, 1, fake.calls)

	stats := a.Stats()
	assert.Equal(t, int64(1), stats.BlendedCount)
	assert.Equal(t, int64(0), stats.FallbackCount)
}

func TestAnalyzeClassifierFailureFallsBack(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("upstream timeout")}
	a := newTestAnalyzer(fake)

	input := &models.AnalysisInput{
		Kind: models.KindText,
		Text: "Your account will be locked in 30 minutes. Verify immediately: https://bit.ly/lock-verify",
	}

	result, err := a.Analyze(context.Background(), input)
	require.NoError(t, err)

	// Same result the heuristic-only path produces
	assert.Equal(t, 46, result.RiskScore)
	assert.Equal(t, models.VerdictSuspicious, result.Verdict)

	stats := a.Stats()
	assert.Equal(t, int64(1), stats.FallbackCount)
	assert.Equal(t, int64(0), stats.BlendedCount)
}

func TestAnalyzeModelSummaryGetsMismatchPrefix(t *testing.T) {
	fake := &fakeClassifier{judgment: &ai.ModelJudgment{
		RiskScore: 90,
		Verdict:   models.VerdictDangerous,
		Summary:   "Classic viral bait.",
	}}
	a := newTestAnalyzer(fake)

	result, err := a.Analyze(context.Background(), &models.AnalysisInput{
		Kind: models.KindEmail,
		Text: "Share before it's deleted! Link in bio.",
	})
	require.NoError(t, err)

	assert.Contains(t, result.Summary, "Format mismatch")
	assert.Contains(t, result.Summary, "Classic viral bait.")
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(nil)
	input := &models.AnalysisInput{
		Kind: models.KindText,
		Text: "URGENT: verify your account at https://bit.ly/x",
	}

	first, err := a.Analyze(context.Background(), input)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.Verdict, second.Verdict)
	assert.Equal(t, first.Tactics, second.Tactics)
	assert.Equal(t, first.SuspiciousSpans, second.SuspiciousSpans)
	assert.Equal(t, first.AttackTypes, second.AttackTypes)
	assert.Equal(t, first.NextSteps, second.NextSteps)
}

func TestAnalyzeEmailIncludesSender(t *testing.T) {
	a := newTestAnalyzer(nil)

	result, err := a.Analyze(context.Background(), &models.AnalysisInput{
		Kind: models.KindEmail,
		Text: "From: ceo@gmail.com\nSubject: favor\n\nThis is your CEO, buy gift cards now.",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Sender)
	assert.Equal(t, "ceo@gmail.com", result.Sender.SenderEmail)
	assert.NotEmpty(t, result.Sender.Flags)
}

func TestAnalyzeVerdictConsistency(t *testing.T) {
	a := newTestAnalyzer(nil)

	texts := []string{
		"Lunch at noon tomorrow?",
		"this is urgent",
		"Your account will be locked. Verify immediately: https://bit.ly/x",
		"Send the verification code and your password, this is urgent, act now https://bit.ly/x",
	}

	for _, text := range texts {
		result, err := a.Analyze(context.Background(), &models.AnalysisInput{Kind: models.KindText, Text: text})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.RiskScore, 0)
		assert.LessOrEqual(t, result.RiskScore, 100)

		switch {
		case result.RiskScore >= 70:
			assert.Equal(t, models.VerdictDangerous, result.Verdict)
		case result.RiskScore >= 35:
			assert.Equal(t, models.VerdictSuspicious, result.Verdict)
		default:
			assert.Equal(t, models.VerdictHarmless, result.Verdict)
		}
	}
}

func TestAnalyzeBatch(t *testing.T) {
	a := newTestAnalyzer(nil)

	resp, err := a.AnalyzeBatch(context.Background(), &models.BatchAnalysisRequest{
		Messages: []models.AnalysisInput{
			{Kind: models.KindText, Text: "Lunch at noon tomorrow?"},
			{Kind: models.KindText, Text: "this is urgent, act now"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, models.VerdictHarmless, resp.Results[0].Verdict)
}

func TestPatternsExposed(t *testing.T) {
	a := newTestAnalyzer(nil)
	patterns := a.Patterns()

	require.NotEmpty(t, patterns)
	for _, p := range patterns {
		assert.NotEmpty(t, p.Category)
		assert.Greater(t, p.Weight, 0)
		assert.NotEmpty(t, p.Phrases)
	}
}
