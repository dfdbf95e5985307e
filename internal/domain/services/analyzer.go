package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"redflag-lab/internal/ai"
	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/knowledge"
	"redflag-lab/pkg/logger"
)

const (
	blendModelWeight     = 0.55
	blendHeuristicWeight = 0.45
	kbBoostCap           = 25
	mismatchFloor        = 70

	dangerousThreshold  = 70
	suspiciousThreshold = 35
)

// ModelClassifier is the optional external judgment source. A nil classifier
// means heuristic-only mode process-wide.
type ModelClassifier interface {
	Classify(ctx context.Context, req *ai.ClassifyRequest) (*ai.ModelJudgment, error)
}

// MessageAnalyzer runs the full analysis pipeline for one message. All
// derived data is request-scoped; the only shared state is the immutable
// knowledge base and the stats counters.
type MessageAnalyzer struct {
	extractor  *SignalExtractor
	spans      *SpanLocator
	attacks    *AttackTypeClassifier
	sender     *SenderAnalyzer
	advice     *AdviceComposer
	retriever  *knowledge.Retriever
	classifier ModelClassifier

	contextChars int
	logger       *logger.Logger

	mu    sync.RWMutex
	stats models.AnalyzerStats
}

// AnalyzerOptions carries pipeline tunables.
type AnalyzerOptions struct {
	MaxEntities  int
	MaxSpans     int
	ContextChars int
}

// NewMessageAnalyzer wires the pipeline. classifier may be nil.
func NewMessageAnalyzer(retriever *knowledge.Retriever, classifier ModelClassifier, opts AnalyzerOptions, log *logger.Logger) *MessageAnalyzer {
	if opts.ContextChars <= 0 {
		opts.ContextChars = 3500
	}
	return &MessageAnalyzer{
		extractor:    NewSignalExtractor(opts.MaxEntities),
		spans:        NewSpanLocator(opts.MaxSpans),
		attacks:      NewAttackTypeClassifier(),
		sender:       NewSenderAnalyzer(),
		advice:       NewAdviceComposer(),
		retriever:    retriever,
		classifier:   classifier,
		contextChars: opts.ContextChars,
		logger:       log.WithComponent("analyzer"),
		stats: models.AnalyzerStats{
			StartedAt:       time.Now(),
			AttackTagCounts: make(map[string]int64),
		},
	}
}

// Analyze runs the pipeline over one message. The heuristic result is always
// computed in full; an external judgment, when available and valid, is
// blended in afterwards. Classifier failure never fails the request.
func (a *MessageAnalyzer) Analyze(ctx context.Context, input *models.AnalysisInput) (*models.AnalysisResult, error) {
	emailMode := input.EmailMode
	if input.Kind == models.KindEmail && emailMode == "" {
		emailMode = models.EmailModePersonal
	}

	report := a.extractor.Extract(input.Text)
	spans := a.spans.Locate(input.Text)
	attackTypes := a.attacks.Classify(input.Kind, report)
	mismatch := DetectKindMismatch(input.Kind, input.Text)
	kb := a.retriever.Query(input.Text, input.Kind, emailMode, mismatch)

	judgment := a.consultClassifier(ctx, input, emailMode, kb)

	heuristic := report.Score
	score := heuristic
	if judgment != nil {
		score = int(math.Round(blendModelWeight*float64(judgment.RiskScore) + blendHeuristicWeight*float64(heuristic)))
	}

	if boost := kbBoost(kb.RiskBoostSum); boost > 0 {
		score += boost
	}
	if score < kb.MinRiskMax {
		score = kb.MinRiskMax
	}
	if mismatch && score < mismatchFloor {
		score = mismatchFloor
	}
	score = clampScore(score)

	verdict := verdictFor(score)

	summary := a.advice.Summary(verdict, report.Tactics, mismatch)
	if judgment != nil && judgment.Summary != "" {
		summary = judgment.Summary
		if mismatch {
			summary = EnsureMismatchStated(summary)
		}
	}

	result := &models.AnalysisResult{
		ID:              uuid.New().String(),
		RiskScore:       score,
		Verdict:         verdict,
		Tactics:         report.Tactics,
		SuspiciousSpans: spans,
		Extracted:       report.Entities,
		AttackTypes:     attackTypes,
		NextSteps:       a.advice.NextSteps(input.Kind, emailMode, mismatch, score),
		SafeReply:       a.advice.SafeReply(input.Kind, emailMode, kb.SafeReply()),
		Summary:         summary,
		AnalyzedAt:      time.Now(),
	}

	if input.Kind == models.KindEmail {
		result.Sender = a.sender.Analyze(input.Text, input.SenderEmail, report.Entities.URLs)
	}

	a.recordStats(verdict, judgment != nil, attackTypes)

	a.logger.Debug().
		Str("kind", input.Kind).
		Int("heuristic_score", heuristic).
		Int("final_score", score).
		Str("verdict", verdict).
		Bool("blended", judgment != nil).
		Bool("mismatch", mismatch).
		Msg("analysis complete")

	return result, nil
}

// AnalyzeBatch runs Analyze over each message in order.
func (a *MessageAnalyzer) AnalyzeBatch(ctx context.Context, req *models.BatchAnalysisRequest) (*models.BatchAnalysisResponse, error) {
	resp := &models.BatchAnalysisResponse{
		Results: make([]models.AnalysisResult, 0, len(req.Messages)),
		Total:   len(req.Messages),
	}

	for i := range req.Messages {
		result, err := a.Analyze(ctx, &req.Messages[i])
		if err != nil {
			a.logger.Warn().Err(err).Int("index", i).Msg("failed to analyze batch message")
			continue
		}
		resp.Results = append(resp.Results, *result)
	}

	return resp, nil
}

// consultClassifier asks the external model for a judgment. Every failure
// path returns nil so the caller serves the heuristic-only result.
func (a *MessageAnalyzer) consultClassifier(ctx context.Context, input *models.AnalysisInput, emailMode string, kb *knowledge.RetrievalResult) *ai.ModelJudgment {
	if a.classifier == nil {
		return nil
	}

	judgment, err := a.classifier.Classify(ctx, &ai.ClassifyRequest{
		Kind:       input.Kind,
		EmailMode:  emailMode,
		Text:       input.Text,
		KBContext:  kb.RenderContext(a.contextChars),
		SenderHint: input.SenderEmail,
	})
	if err != nil {
		a.mu.Lock()
		a.stats.FallbackCount++
		a.mu.Unlock()
		a.logger.Warn().Err(err).Msg("classifier unavailable, serving heuristic result")
		return nil
	}
	return judgment
}

// Stats returns a snapshot of the process-wide counters.
func (a *MessageAnalyzer) Stats() models.AnalyzerStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snapshot := a.stats
	snapshot.AttackTagCounts = make(map[string]int64, len(a.stats.AttackTagCounts))
	for tag, n := range a.stats.AttackTagCounts {
		snapshot.AttackTagCounts[tag] = n
	}
	return snapshot
}

func (a *MessageAnalyzer) recordStats(verdict string, blended bool, attackTypes []models.AttackType) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.TotalAnalyzed++
	switch verdict {
	case models.VerdictDangerous:
		a.stats.DangerousCount++
	case models.VerdictSuspicious:
		a.stats.SuspiciousCount++
	default:
		a.stats.HarmlessCount++
	}
	if blended {
		a.stats.BlendedCount++
	}
	if len(attackTypes) > 0 {
		a.stats.AttackTagCounts[attackTypes[0].Tag]++
	}
}

// PatternInfo describes one rule-table category for the patterns endpoint.
type PatternInfo struct {
	Category   string   `json:"category"`
	TacticName string   `json:"tactic_name"`
	Weight     int      `json:"weight"`
	Confidence int      `json:"confidence"`
	Phrases    []string `json:"phrases"`
}

// Patterns exposes the rule table for inspection.
func (a *MessageAnalyzer) Patterns() []PatternInfo {
	out := make([]PatternInfo, 0, len(ruleTable))
	for _, cat := range ruleTable {
		phrases := make([]string, len(cat.Phrases))
		copy(phrases, cat.Phrases)
		out = append(out, PatternInfo{
			Category:   cat.Key,
			TacticName: cat.TacticName,
			Weight:     cat.Weight,
			Confidence: cat.Confidence,
			Phrases:    phrases,
		})
	}
	return out
}

// SpanDictionaryEntry describes one highlight phrase for the patterns endpoint.
type SpanDictionaryEntry struct {
	Label  string `json:"label"`
	Phrase string `json:"phrase"`
	Reason string `json:"reason"`
}

// SpanDictionary exposes the highlight dictionary for inspection.
func (a *MessageAnalyzer) SpanDictionary() []SpanDictionaryEntry {
	out := make([]SpanDictionaryEntry, 0, len(spanDictionary))
	for _, e := range spanDictionary {
		out = append(out, SpanDictionaryEntry{Label: e.Label, Phrase: e.Phrase, Reason: e.Reason})
	}
	return out
}

func kbBoost(riskBoostSum int) int {
	boost := int(math.Round(float64(riskBoostSum) / 3.0))
	if boost > kbBoostCap {
		boost = kbBoostCap
	}
	return boost
}

func verdictFor(score int) string {
	switch {
	case score >= dangerousThreshold:
		return models.VerdictDangerous
	case score >= suspiciousThreshold:
		return models.VerdictSuspicious
	default:
		return models.VerdictHarmless
	}
}
