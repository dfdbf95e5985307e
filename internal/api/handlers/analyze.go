package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"redflag-lab/internal/config"
	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services"
	"redflag-lab/pkg/logger"
)

// AnalyzeHandler handles message analysis endpoints
type AnalyzeHandler struct {
	analyzer     *services.MessageAnalyzer
	minTextLen   int
	maxBatchSize int
	logger       *logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer *services.MessageAnalyzer, cfg *config.Config, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:     analyzer,
		minTextLen:   cfg.Analysis.MinTextLength,
		maxBatchSize: cfg.Analysis.MaxBatchSize,
		logger:       log.WithComponent("analyze-handler"),
	}
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var input models.AnalysisInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := h.validate(&input); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), &input)
	if err != nil {
		h.logger.Error().Err(err).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeBatch handles POST /api/v1/analyze/batch
func (h *AnalyzeHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages list is empty")
		return
	}
	if len(req.Messages) > h.maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size exceeds maximum of %d", h.maxBatchSize))
		return
	}
	for i := range req.Messages {
		if msg := h.validate(&req.Messages[i]); msg != "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("messages[%d]: %s", i, msg))
			return
		}
	}

	result, err := h.analyzer.AnalyzeBatch(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("batch analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Stats handles GET /api/v1/stats
func (h *AnalyzeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analyzer.Stats())
}

// validate returns an error message for a bad input, or empty string.
func (h *AnalyzeHandler) validate(input *models.AnalysisInput) string {
	if !models.ValidKind(input.Kind) {
		return "kind must be one of: text, email, social"
	}
	if !models.ValidEmailMode(input.EmailMode) {
		return "email_mode must be one of: personal, work"
	}
	if len(strings.TrimSpace(input.Text)) < h.minTextLen {
		return fmt.Sprintf("text must be at least %d characters", h.minTextLen)
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
