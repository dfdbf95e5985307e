package handlers

import (
	"net/http"

	"redflag-lab/internal/domain/services"
	"redflag-lab/pkg/logger"
)

// PatternsHandler exposes the detection rule table
type PatternsHandler struct {
	analyzer *services.MessageAnalyzer
	logger   *logger.Logger
}

// NewPatternsHandler creates a new patterns handler
func NewPatternsHandler(analyzer *services.MessageAnalyzer, log *logger.Logger) *PatternsHandler {
	return &PatternsHandler{
		analyzer: analyzer,
		logger:   log.WithComponent("patterns-handler"),
	}
}

// List handles GET /api/v1/patterns
func (h *PatternsHandler) List(w http.ResponseWriter, r *http.Request) {
	patterns := h.analyzer.Patterns()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patterns":        patterns,
		"span_dictionary": h.analyzer.SpanDictionary(),
		"total":           len(patterns),
	})
}
