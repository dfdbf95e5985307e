package handlers

import (
	"redflag-lab/internal/config"
	"redflag-lab/internal/domain/services"
	"redflag-lab/internal/infrastructure/cache"
	"redflag-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Analyze  *AnalyzeHandler
	Patterns *PatternsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Analyzer *services.MessageAnalyzer
	Cache    *cache.RedisCache
	Config   *config.Config
	Logger   *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Config, deps.Logger),
		Analyze:  NewAnalyzeHandler(deps.Analyzer, deps.Config, deps.Logger),
		Patterns: NewPatternsHandler(deps.Analyzer, deps.Logger),
	}
}
