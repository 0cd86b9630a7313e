// Package estimation wires the estimation bounded context.
package estimation

import (
	"estimation_backend/internal/estimation/engine"
	"estimation_backend/internal/estimation/handler"
	apphttp "estimation_backend/internal/http"
)

// Module wires the estimation HTTP routes.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the estimation module around a configured engine.
func NewModule(eng *engine.Engine) *Module {
	return &Module{handler: handler.New(eng)}
}

func (m *Module) Name() string {
	return "estimation"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/estimates")
	if ctx.Limiter != nil {
		group.Use(ctx.Limiter.RateLimit())
	}
	group.POST("/valuation", m.handler.EstimateValuation)
	group.POST("/leads/score", m.handler.ScoreLead)
	group.POST("/leads/score/batch", m.handler.ScoreLeadBatch)
	group.POST("/matches", m.handler.MatchProperties)
	group.POST("/listing-copy", m.handler.GenerateListingCopy)
}

var _ apphttp.Module = (*Module)(nil)
