// Package handler exposes the estimation engine over HTTP.
package handler

import (
	"net/http"

	"estimation_backend/internal/estimation/domain"
	"estimation_backend/internal/estimation/engine"
	"estimation_backend/internal/estimation/transport"
	"estimation_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the fan-out of batch scoring. Each call performs at
// most one outbound AI request, so this also bounds in-flight backend calls.
const batchConcurrency = 8

// Handler serves the estimation endpoints.
type Handler struct {
	eng *engine.Engine
}

// New creates a Handler.
func New(eng *engine.Engine) *Handler {
	return &Handler{eng: eng}
}

// EstimateValuation handles POST /api/v1/estimates/valuation.
func (h *Handler) EstimateValuation(c *gin.Context) {
	var req transport.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid valuation request", err.Error())
		return
	}

	domReq := req.ToDomain()
	if err := domReq.Validate(); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, h.eng.EstimateValuation(c.Request.Context(), domReq))
}

// ScoreLead handles POST /api/v1/estimates/leads/score.
func (h *Handler) ScoreLead(c *gin.Context) {
	var req transport.LeadProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead profile", err.Error())
		return
	}

	profile := req.ToDomain()
	if err := profile.Validate(); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, h.eng.ScoreLead(c.Request.Context(), profile))
}

// ScoreLeadBatch handles POST /api/v1/estimates/leads/score/batch. Leads are
// scored as independent concurrent calls; invalid entries report an error in
// their slot without failing the batch.
func (h *Handler) ScoreLeadBatch(c *gin.Context) {
	var req transport.BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid batch request", err.Error())
		return
	}

	items := make([]transport.BatchScoreItem, len(req.Leads))

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(batchConcurrency)
	for i, leadReq := range req.Leads {
		g.Go(func() error {
			profile := leadReq.ToDomain()
			if err := profile.Validate(); err != nil {
				items[i] = transport.BatchScoreItem{Error: err.Error()}
				return nil
			}
			result := h.eng.ScoreLead(ctx, profile)
			items[i] = transport.BatchScoreItem{Result: &result}
			return nil
		})
	}
	// The workers never return errors; Wait only joins them.
	_ = g.Wait()

	httpkit.OK(c, transport.BatchScoreResponse{Results: items})
}

// MatchProperties handles POST /api/v1/estimates/matches.
func (h *Handler) MatchProperties(c *gin.Context) {
	var req transport.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid match request", err.Error())
		return
	}

	lead := req.Lead.ToDomain()
	if err := lead.Validate(); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	candidates := make([]domain.MatchCandidate, 0, len(req.Candidates))
	for _, cr := range req.Candidates {
		cand := cr.ToDomain()
		if err := cand.Validate(); err != nil {
			httpkit.HandleError(c, err)
			return
		}
		candidates = append(candidates, cand)
	}

	matches := h.eng.MatchProperties(c.Request.Context(), lead, candidates, req.Limit)
	httpkit.OK(c, transport.MatchResponse{Matches: matches})
}

// GenerateListingCopy handles POST /api/v1/estimates/listing-copy.
func (h *Handler) GenerateListingCopy(c *gin.Context) {
	var req transport.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid listing copy request", err.Error())
		return
	}

	domReq := req.ToDomain()
	if err := domReq.Validate(); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, h.eng.GenerateListingCopy(c.Request.Context(), domReq))
}
