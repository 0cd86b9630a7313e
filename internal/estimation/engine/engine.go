// Package engine orchestrates estimation calls: build prompt, call the AI
// backend under a deadline, extract and validate the payload, and fall back
// to the deterministic heuristics on any failure. Every entry point is total:
// it always returns a usable result and never returns an error. The sourceTag
// on each result truthfully records which path produced it.
//
// The engine holds no mutable state beyond injected read-only configuration
// and capabilities, so it is safe for unlimited concurrent invocation.
package engine

import (
	"context"
	"errors"
	"sort"
	"time"

	"estimation_backend/internal/estimation/domain"
	"estimation_backend/internal/estimation/extract"
	"estimation_backend/internal/estimation/heuristic"
	"estimation_backend/internal/estimation/ports"
	"estimation_backend/internal/estimation/prompt"
	"estimation_backend/platform/logger"
)

// errBackendDisabled is the internal failure used when no backend is
// configured; like every backend error it never escapes the engine.
var errBackendDisabled = errors.New("ai backend not configured")

// Config holds the engine's read-only settings.
type Config struct {
	// Timeout bounds the single outbound call per estimation.
	Timeout time.Duration
	// MatchLimit caps match results when the caller passes no limit.
	MatchLimit int
}

// Engine is the estimation orchestrator.
type Engine struct {
	backend ports.AIBackend // nil means heuristic-only operation
	heur    *heuristic.Estimator
	cfg     Config
	log     *logger.Logger
}

// New creates an engine. backend may be nil, in which case every call takes
// the heuristic path.
func New(backend ports.AIBackend, heur *heuristic.Estimator, cfg Config, log *logger.Logger) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 12 * time.Second
	}
	if cfg.MatchLimit <= 0 {
		cfg.MatchLimit = heuristic.DefaultMatchLimit
	}
	return &Engine{backend: backend, heur: heur, cfg: cfg, log: log}
}

// EstimateValuation values a property. The request must already be validated.
func (e *Engine) EstimateValuation(ctx context.Context, req domain.ValuationRequest) domain.ValuationResult {
	instruction, data := prompt.Valuation(req)

	raw, err := e.callBackend(ctx, prompt.TaskValuation, instruction, data)
	if err != nil {
		e.fallback(prompt.TaskValuation, err)
		return e.heur.Valuation(req)
	}

	payload, err := extract.Valuation(raw)
	if err != nil {
		e.fallback(prompt.TaskValuation, err)
		return e.heur.Valuation(req)
	}

	comparables := make([]domain.Comparable, 0, len(payload.Comparables))
	for _, c := range payload.Comparables {
		comparables = append(comparables, domain.Comparable{
			Label:      c.Label,
			Price:      c.Price,
			Similarity: c.Similarity,
			Distance:   c.Distance,
		})
	}

	return domain.ValuationResult{
		EstimatedValue: *payload.EstimatedValue,
		Confidence:     clamp01(*payload.Confidence),
		FactorWeights:  payload.FactorWeights,
		Comparables:    comparables,
		Summary:        *payload.Summary,
		SourceTag:      domain.SourceAI,
	}
}

// ScoreLead grades a lead. The profile must already be validated.
func (e *Engine) ScoreLead(ctx context.Context, p domain.LeadProfile) domain.LeadScoreResult {
	instruction, data := prompt.LeadScore(p)

	raw, err := e.callBackend(ctx, prompt.TaskLeadScore, instruction, data)
	if err != nil {
		e.fallback(prompt.TaskLeadScore, err)
		return e.heur.LeadScore(p)
	}

	payload, err := extract.LeadScore(raw)
	if err != nil {
		e.fallback(prompt.TaskLeadScore, err)
		return e.heur.LeadScore(p)
	}

	return domain.LeadScoreResult{
		Score:          clampInt(*payload.Score, 0, 100),
		FactorScores:   payload.FactorScores,
		Recommendation: *payload.Recommendation,
		NextActions:    payload.NextActions,
		SourceTag:      domain.SourceAI,
	}
}

// MatchProperties ranks candidates for a lead. A zero or negative limit uses
// the configured default. The result never exceeds the limit and is sorted by
// score descending with ties broken by ascending candidate ID.
func (e *Engine) MatchProperties(ctx context.Context, lead domain.LeadProfile, candidates []domain.MatchCandidate, limit int) []domain.MatchResult {
	if limit <= 0 {
		limit = e.cfg.MatchLimit
	}

	instruction, data := prompt.Match(lead, candidates, limit)

	raw, err := e.callBackend(ctx, prompt.TaskMatch, instruction, data)
	if err != nil {
		e.fallback(prompt.TaskMatch, err)
		return e.heur.Match(lead, candidates, limit)
	}

	payload, err := extract.Matches(raw)
	if err != nil {
		e.fallback(prompt.TaskMatch, err)
		return e.heur.Match(lead, candidates, limit)
	}

	known := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		known[c.ID] = struct{}{}
	}

	results := make([]domain.MatchResult, 0, len(payload))
	for _, m := range payload {
		// Hallucinated candidate IDs are dropped rather than failing the call.
		if _, ok := known[*m.CandidateID]; !ok {
			continue
		}
		reasons := m.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		results = append(results, domain.MatchResult{
			CandidateID:   *m.CandidateID,
			MatchScore:    *m.MatchScore,
			Reasons:       reasons,
			PriceAlign:    *m.PriceAlignment,
			LocationMatch: *m.LocationMatch,
			FeatureMatch:  *m.FeatureMatch,
			SourceTag:     domain.SourceAI,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].CandidateID < results[j].CandidateID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// GenerateListingCopy writes listing content for a property.
func (e *Engine) GenerateListingCopy(ctx context.Context, req domain.ValuationRequest) domain.ContentResult {
	instruction, data := prompt.ListingCopy(req)

	raw, err := e.callBackend(ctx, prompt.TaskContent, instruction, data)
	if err != nil {
		e.fallback(prompt.TaskContent, err)
		return e.heur.ListingCopy(req)
	}

	content, err := extract.Content(raw)
	if err != nil {
		e.fallback(prompt.TaskContent, err)
		return e.heur.ListingCopy(req)
	}

	return domain.ContentResult{Content: content, SourceTag: domain.SourceAI}
}

// callBackend performs the single bounded round trip. This is the only
// suspension point in the engine.
func (e *Engine) callBackend(ctx context.Context, task, instruction, data string) (string, error) {
	if e.backend == nil {
		return "", errBackendDisabled
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.backend.Complete(callCtx, instruction, data)
	if err != nil {
		return "", err
	}

	if e.log != nil {
		e.log.AIEvent(task, e.backend.ModelName(), float64(time.Since(start).Milliseconds()))
	}
	return raw, nil
}

func (e *Engine) fallback(task string, err error) {
	if e.log != nil {
		e.log.AIFallback(task, err)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
