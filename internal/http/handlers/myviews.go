package handlers

import (
	"net/http"

	"cleancity/internal/aggregate"
	"cleancity/internal/middleware"
	"cleancity/internal/pipeline"
)

// MyIssues serves the issues owned by the caller. Anonymous callers own
// nothing and get an empty list without an upstream round trip.
func (a *App) MyIssues(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	issues, err := a.Resolver.OwnedIssues(r.Context(), identity)
	if err != nil {
		a.Logger.Error().Err(err).Msg("owned issues resolution failed")
		a.fail(w, r, http.StatusBadGateway, msgIssuesLoadFailed)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"items": issues,
		"total": len(issues),
	})
}

// MyContributions serves the caller's personal ledger with its running
// total, optionally narrowed by a free-text query.
func (a *App) MyContributions(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	contributions, err := a.Resolver.OwnedContributions(r.Context(), identity)
	if err != nil {
		a.Logger.Error().Err(err).Msg("owned contributions resolution failed")
		a.fail(w, r, http.StatusBadGateway, msgContribsLoadFailed)
		return
	}

	matched := pipeline.Contributions(contributions, r.URL.Query().Get("q"))
	a.json(w, http.StatusOK, map[string]any{
		"items":     matched,
		"matched":   len(matched),
		"total":     len(contributions),
		"totalPaid": aggregate.TotalPaidBy(contributions),
	})
}
