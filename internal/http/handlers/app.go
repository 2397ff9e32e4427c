package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"cleancity/internal/domain"
	"cleancity/internal/upstream"
	"cleancity/internal/views"
)

// Upstream is the slice of the upstream client the handlers depend on.
type Upstream interface {
	FetchIssues(ctx context.Context, q upstream.Query) ([]domain.Issue, error)
	FetchContributions(ctx context.Context, q upstream.Query) ([]domain.Contribution, error)
	GetIssue(ctx context.Context, id string) (*domain.Issue, error)
	CreateIssue(ctx context.Context, issue domain.Issue) (string, error)
	UpdateIssue(ctx context.Context, id string, issue domain.Issue) error
	DeleteIssue(ctx context.Context, id string) error
	CreateContribution(ctx context.Context, contribution domain.Contribution) (string, error)
}

// Resolver produces ownership-filtered views.
type Resolver interface {
	OwnedIssues(ctx context.Context, identity *domain.Identity) ([]domain.Issue, error)
	OwnedContributions(ctx context.Context, identity *domain.Identity) ([]domain.Contribution, error)
}

// App carries the handler dependencies.
type App struct {
	Upstream Upstream
	Resolver Resolver
	Logger   zerolog.Logger

	// issueSnapshot holds the last successfully fetched issue collection.
	// Refreshes race under load; the token guard keeps a slow stale fetch
	// from replacing a newer one.
	issueSnapshot views.Latest[[]domain.Issue]
}

// NewApp constructs the handler container.
func NewApp(up Upstream, resolver Resolver, logger zerolog.Logger) *App {
	return &App{Upstream: up, Resolver: resolver, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail writes a single plain-language failure. Retryable is set for upstream
// trouble so page consumers can offer a reload affordance.
func (a *App) fail(w http.ResponseWriter, r *http.Request, code int, key messageKey) {
	a.json(w, code, map[string]any{
		"error": map[string]any{
			"code":    string(key),
			"message": localize(r.Context(), key),
			"retry":   code >= http.StatusInternalServerError,
		},
	})
}
