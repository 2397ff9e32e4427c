package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cleancity/internal/aggregate"
	"cleancity/internal/domain"
	"cleancity/internal/middleware"
	"cleancity/internal/pipeline"
	"cleancity/internal/upstream"
)

type issuePayload struct {
	Title       string          `json:"title"`
	Category    domain.Category `json:"category"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Amount      domain.Amount   `json:"amount"`
	Status      domain.Status   `json:"status"`
}

// validate normalizes the payload in place and returns the message key of
// the first problem found. Validation never touches the network.
func (p *issuePayload) validate() messageKey {
	p.Title = strings.TrimSpace(p.Title)
	p.Location = strings.TrimSpace(p.Location)
	p.Description = strings.TrimSpace(p.Description)
	p.Image = strings.TrimSpace(p.Image)
	if p.Title == "" || p.Location == "" || p.Description == "" {
		return msgRequiredFields
	}
	if !p.Category.Valid() {
		return msgCategoryInvalid
	}
	if p.Amount < 0 {
		return msgAmountInvalid
	}
	if p.Status == "" {
		p.Status = domain.StatusOngoing
	}
	if !p.Status.Valid() {
		return msgStatusInvalid
	}
	return ""
}

// IssuesList serves the public issue collection through the search, category,
// and sort pipeline. When the upstream is down the last good snapshot is
// served instead, flagged as stale, so browsing keeps working.
func (a *App) IssuesList(w http.ResponseWriter, r *http.Request) {
	criteria := pipeline.Criteria{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Sort:     pipeline.ParseDirection(r.URL.Query().Get("sort")),
	}

	token := a.issueSnapshot.Begin()
	issues, err := a.Upstream.FetchIssues(r.Context(), upstream.Query{})
	stale := false
	if err != nil {
		snapshot, ok := a.issueSnapshot.Value()
		if !ok {
			a.Logger.Error().Err(err).Msg("issue list fetch failed with no snapshot")
			a.fail(w, r, http.StatusBadGateway, msgIssuesLoadFailed)
			return
		}
		a.Logger.Warn().Err(err).Msg("issue list fetch failed, serving snapshot")
		issues = snapshot
		stale = true
	} else {
		a.issueSnapshot.Accept(token, issues)
	}

	matched := pipeline.Issues(issues, criteria)
	if stale {
		w.Header().Set("X-Data-Stale", "true")
	}
	a.json(w, http.StatusOK, map[string]any{
		"items":      matched,
		"matched":    len(matched),
		"total":      len(issues),
		"categories": pipeline.CategoriesOf(issues),
		"stale":      stale,
	})
}

// IssueDetail serves one issue with its contribution ledger and derived
// funding progress.
func (a *App) IssueDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	issue, err := a.Upstream.GetIssue(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.fail(w, r, http.StatusNotFound, msgIssueNotFound)
			return
		}
		a.Logger.Error().Err(err).Str("issue_id", id).Msg("issue fetch failed")
		a.fail(w, r, http.StatusBadGateway, msgIssuesLoadFailed)
		return
	}

	contributions, err := a.Upstream.FetchContributions(r.Context(), upstream.Query{IssueID: id})
	if err != nil {
		a.Logger.Error().Err(err).Str("issue_id", id).Msg("contributions fetch failed")
		a.fail(w, r, http.StatusBadGateway, msgContribsLoadFailed)
		return
	}

	total := aggregate.TotalCollected(contributions)
	a.json(w, http.StatusOK, map[string]any{
		"issue":           issue,
		"contributions":   contributions,
		"totalCollected":  total,
		"progressPercent": domain.ProgressPercent(total, issue.SuggestedAmount.Float()),
	})
}

// IssueCreate validates a submission and passes it through to the upstream
// store. The owner email always comes from the authenticated identity, never
// from the payload.
func (a *App) IssueCreate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		a.fail(w, r, http.StatusUnauthorized, msgLoginRequired)
		return
	}

	var payload issuePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.fail(w, r, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if key := payload.validate(); key != "" {
		a.fail(w, r, http.StatusBadRequest, key)
		return
	}

	issue := domain.Issue{
		Title:           payload.Title,
		Category:        payload.Category,
		Location:        payload.Location,
		Description:     payload.Description,
		Image:           payload.Image,
		SuggestedAmount: payload.Amount,
		Status:          payload.Status,
		OwnerEmail:      identity.Email,
		CreatedAt:       time.Now().UTC(),
	}
	id, err := a.Upstream.CreateIssue(r.Context(), issue)
	if err != nil {
		a.Logger.Error().Err(err).Msg("issue create failed")
		a.fail(w, r, http.StatusBadGateway, msgSubmitFailed)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": id})
}

// IssueUpdate lets the owner change the mutable fields of an issue. The
// stored record is fetched first so ownership is checked against the source
// of truth, not the payload.
func (a *App) IssueUpdate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		a.fail(w, r, http.StatusUnauthorized, msgLoginRequired)
		return
	}
	id := chi.URLParam(r, "id")

	current, err := a.Upstream.GetIssue(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.fail(w, r, http.StatusNotFound, msgIssueNotFound)
			return
		}
		a.fail(w, r, http.StatusBadGateway, msgIssuesLoadFailed)
		return
	}
	if !strings.EqualFold(current.OwnerEmail, identity.Email) {
		a.fail(w, r, http.StatusForbidden, msgNotOwner)
		return
	}

	var payload issuePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.fail(w, r, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if key := payload.validate(); key != "" {
		a.fail(w, r, http.StatusBadRequest, key)
		return
	}

	updated := domain.Issue{
		ID:              current.ID,
		Title:           payload.Title,
		Category:        payload.Category,
		Location:        payload.Location,
		Description:     payload.Description,
		Image:           payload.Image,
		SuggestedAmount: payload.Amount,
		Status:          payload.Status,
		OwnerEmail:      current.OwnerEmail,
		CreatedAt:       current.CreatedAt,
	}
	if err := a.Upstream.UpdateIssue(r.Context(), id, updated); err != nil {
		a.Logger.Error().Err(err).Str("issue_id", id).Msg("issue update failed")
		a.fail(w, r, http.StatusBadGateway, msgSubmitFailed)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "updated": true})
}

// IssueDelete permanently removes an owned issue. Deletion is terminal;
// contributions pledged to it keep their title snapshot and dangling issueId.
func (a *App) IssueDelete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		a.fail(w, r, http.StatusUnauthorized, msgLoginRequired)
		return
	}
	id := chi.URLParam(r, "id")

	current, err := a.Upstream.GetIssue(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.fail(w, r, http.StatusNotFound, msgIssueNotFound)
			return
		}
		a.fail(w, r, http.StatusBadGateway, msgIssuesLoadFailed)
		return
	}
	if !strings.EqualFold(current.OwnerEmail, identity.Email) {
		a.fail(w, r, http.StatusForbidden, msgNotOwner)
		return
	}

	if err := a.Upstream.DeleteIssue(r.Context(), id); err != nil {
		a.Logger.Error().Err(err).Str("issue_id", id).Msg("issue delete failed")
		a.fail(w, r, http.StatusBadGateway, msgSubmitFailed)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}
