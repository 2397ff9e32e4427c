package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cleancity/internal/domain"
	"cleancity/internal/middleware"
)

type contributionPayload struct {
	IssueID        string        `json:"issueId"`
	Amount         domain.Amount `json:"amount"`
	Name           string        `json:"name"`
	Phone          string        `json:"phone"`
	Address        string        `json:"address"`
	AdditionalInfo string        `json:"additionalInfo"`
}

// ContributionCreate appends a pledge to the ledger. The amount is checked
// before any network call; the contributor identity comes from the token, and
// the issue title snapshot is taken here so the pledge stays displayable even
// if the issue is later edited or deleted.
func (a *App) ContributionCreate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		a.fail(w, r, http.StatusUnauthorized, msgLoginRequired)
		return
	}

	var payload contributionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.fail(w, r, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if payload.Amount <= 0 {
		a.fail(w, r, http.StatusBadRequest, msgAmountPositive)
		return
	}
	payload.IssueID = strings.TrimSpace(payload.IssueID)

	// Best-effort title snapshot. A missing issue is tolerated: the pledge
	// records the dangling issueId as-is.
	issueTitle := ""
	if payload.IssueID != "" {
		issue, err := a.Upstream.GetIssue(r.Context(), payload.IssueID)
		switch {
		case err == nil:
			issueTitle = issue.Title
		case errors.Is(err, domain.ErrNotFound):
			a.Logger.Warn().Str("issue_id", payload.IssueID).Msg("contribution references a missing issue")
		default:
			a.Logger.Warn().Err(err).Str("issue_id", payload.IssueID).Msg("title snapshot lookup failed")
		}
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = identity.DisplayName
	}

	contribution := domain.Contribution{
		IssueID:        payload.IssueID,
		IssueTitle:     issueTitle,
		Amount:         payload.Amount,
		Name:           name,
		Email:          identity.Email,
		Phone:          strings.TrimSpace(payload.Phone),
		Address:        strings.TrimSpace(payload.Address),
		AdditionalInfo: strings.TrimSpace(payload.AdditionalInfo),
		Avatar:         identity.PhotoURL,
		CreatedAt:      time.Now().UTC(),
	}
	id, err := a.Upstream.CreateContribution(r.Context(), contribution)
	if err != nil {
		a.Logger.Error().Err(err).Msg("contribution create failed")
		a.fail(w, r, http.StatusBadGateway, msgSubmitFailed)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": id})
}
