// Package views derives per-member filtered views of the issue and
// contribution collections, hiding the upstream's variable filtering
// capability behind a tiered fallback chain.
package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cleancity/internal/domain"
	"cleancity/internal/upstream"
)

// Accessor is the slice of the upstream client the resolver needs.
type Accessor interface {
	FetchIssues(ctx context.Context, q upstream.Query) ([]domain.Issue, error)
	FetchContributions(ctx context.Context, q upstream.Query) ([]domain.Contribution, error)
}

// ResolveError reports that every fallback tier failed. It wraps the failure
// of the final tier; partial results from earlier tiers are never mixed in.
type ResolveError struct {
	Kind string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve owned %s: all tiers failed: %v", e.Kind, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// DefaultFetchAllLimit bounds the tier-2 fetch-everything fallback for issues.
const DefaultFetchAllLimit = 1000

// Resolver obtains the "owned by this member" subset of a collection.
//
// The upstream may or may not honor server-side filter parameters, and that
// capability can change between deploys. Rather than feature-detecting ahead
// of time, the resolver degrades through three strictly sequential tiers:
//
//	1. server-side filter (?email=), trusted as-is on success
//	2. full fetch bounded by a page-size hint, filtered locally
//	3. bare fetch with no parameters, filtered locally
//
// The local filter is a case-insensitive exact email match, because stored
// casing is not guaranteed to agree with the authenticated identity's casing.
type Resolver struct {
	accessor      Accessor
	fetchAllLimit int
	logger        zerolog.Logger
}

// NewResolver constructs a resolver over the given accessor. A fetchAllLimit
// of zero or less falls back to DefaultFetchAllLimit.
func NewResolver(accessor Accessor, fetchAllLimit int, logger zerolog.Logger) *Resolver {
	if fetchAllLimit <= 0 {
		fetchAllLimit = DefaultFetchAllLimit
	}
	return &Resolver{accessor: accessor, fetchAllLimit: fetchAllLimit, logger: logger}
}

// OwnedIssues returns the issues owned by the identity. An absent identity
// resolves to an empty list without touching the network.
func (r *Resolver) OwnedIssues(ctx context.Context, identity *domain.Identity) ([]domain.Issue, error) {
	email := identityEmail(identity)
	if email == "" {
		return []domain.Issue{}, nil
	}

	list, err := r.accessor.FetchIssues(ctx, upstream.Query{Email: email})
	if err == nil {
		return list, nil
	}
	r.logger.Warn().Err(err).Msg("issues: server-side filter failed, fetching all")

	list, err = r.accessor.FetchIssues(ctx, upstream.Query{Limit: r.fetchAllLimit})
	if err == nil {
		return ownedIssues(list, email), nil
	}
	r.logger.Warn().Err(err).Msg("issues: bounded fetch failed, trying bare fetch")

	list, err = r.accessor.FetchIssues(ctx, upstream.Query{})
	if err != nil {
		return nil, &ResolveError{Kind: "issues", Err: err}
	}
	return ownedIssues(list, email), nil
}

// OwnedContributions returns the contributions made by the identity. An
// absent identity resolves to an empty list without touching the network.
func (r *Resolver) OwnedContributions(ctx context.Context, identity *domain.Identity) ([]domain.Contribution, error) {
	email := identityEmail(identity)
	if email == "" {
		return []domain.Contribution{}, nil
	}

	list, err := r.accessor.FetchContributions(ctx, upstream.Query{Email: email})
	if err == nil {
		return list, nil
	}
	r.logger.Warn().Err(err).Msg("contributions: server-side filter failed, fetching all")

	list, err = r.accessor.FetchContributions(ctx, upstream.Query{All: true})
	if err == nil {
		return ownedContributions(list, email), nil
	}
	r.logger.Warn().Err(err).Msg("contributions: fetch-all failed, trying bare fetch")

	list, err = r.accessor.FetchContributions(ctx, upstream.Query{})
	if err != nil {
		return nil, &ResolveError{Kind: "contributions", Err: err}
	}
	return ownedContributions(list, email), nil
}

func identityEmail(identity *domain.Identity) string {
	if identity == nil {
		return ""
	}
	return strings.TrimSpace(identity.Email)
}

func ownedIssues(list []domain.Issue, email string) []domain.Issue {
	out := make([]domain.Issue, 0, len(list))
	for _, issue := range list {
		if strings.EqualFold(issue.OwnerEmail, email) {
			out = append(out, issue)
		}
	}
	return out
}

func ownedContributions(list []domain.Contribution, email string) []domain.Contribution {
	out := make([]domain.Contribution, 0, len(list))
	for _, contribution := range list {
		if strings.EqualFold(contribution.Email, email) {
			out = append(out, contribution)
		}
	}
	return out
}
