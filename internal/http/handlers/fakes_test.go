package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleancity/internal/domain"
	"cleancity/internal/upstream"
)

// fakeUpstream scripts the upstream client surface.
type fakeUpstream struct {
	issues    []domain.Issue
	issuesErr error

	contributions []domain.Contribution
	contribErr    error

	stored map[string]domain.Issue

	createdIssues        []domain.Issue
	createdContributions []domain.Contribution
	updatedIssues        map[string]domain.Issue
	deletedIssues        []string

	fetchIssueCalls   int
	fetchContribCalls int
}

func (f *fakeUpstream) FetchIssues(context.Context, upstream.Query) ([]domain.Issue, error) {
	f.fetchIssueCalls++
	if f.issuesErr != nil {
		return nil, f.issuesErr
	}
	return f.issues, nil
}

func (f *fakeUpstream) FetchContributions(context.Context, upstream.Query) ([]domain.Contribution, error) {
	f.fetchContribCalls++
	if f.contribErr != nil {
		return nil, f.contribErr
	}
	return f.contributions, nil
}

func (f *fakeUpstream) GetIssue(_ context.Context, id string) (*domain.Issue, error) {
	if issue, ok := f.stored[id]; ok {
		return &issue, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUpstream) CreateIssue(_ context.Context, issue domain.Issue) (string, error) {
	f.createdIssues = append(f.createdIssues, issue)
	return "created-1", nil
}

func (f *fakeUpstream) UpdateIssue(_ context.Context, id string, issue domain.Issue) error {
	if f.updatedIssues == nil {
		f.updatedIssues = map[string]domain.Issue{}
	}
	f.updatedIssues[id] = issue
	return nil
}

func (f *fakeUpstream) DeleteIssue(_ context.Context, id string) error {
	f.deletedIssues = append(f.deletedIssues, id)
	return nil
}

func (f *fakeUpstream) CreateContribution(_ context.Context, c domain.Contribution) (string, error) {
	f.createdContributions = append(f.createdContributions, c)
	return "pledge-1", nil
}

// fakeResolver scripts the ownership resolver.
type fakeResolver struct {
	issues        []domain.Issue
	contributions []domain.Contribution
	err           error
	gotIdentity   *domain.Identity
}

func (f *fakeResolver) OwnedIssues(_ context.Context, identity *domain.Identity) ([]domain.Issue, error) {
	f.gotIdentity = identity
	if f.err != nil {
		return nil, f.err
	}
	return f.issues, nil
}

func (f *fakeResolver) OwnedContributions(_ context.Context, identity *domain.Identity) ([]domain.Contribution, error) {
	f.gotIdentity = identity
	if f.err != nil {
		return nil, f.err
	}
	return f.contributions, nil
}

// newTestRouter mounts the app's routes without the middleware chain so
// tests can drive handlers with hand-built request contexts.
func newTestRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/issues", app.IssuesList)
	r.Post("/v1/issues", app.IssueCreate)
	r.Get("/v1/issues/{id}", app.IssueDetail)
	r.Put("/v1/issues/{id}", app.IssueUpdate)
	r.Delete("/v1/issues/{id}", app.IssueDelete)
	r.Get("/v1/views/my/issues", app.MyIssues)
	r.Get("/v1/views/my/contributions", app.MyContributions)
	r.Post("/v1/contributions", app.ContributionCreate)
	return r
}
