package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleancity/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client, server
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{}); !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("error = %v, want ErrMissingBaseURL", err)
	}
}

func TestFetchIssuesDecodesArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/issues" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "1", "title": "Pothole", "amount": "250", "email": "a@x.com"},
			{"_id": "2", "title": "Garbage", "amount": 100},
		})
	})

	issues, err := client.FetchIssues(context.Background(), Query{})
	if err != nil {
		t.Fatalf("FetchIssues returned error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}
	if issues[0].SuggestedAmount != 250 {
		t.Fatalf("string amount coerced to %v, want 250", issues[0].SuggestedAmount)
	}
}

func TestFetchIssuesEncodesQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("[]"))
	})

	if _, err := client.FetchIssues(context.Background(), Query{Email: "a@x.com", Limit: 1000}); err != nil {
		t.Fatalf("FetchIssues returned error: %v", err)
	}
	if gotQuery != "email=a%40x.com&limit=1000" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestFetchContributionsAllFlag(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("[]"))
	})

	if _, err := client.FetchContributions(context.Background(), Query{All: true}); err != nil {
		t.Fatalf("FetchContributions returned error: %v", err)
	}
	if gotQuery != "all=true" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestFetchListToleratesNonArrayBody(t *testing.T) {
	bodies := []string{`{"message":"oops"}`, `"nope"`, `42`, `not json at all`}
	for _, body := range bodies {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		issues, err := client.FetchIssues(context.Background(), Query{})
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", body, err)
		}
		if issues == nil || len(issues) != 0 {
			t.Fatalf("body %q: got %v, want empty list", body, issues)
		}
	}
}

func TestFetchIssuesNonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "filter not supported", http.StatusNotImplemented)
	})

	_, err := client.FetchIssues(context.Background(), Query{Email: "a@x.com"})
	var ue *Error
	if !errors.As(err, &ue) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if ue.Code != http.StatusNotImplemented {
		t.Fatalf("code = %d, want %d", ue.Code, http.StatusNotImplemented)
	}
}

func TestFetchIssuesNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client, err := NewClient(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = client.FetchIssues(context.Background(), Query{})
	var ue *Error
	if !errors.As(err, &ue) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if ue.Code != 0 {
		t.Fatalf("transport failure code = %d, want 0", ue.Code)
	}
}

func TestGetIssueNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetIssue(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateIssueReturnsInsertedID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		var issue domain.Issue
		if err := json.NewDecoder(r.Body).Decode(&issue); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if issue.Title != "Pothole" {
			t.Fatalf("title = %q", issue.Title)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"insertedId":"new-1"}`))
	})

	id, err := client.CreateIssue(context.Background(), domain.Issue{Title: "Pothole"})
	if err != nil {
		t.Fatalf("CreateIssue returned error: %v", err)
	}
	if id != "new-1" {
		t.Fatalf("id = %q, want new-1", id)
	}
}

func TestDeleteIssuePropagatesStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("method = %s, want DELETE", r.Method)
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	err := client.DeleteIssue(context.Background(), "1")
	var ue *Error
	if !errors.As(err, &ue) || ue.Code != http.StatusForbidden {
		t.Fatalf("error = %v, want status 403", err)
	}
}
