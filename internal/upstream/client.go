package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cleancity/internal/domain"
)

// ErrMissingBaseURL indicates the client was configured without an upstream address.
var ErrMissingBaseURL = errors.New("upstream: base url is required")

// Error is a typed failure from the upstream API. Code carries the HTTP
// status of a non-success response; a Code of zero means the request never
// produced a response at all (dial failure, timeout, cancelled context).
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return "upstream: " + e.Message
	}
	return fmt.Sprintf("upstream: status %d: %s", e.Code, e.Message)
}

// NotFound reports whether the failure was a 404.
func (e *Error) NotFound() bool {
	return e.Code == http.StatusNotFound
}

// Query carries the optional server-side filter hints for collection fetches.
// The zero value requests the collection with no parameters at all.
type Query struct {
	Email   string
	IssueID string
	Limit   int
	All     bool
}

func (q Query) encode() string {
	values := url.Values{}
	if q.Email != "" {
		values.Set("email", q.Email)
	}
	if q.IssueID != "" {
		values.Set("issueId", q.IssueID)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.All {
		values.Set("all", "true")
	}
	return values.Encode()
}

// Options configures the upstream API client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the upstream civic-issues API. Each
// method is a single attempt: no retries and no caching live here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}, nil
}

// FetchIssues retrieves the issue collection, optionally narrowed by q.
func (c *Client) FetchIssues(ctx context.Context, q Query) ([]domain.Issue, error) {
	return fetchList[domain.Issue](ctx, c, "/issues", q)
}

// FetchContributions retrieves the contribution ledger, optionally narrowed by q.
func (c *Client) FetchContributions(ctx context.Context, q Query) ([]domain.Contribution, error) {
	return fetchList[domain.Contribution](ctx, c, "/contributions", q)
}

// GetIssue retrieves a single issue by identifier. A 404 maps to domain.ErrNotFound.
func (c *Client) GetIssue(ctx context.Context, id string) (*domain.Issue, error) {
	raw, err := c.do(ctx, http.MethodGet, "/issues/"+url.PathEscape(id), nil)
	if err != nil {
		var ue *Error
		if errors.As(err, &ue) && ue.NotFound() {
			return nil, fmt.Errorf("issue %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	var issue domain.Issue
	if err := json.Unmarshal(raw, &issue); err != nil {
		return nil, &Error{Message: "malformed issue payload"}
	}
	return &issue, nil
}

// CreateIssue submits a new issue and returns the identifier assigned upstream.
func (c *Client) CreateIssue(ctx context.Context, issue domain.Issue) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "/issues", issue)
	if err != nil {
		return "", err
	}
	return insertedID(raw), nil
}

// UpdateIssue replaces the mutable fields of an existing issue.
func (c *Client) UpdateIssue(ctx context.Context, id string, issue domain.Issue) error {
	_, err := c.do(ctx, http.MethodPut, "/issues/"+url.PathEscape(id), issue)
	return err
}

// DeleteIssue permanently removes an issue. Deletion is terminal upstream.
func (c *Client) DeleteIssue(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/issues/"+url.PathEscape(id), nil)
	return err
}

// CreateContribution appends a pledge to the ledger and returns its identifier.
func (c *Client) CreateContribution(ctx context.Context, contribution domain.Contribution) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "/contributions", contribution)
	if err != nil {
		return "", err
	}
	return insertedID(raw), nil
}

// fetchList performs one GET round trip and decodes a JSON array. A body
// that is not a well-formed array normalizes to an empty list: the contract
// is that a type mismatch never propagates upward.
func fetchList[T any](ctx context.Context, c *Client, path string, q Query) ([]T, error) {
	endpoint := path
	if encoded := q.encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	raw, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Warn().Str("path", path).Msg("upstream returned a non-array body, treating as empty")
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Message: "encode request: " + err.Error()}
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Message: "build request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "read response: " + err.Error()}
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream call")

	if resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(raw))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Code: resp.StatusCode, Message: message}
	}
	return raw, nil
}

// insertedID extracts the identifier from a create response. The upstream
// store answers either {"insertedId": "..."} or the created document itself.
func insertedID(raw []byte) string {
	var envelope struct {
		InsertedID string `json:"insertedId"`
		ID         string `json:"_id"`
		LegacyID   string `json:"id"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	switch {
	case envelope.InsertedID != "":
		return envelope.InsertedID
	case envelope.ID != "":
		return envelope.ID
	default:
		return envelope.LegacyID
	}
}
