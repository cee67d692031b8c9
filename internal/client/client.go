// Package client talks to the local session store HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"retrace/internal/config"
	"retrace/internal/types"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// DefaultSessionLimit caps session listings; DefaultSearchLimit caps
// search results.
const (
	DefaultSessionLimit = 100
	DefaultSearchLimit  = 50
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithBaseURL(cfg.StoreBaseURL()), nil
}

func NewWithBaseURL(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListSessions fetches recent sessions, newest first. project narrows to
// one project; source selects the assistant backend. Either may be
// empty.
func (c *Client) ListSessions(ctx context.Context, project, source string) ([]types.SessionSummary, error) {
	params := url.Values{}
	if strings.TrimSpace(project) != "" {
		params.Set("project", strings.TrimSpace(project))
	}
	setSource(params, source)
	params.Set("limit", strconv.Itoa(DefaultSessionLimit))

	var sessions []types.SessionSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/sessions", params, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches a full session with its messages and file changes.
func (c *Client) GetSession(ctx context.Context, id, source string) (*types.SessionDetail, error) {
	params := url.Values{}
	setSource(params, source)
	var detail types.SessionDetail
	if err := c.doJSON(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id), params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SessionContext fetches the shareable plain-text rendering of a
// session.
func (c *Client) SessionContext(ctx context.Context, id, source string) (string, error) {
	params := url.Values{}
	setSource(params, source)
	var resp SessionContextResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id)+"/context", params, &resp); err != nil {
		return "", err
	}
	return resp.Context, nil
}

// Search runs a full-text query over recorded messages.
func (c *Client) Search(ctx context.Context, query, source string) ([]types.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	setSource(params, source)
	params.Set("limit", strconv.Itoa(DefaultSearchLimit))

	var results []types.SearchResult
	if err := c.doJSON(ctx, http.MethodGet, "/api/search", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListProjects fetches the known projects with their session counts.
func (c *Client) ListProjects(ctx context.Context, source string) ([]types.Project, error) {
	params := url.Values{}
	setSource(params, source)
	var projects []types.Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", params, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UsageSummary fetches today/this-month/total usage totals.
func (c *Client) UsageSummary(ctx context.Context, source string) (*types.UsageSummary, error) {
	params := url.Values{}
	setSource(params, source)
	var summary types.UsageSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/usage/summary", params, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// UsageDetail fetches the per-day and per-model breakdown over a
// trailing window of days.
func (c *Client) UsageDetail(ctx context.Context, days int, source string) (*types.UsageDetail, error) {
	params := url.Values{}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}
	setSource(params, source)
	var detail types.UsageDetail
	if err := c.doJSON(ctx, http.MethodGet, "/api/usage/detail", params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func setSource(params url.Values, source string) {
	if strings.TrimSpace(source) != "" {
		params.Set("source", strings.TrimSpace(source))
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, out any) error {
	return c.doJSONBody(ctx, method, path, params, nil, out)
}

func (c *Client) doJSONBody(ctx context.Context, method, path string, params url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	// The store reports errors as {"detail": ...}; keep "error" as a
	// fallback for proxies in front of it.
	type errorPayload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	message := payload.Detail
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// Error implements error with the status code included so callers can
// show it.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("store error (%d): %s", e.StatusCode, e.Message)
}
