package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"vozdalei/config"
)

const (
	chatPath         = "/api/v1/chat/"
	suggestionsPath  = "/api/v1/chat/suggestions"
	simplifyPath     = "/api/v1/simplification/simplify"
	searchPath       = "/api/v1/search/"
	autocompletePath = "/api/v1/search/autocomplete"
	filtersPath      = "/api/v1/search/filters"
	healthPath       = "/health"

	// MinSimplifyRunes is the shortest text the backend accepts for simplification
	MinSimplifyRunes = 10

	defaultTimeout = 60 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client talks to the Voz da Lei backend over JSON/HTTP
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request except Ping, which always uses 5s
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		http:    http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SendMessage(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.ConversationHistory == nil {
		req.ConversationHistory = []ChatMessage{}
	}

	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, chatPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSuggestions accepts either a bare JSON array or {"suggestions": [...]}
func (c *Client) GetSuggestions(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, suggestionsPath, nil, &raw); err != nil {
		return nil, err
	}
	return decodeSuggestions(raw)
}

func (c *Client) Simplify(ctx context.Context, req SimplificationRequest) (*SimplificationResponse, error) {
	if utf8.RuneCountInString(strings.TrimSpace(req.Text)) < MinSimplifyRunes {
		return nil, validationError(fmt.Sprintf("text must have at least %d characters", MinSimplifyRunes))
	}
	if req.TargetLevel == "" {
		req.TargetLevel = LevelSimple
	}
	if !req.TargetLevel.Valid() {
		return nil, validationError(fmt.Sprintf("unknown target level %q", req.TargetLevel))
	}

	var resp SimplificationResponse
	if err := c.do(ctx, http.MethodPost, simplifyPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	var resp SearchResponse
	if err := c.do(ctx, http.MethodPost, searchPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Autocomplete needs at least two characters, as the backend does
func (c *Client) Autocomplete(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < 2 {
		return nil, validationError("autocomplete needs at least 2 characters")
	}

	var raw json.RawMessage
	path := autocompletePath + "?" + url.Values{"q": {q}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeSuggestions(raw)
}

func (c *Client) Filters(ctx context.Context) (*SearchFilters, error) {
	var resp SearchFilters
	if err := c.do(ctx, http.MethodGet, filtersPath, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return c.send(ctx, http.MethodGet, healthPath, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.send(ctx, method, path, in, out)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindUnknown, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindUnknown, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[API] %s %s", method, path)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := transportError(c.baseURL, err)
		if config.DebugLog != nil {
			config.DebugLog.Printf("[API] %s %s failed (%s): %v", method, path, apiErr.Kind, err)
		}
		return apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindUnknown, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[API] %s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindServer, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return nil
}

func decodeSuggestions(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &Error{Kind: KindServer, Err: fmt.Errorf("malformed suggestions body: %w", err)}
	}
	return wrapped.Suggestions, nil
}
