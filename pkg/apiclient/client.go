package apiclient

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

	"github.com/gatherly/notify/pkg/notification"
)

// TokenSource supplies the caller's identity token. Authentication itself is
// owned by an external collaborator; the client only attaches what it is given.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token. Useful for tests and
// long-lived service credentials.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// FeedPage is the server's response to a feed fetch. UnreadCount always
// covers the caller's entire feed, not just the filtered slice.
type FeedPage struct {
	Notifications []notification.Notification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

// Client is a stateless wrapper around the notification server API. Every
// method is a single round trip: no caching, no implicit retries. Callers
// decide what a failure means for their local state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client. Nil clients are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource sets the identity token source attached to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch retrieves the feed slice selected by the filter, ordered newest
// first with ID as the tiebreak, together with the full-feed unread count.
func (c *Client) Fetch(ctx context.Context, filter notification.Filter) (FeedPage, error) {
	var page FeedPage
	if err := c.do(ctx, http.MethodGet, "/notifications", filter.Query(), nil, &page); err != nil {
		return FeedPage{}, err
	}
	return page, nil
}

// MarkRead marks the given notifications read. The server treats already-read
// ids as a no-op, so repeating a call is harmless.
func (c *Client) MarkRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]any{"notification_ids": ids}
	return c.do(ctx, http.MethodPatch, "/notifications", nil, body, nil)
}

// MarkAllRead marks every notification for the caller read, independent of
// any filter view.
func (c *Client) MarkAllRead(ctx context.Context) error {
	body := map[string]any{"mark_all": true}
	return c.do(ctx, http.MethodPatch, "/notifications", nil, body, nil)
}

// DeleteOne deletes a single notification.
func (c *Client) DeleteOne(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	q := url.Values{}
	q.Set("id", id)
	return c.do(ctx, http.MethodDelete, "/notifications", q, nil, nil)
}

// DeleteMany deletes a selected set and returns the number actually deleted,
// which can be lower than len(ids) if some were already gone.
func (c *Client) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	body := map[string]any{"notification_ids": ids}
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodDelete, "/notifications", nil, body, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// DeleteAllRead deletes every read notification for the caller and returns
// the number deleted.
func (c *Client) DeleteAllRead(ctx context.Context) (int, error) {
	q := url.Values{}
	q.Set("all", strconv.FormatBool(true))
	q.Set("read", strconv.FormatBool(true))
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodDelete, "/notifications", q, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// errorBody mirrors the server's error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("resolve identity token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error.Message != "" {
			reqErr.Message = eb.Error.Message
		}
		return reqErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}
