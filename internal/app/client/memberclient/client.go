// Package memberclient is a Go client for the member JSON API, plus the
// list and detail view state that the browser client also implements.
package memberclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/memberhub/internal/domain/models"
	"go.uber.org/zap"
)

// APIPath is where the server mounts the member API.
const APIPath = "/api/members"

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("member not found")
	// ErrIDRequired is returned when an update is sent without a member id.
	ErrIDRequired = errors.New("member ID is required")
)

// APIError is any other non-2xx answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("member api: %d %s", e.StatusCode, e.Message)
}

// NewMember is the create payload. The caller draws MemberNumber.
type NewMember struct {
	Name         string   `json:"name"`
	DateOfBirth  string   `json:"dateOfBirth"`
	MemberNumber int64    `json:"memberNumber"`
	Interests    []string `json:"interests"`
}

// Update is the update payload. Nil fields are left unchanged on the server.
type Update struct {
	ID           string    `json:"_id"`
	Name         *string   `json:"name,omitempty"`
	DateOfBirth  *string   `json:"dateOfBirth,omitempty"`
	MemberNumber *int64    `json:"memberNumber,omitempty"`
	Interests    *[]string `json:"interests,omitempty"`
}

// Client talks to one MemberHub server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger logs each call at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// List returns every member.
func (c *Client) List(ctx context.Context) ([]models.Member, error) {
	var out []models.Member
	if err := c.do(ctx, http.MethodGet, APIPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Member{}
	}
	return out, nil
}

// Create adds a member and returns the stored record.
func (c *Client) Create(ctx context.Context, m NewMember) (models.Member, error) {
	if m.Interests == nil {
		m.Interests = []string{}
	}
	var out models.Member
	err := c.do(ctx, http.MethodPost, APIPath, m, &out)
	return out, err
}

// Get fetches one member.
func (c *Client) Get(ctx context.Context, id string) (models.Member, error) {
	var out models.Member
	err := c.do(ctx, http.MethodGet, APIPath+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Update patches a member and returns the updated record.
func (c *Client) Update(ctx context.Context, u Update) (models.Member, error) {
	if strings.TrimSpace(u.ID) == "" {
		return models.Member{}, ErrIDRequired
	}
	var out models.Member
	err := c.do(ctx, http.MethodPatch, APIPath, u, &out)
	return out, err
}

// Delete removes a member and returns the record as it was.
func (c *Client) Delete(ctx context.Context, id string) (models.Member, error) {
	var out models.Member
	err := c.do(ctx, http.MethodDelete, APIPath+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	c.log.Debug("member api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("took", time.Since(start)))

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return errorFromResponse(res)
}

func errorFromResponse(res *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode == http.StatusBadRequest && body.Error == "Member ID is required":
		return ErrIDRequired
	}
	return &APIError{StatusCode: res.StatusCode, Message: body.Error}
}
