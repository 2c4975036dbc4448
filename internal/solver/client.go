// Package solver calls the remote post layout solver.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/san-kum/postviz/internal/layout"
)

// EnvBaseURL overrides the configured solver base URL.
const EnvBaseURL = "APP_API_URL"

const (
	layoutPath     = "/post-layout"
	maxErrorBody   = 4 << 10
	defaultTimeout = 30 * time.Second
)

var (
	// ErrTransport wraps failures to reach the solver or read its reply.
	ErrTransport = errors.New("solver: transport failure")

	// ErrNoBaseURL is returned when neither config nor environment name a
	// solver.
	ErrNoBaseURL = errors.New("solver: no base URL configured")
)

// StatusError is a non-2xx reply from the solver.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("solver: status %d", e.Code)
	}
	return fmt.Sprintf("solver: status %d: %s", e.Code, e.Body)
}

// HTTPClient is the part of *http.Client the solver needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	BaseURL string
	HTTP    HTTPClient
}

// New returns a client for baseURL. The APP_API_URL environment variable,
// when set, takes precedence.
func New(baseURL string) *Client {
	if env := os.Getenv(EnvBaseURL); env != "" {
		baseURL = env
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}
}

// Calculate validates in and asks the solver for layout options.
func (c *Client) Calculate(ctx context.Context, in layout.Input) ([]layout.Option, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if c.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("solver: encode input: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+layoutPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("solver: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var options []layout.Option
	if err := json.NewDecoder(resp.Body).Decode(&options); err != nil {
		return nil, fmt.Errorf("%w: decode options: %w", ErrTransport, err)
	}
	return options, nil
}

func (c *Client) http() HTTPClient {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}
