package runanywhere

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

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	tasksPath       = "/v1/tasks"
	maxErrorBodyLen = 4 << 10
)

var ErrNoBaseURL = errors.New("runanywhere base url is not configured")

// APIError is returned for non-2xx responses from the service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("runanywhere: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the RunAnywhere HTTP API.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrNoBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse runanywhere base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("runanywhere base url %q must be http or https", baseURL)
	}

	return &Client{
		apiKey:   apiKey,
		endpoint: strings.TrimRight(u.String(), "/") + tasksPath,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// NewProvider returns a provider constructing the real client. It fails while
// no base URL is configured so that the dispatcher moves on to the next provider.
func NewProvider(baseURL string, timeout time.Duration) func(apiKey string) (any, error) {
	return func(apiKey string) (any, error) {
		c, err := NewClient(apiKey, baseURL, timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func (c *Client) RunTask(ctx context.Context, req *model.TaskRequest) (any, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "encode task request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build task request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "call runanywhere")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var result any
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode runanywhere response")
	}
	return result, nil
}
