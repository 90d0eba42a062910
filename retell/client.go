// Package retell talks to the Retell API endpoint that creates web calls.
package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Endpoint selects the API version used for an attempt.
type Endpoint int

const (
	V2 Endpoint = iota
	V1
)

// String returns the version label used in logs.
func (e Endpoint) String() string {
	if e == V1 {
		return "v1"
	}
	return "v2"
}

// Path returns the endpoint path relative to the API root. The v1 path has
// no version prefix.
func (e Endpoint) Path() string {
	if e == V1 {
		return "/create-web-call"
	}
	return "/v2/create-web-call"
}

// SourceWebDemo tags every call created through this proxy.
const SourceWebDemo = "web_demo"

// Metadata is attached to the created call.
type Metadata struct {
	Source string `json:"source"`
}

// CreateWebCallRequest is the body posted upstream.
type CreateWebCallRequest struct {
	AgentID  string   `json:"agent_id"`
	Metadata Metadata `json:"metadata"`
}

// NewCreateWebCallRequest returns the fixed payload for agentID.
func NewCreateWebCallRequest(agentID string) CreateWebCallRequest {
	return CreateWebCallRequest{AgentID: agentID, Metadata: Metadata{Source: SourceWebDemo}}
}

// Attempt is the outcome of one POST to an endpoint that got a response.
// Parsed is false when Raw was not a JSON object, in which case Data is
// empty.
type Attempt struct {
	Endpoint Endpoint
	URL      string
	OK       bool
	Status   int
	Parsed   bool
	Data     map[string]interface{}
	Raw      string
}

// String returns the named field of the parsed body when it is a string.
func (a *Attempt) String(field string) string {
	s, _ := a.Data[field].(string)
	return s
}

// Client posts create-web-call requests with the server side API key.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	apiKey string
}

// NewClient returns a client for the API rooted at baseURL. A nil httpClient
// uses http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
		apiKey:     apiKey,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// ShouldFallback reports whether a v2 attempt is retried against v1. Only a
// failed 404 or 400 qualifies.
func ShouldFallback(a *Attempt) bool {
	return a != nil && !a.OK && (a.Status == http.StatusNotFound || a.Status == http.StatusBadRequest)
}

// CreateWebCall posts to v2 and, when ShouldFallback holds, once more to v1
// with the same body. The returned attempt is the last one made. An error is
// only returned when an endpoint could not be reached; it is never retried.
func (c *Client) CreateWebCall(ctx context.Context, agentID string) (*Attempt, error) {
	body := NewCreateWebCallRequest(agentID)

	attempt, err := c.Post(ctx, V2, body)
	if err != nil {
		return nil, err
	}

	if !ShouldFallback(attempt) {
		return attempt, nil
	}

	return c.Post(ctx, V1, body)
}

// Post performs a single request against endpoint. A body that is not a JSON
// object leaves Data empty rather than failing.
func (c *Client) Post(ctx context.Context, endpoint Endpoint, body CreateWebCallRequest) (*Attempt, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed marshalling create web call request")
	}

	url := c.BaseURL + endpoint.Path()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrapf(err, "failed building request to %s", url)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading response from %s", url)
	}

	var data map[string]interface{}
	parsed := json.Unmarshal(raw, &data) == nil && data != nil
	if !parsed {
		data = map[string]interface{}{}
	}

	return &Attempt{
		Endpoint: endpoint,
		URL:      url,
		OK:       resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:   resp.StatusCode,
		Parsed:   parsed,
		Data:     data,
		Raw:      string(raw),
	}, nil
}
