package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// Client wraps http.Client with test-friendly methods
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.Token = token
	return &clone
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (c *Client) GET(t *testing.T, path string) *Response {
	t.Helper()
	return c.request(t, http.MethodGet, path, nil)
}

func (c *Client) POST(t *testing.T, path string, body any) *Response {
	t.Helper()
	return c.request(t, http.MethodPost, path, body)
}

func (c *Client) PUT(t *testing.T, path string, body any) *Response {
	t.Helper()
	return c.request(t, http.MethodPut, path, body)
}

func (c *Client) DELETE(t *testing.T, path string) *Response {
	t.Helper()
	return c.request(t, http.MethodDelete, path, nil)
}

func (c *Client) request(t *testing.T, method, path string, body any) *Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}
}

// WaitForHealthy polls the health endpoint until service is ready
func (c *Client) WaitForHealthy(t *testing.T, maxWait time.Duration) {
	t.Helper()

	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		resp, err := c.HTTPClient.Get(c.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			t.Log("Service is healthy")
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		<-ticker.C
	}

	t.Fatalf("service did not become healthy within %v", maxWait)
}

// AssertStatusCode fails the test if status code doesn't match
func AssertStatusCode(t *testing.T, resp *Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(resp.Body))
	}
}

// AssertContains fails if response body doesn't contain substring
func AssertContains(t *testing.T, resp *Response, substr string) {
	t.Helper()
	if body := string(resp.Body); !strings.Contains(body, substr) {
		t.Fatalf("response body does not contain %q. Body: %s", substr, body)
	}
}

// Message extracts the message field every error body carries.
func Message(t *testing.T, resp *Response) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		t.Fatalf("failed to unmarshal message: %v. Body: %s", err, string(resp.Body))
	}
	return body.Message
}
