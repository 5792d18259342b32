package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// APIError is a structured rejection from the pet center service.
// Required and Balance are only present on insufficient-funds rejections
// of a shop order.
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"error"`
	Required   *float64 `json:"required,omitempty"`
	Balance    *float64 `json:"balance,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsInsufficientFunds reports whether the rejection carries the
// structured required/balance pair.
func (e *APIError) IsInsufficientFunds() bool {
	return e.Required != nil && e.Balance != nil
}

// Client is a typed HTTP client for the pet center REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// doRequest performs one API exchange: marshal the body, attach headers,
// read the response, and fold non-2xx statuses into *APIError. Transport
// failures (no response at all) come back as plain wrapped errors.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, headers map[string]string) ([]byte, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach pet center api: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(respBody, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		return nil, apiErr
	}

	return respBody, nil
}

// get is doRequest + unmarshal for the common query case.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	respBody, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %v", err)
	}
	return nil
}
