// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"holidaze-server/config"
)

// UNREACHABLE_MESSAGE is shown when the upstream could not be reached at all.
const UNREACHABLE_MESSAGE = "Couldn't reach the Holidaze API"

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// APIError is a non-2xx response, or a transport failure reported as 502.
// Message is fit for showing to a user; Err keeps the transport cause.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	APIKey     string
	Tokens     TokenSource
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: config.HOLIDAZE_REQUEST_TIMEOUT, // Set a timeout for requests
		},
	}
}

// Request makes an HTTP request to the API and decodes the response
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, query url.Values, body interface{}, response interface{}) error {
	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	u := c.BaseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, requestBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-Noroff-API-Key", c.APIKey)
	}
	if c.Tokens != nil {
		token, err := c.Tokens.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to read access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return unreachable(ctx, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return unreachable(ctx, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return newAPIError(res.StatusCode, resBody)
	}

	if response != nil && len(resBody) > 0 {
		return json.Unmarshal(resBody, response)
	}

	return nil
}

// errorBody covers both error shapes the API answers with.
type errorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := fmt.Sprintf("Request failed: %d", status)
	switch {
	case len(eb.Errors) > 0 && eb.Errors[0].Message != "":
		msg = eb.Errors[0].Message
	case eb.Message != "":
		msg = eb.Message
	}
	return &APIError{Status: status, Message: msg}
}

// unreachable reports a transport failure. A cancelled or expired ctx is
// returned as is so callers can tell it apart from an upstream outage.
func unreachable(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &APIError{Status: http.StatusBadGateway, Message: UNREACHABLE_MESSAGE, Err: err}
}
