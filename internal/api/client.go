package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrServiceUnavailable wraps transport-level failures so callers can tell
// "could not reach the backend" apart from errors the backend reported.
var ErrServiceUnavailable = errors.New("quiz service unavailable")

// APIError carries the status code and message of a backend-reported failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// TokenSource yields the current bearer token, or "" when no identity is
// present. The header is simply omitted in that case; authorization is
// enforced by the backend, not here.
type TokenSource func() string

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

func NewClient(baseURL string, httpClient *http.Client, token TokenSource) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8000"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      token,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Message) != "" {
			apiErr.Message = payload.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
