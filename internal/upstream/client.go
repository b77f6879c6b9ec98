package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// APIError carries a non-2xx upstream response: its status code and whatever
// body could be read (empty when the read itself failed).
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

// Client issues keyed GET requests against the upstream API. It never
// retries; timeouts are whatever the transport enforces.
type Client struct {
	httpClient *http.Client
}

func NewClient(transport http.RoundTripper) *Client {
	return &Client{
		httpClient: &http.Client{Transport: transport},
	}
}

// Fetch performs a single GET against url with the API key attached. On a
// 2xx response the raw body is returned. On any other status the error is an
// *APIError holding the upstream status and body.
func (c *Client) Fetch(ctx context.Context, url, apiKey string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Best-effort read; a failed read still yields a usable error.
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	return body, nil
}
