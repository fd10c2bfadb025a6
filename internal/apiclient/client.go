// Package apiclient calls the jardin REST API. The caller's session travels
// in the request context, set with auth.WithSession.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/alexanderramin/jardin/internal/httpapi"
)

type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries int
}

// New creates a client for the server at baseURL. GET requests are retried
// maxRetries times on connection errors.
func New(baseURL string, maxRetries int) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		maxRetries: maxRetries,
	}
}

// Available checks whether the server answers its health probe.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Catalog fetches every plan with its tasks.
func (c *Client) Catalog(ctx context.Context) ([]httpapi.CatalogPlan, error) {
	var out []httpapi.CatalogPlan
	if err := c.call(ctx, http.MethodGet, "/v1/catalog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScheduleVisits generates the missing visits of a contract.
func (c *Client) ScheduleVisits(ctx context.Context, contractID string) (*httpapi.ScheduleResult, error) {
	var out httpapi.ScheduleResult
	if err := c.call(ctx, http.MethodPost, "/v1/visits/schedule/"+contractID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// call sends one request and decodes the envelope's data into out.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	session, ok := auth.SessionFrom(ctx)
	if !ok || session.Token == "" {
		return ErrNoSession
	}

	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.maxRetries
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = c.do(ctx, method, path, session.Token, data, out)
		if lastErr == nil || !isConnectionError(lastErr) || ctx.Err() != nil {
			break
		}
	}

	switch {
	case lastErr == nil:
		return nil
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(lastErr):
		return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, path, token string, data []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr httpapi.ErrorResponse
		msg := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	envelope := httpapi.APIResponse[json.RawMessage]{}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
