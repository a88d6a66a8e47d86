package dndctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hushd/hushd/internal/domain"
	"github.com/hushd/hushd/internal/observability/logging"
	"github.com/hushd/hushd/internal/observability/tracing"
)

// Client talks to the platform endpoint that owns the interruption filter.
// A 403 from any operation maps to ErrPermissionDenied: the user has not
// granted (or has revoked) policy access.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type permissionResponse struct {
	Granted bool `json:"granted"`
}

type stateResponse struct {
	Active bool `json:"active"`
}

type applyRequest struct {
	Active bool `json:"active"`
}

func (c *Client) HasPermission(ctx context.Context) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/dnd/permission", nil)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return false, nil
		}
		return false, err
	}

	var resp permissionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("failed to decode permission response: %w", err)
	}
	return resp.Granted, nil
}

func (c *Client) Apply(ctx context.Context, active bool) error {
	payload, err := json.Marshal(applyRequest{Active: active})
	if err != nil {
		return fmt.Errorf("failed to marshal apply request: %w", err)
	}

	slog.DebugContext(ctx, "applying interruption state",
		slog.Bool("active", active),
	)

	_, err = c.do(ctx, http.MethodPut, "/api/v1/dnd", payload)
	return err
}

func (c *Client) Current(ctx context.Context) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/dnd", nil)
	if err != nil {
		return false, err
	}

	var resp stateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("failed to decode state response: %w", err)
	}
	return resp.Active, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to reach interruption controller",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrPermissionDenied
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent:
		slog.ErrorContext(ctx, "unexpected status code from interruption controller",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
