package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"barveredales/internal/dto"
)

// RemoteGateway talks to the hosted account API over HTTP. Requests carry a
// hard timeout so a hung backend trips the failover instead of blocking the
// caller.
type RemoteGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteGateway(baseURL string, timeout time.Duration) *RemoteGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteGateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *RemoteGateway) Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := g.post(ctx, "/api/login", req, &out); err != nil {
		return nil, err
	}
	out.Source = "remote"
	return &out, nil
}

func (g *RemoteGateway) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	if err := g.post(ctx, "/api/register", req, &out); err != nil {
		return nil, err
	}
	out.Source = "remote"
	return &out, nil
}

func (g *RemoteGateway) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("remote: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("remote: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("remote: api returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("remote: api returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode response: %w", err)
	}
	return nil
}
