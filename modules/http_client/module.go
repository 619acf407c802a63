// Package http_client contributes the 'http' adapter: simple request methods
// over a shared HTTP client so callers reuse TCP connections.
package http_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/registry"
)

// Module implements the registry.Provider interface for this package.
type Module struct{}

// httpClient is shared across all method calls of this adapter.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Declare identifies the 'http' adapter.
func (m *Module) Declare() registry.Declaration {
	return registry.Declaration{Name: "http", Version: "1.2.0", ConfigTag: "ADAPTER_HTTP"}
}

// Methods lists the adapter's dispatchable functions.
func (m *Module) Methods() []registry.Method {
	return []registry.Method{
		{Name: "Fetch", Fn: Fetch},
		{Name: "Status", Fn: Status},
		{Name: "Post", Fn: Post},
	}
}

// Fetch performs a GET request and returns the response body as a string.
// Non-2xx responses are errors.
func Fetch(ctx context.Context, url string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("adapter", "http", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug("Fetched URL.", "status", resp.StatusCode, "bytes", len(body))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("request returned status: %s", resp.Status)
	}
	return string(body), nil
}

// Status performs a GET request and returns only the response status code.
func Status(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// Post sends a request body and returns the response status code.
func Post(ctx context.Context, url, contentType, body string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
