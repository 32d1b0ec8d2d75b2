// Package apiclient is the typed HTTP surface onto the external FoodHub
// REST backend. It owns transport, auth headers, the response envelope and
// status-to-error mapping; domain packages never touch net/http directly.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/foodhub-app/client-core/pkg/config"
	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
	"github.com/foodhub-app/client-core/pkg/logger"
)

const maxResponseBytes = 1 << 20

// Client calls the FoodHub backend with bearer-token auth.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logg       *logger.Logger
}

// New builds a client for the configured backend base URL.
func New(cfg config.APIConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base url required")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logg:       logg,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading response")
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		raw = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithFields(ctx, map[string]any{
				"status": resp.StatusCode,
				"path":   path,
			}), "foodhub api request failed")
		}
		return pkgerrors.New(codeForStatus(resp.StatusCode), errorMessage(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(extractPayload(raw), out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding response")
	}
	return nil
}

// extractPayload unwraps the backend's response envelope: a top-level
// "data" or "result" field when present, the raw body otherwise.
func extractPayload(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	if data, ok := envelope["data"]; ok {
		return data
	}
	if result, ok := envelope["result"]; ok {
		return result
	}
	return raw
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
			return body.Message
		}
	}
	return "request failed"
}

func codeForStatus(status int) pkgerrors.Code {
	switch {
	case status == http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case status == http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case status >= 400 && status < 500:
		return pkgerrors.CodeValidation
	default:
		return pkgerrors.CodeDependency
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
