package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Veraticus/trendscope/internal/common"
)

// Health pings the service root. Any 2xx response means the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(HealthPath), nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrBackendUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %w", common.ErrBackendUnreachable,
			&common.ServerError{StatusCode: resp.StatusCode})
	}

	var root struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(data, &root) == nil && root.Message != "" {
		slog.Debug("API is running", "base_url", c.baseURL, "message", root.Message)
	} else {
		slog.Debug("API is running", "base_url", c.baseURL)
	}

	return nil
}
