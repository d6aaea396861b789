package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"taqueando-console/internal/domain"
)

// Statistics returns every dashboard section in one call.
func (c *Client) Statistics(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if err := c.do(ctx, call{method: http.MethodGet, path: "/estadisticas", auth: true}, &stats); err != nil {
		return nil, fmt.Errorf("could not get statistics: %w", err)
	}
	stats.Normalize()
	return &stats, nil
}

// Logs returns all logs for admins or the caller's own logs for employees;
// the backend decides which.
func (c *Client) Logs(ctx context.Context) ([]domain.LogEntry, error) {
	return c.logs(ctx, "/logs")
}

// LogsByUser returns the logs of one user. Admin only.
func (c *Client) LogsByUser(ctx context.Context, userID int) ([]domain.LogEntry, error) {
	return c.logs(ctx, "/logs/"+strconv.Itoa(userID))
}

func (c *Client) logs(ctx context.Context, path string) ([]domain.LogEntry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: path, auth: true}, &raw); err != nil {
		return nil, fmt.Errorf("could not get logs: %w", err)
	}
	return decodeLogs(raw)
}

// decodeLogs accepts either a bare array or an object with a logs array.
func decodeLogs(raw json.RawMessage) ([]domain.LogEntry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("no logs received: %w", ErrInvalidPayload)
	}

	if raw[0] == '{' {
		var wrapped struct {
			Logs json.RawMessage `json:"logs"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("could not decode logs: %w", err)
		}
		raw = wrapped.Logs
	}

	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("logs are not a list: %w", ErrInvalidPayload)
	}

	var entries []domain.LogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("could not decode logs: %w", err)
	}
	return entries, nil
}
