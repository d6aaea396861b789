package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
)

// CreateArqueo persists a new reconciliation and returns the stored record.
func (c *Client) CreateArqueo(ctx context.Context, in domain.ArqueoInput) (*domain.Arqueo, error) {
	var created domain.Arqueo
	err := c.do(ctx, call{method: http.MethodPost, path: "/arqueos", body: in}, &created)
	if err != nil {
		return nil, fmt.Errorf("could not create arqueo: %w", err)
	}
	return &created, nil
}

// ArqueosByDate lists the arqueos of a YYYY-MM-DD day. A body that is not an
// array yields an empty list.
func (c *Client) ArqueosByDate(ctx context.Context, date string) ([]domain.Arqueo, error) {
	if _, err := format.ParseISODate(date); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/arqueos/fecha",
		query:  url.Values{"fecha": {date}},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("could not get arqueos for %s: %w", date, err)
	}

	arqueos := []domain.Arqueo{}
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &arqueos); err != nil {
			return nil, fmt.Errorf("could not decode arqueos: %w", err)
		}
	}
	return arqueos, nil
}

// LastArqueo returns the most recent arqueo. A 404 means no arqueo was ever
// recorded and yields (nil, nil); so does an empty or null body.
func (c *Client) LastArqueo(ctx context.Context) (*domain.Arqueo, error) {
	var last *domain.Arqueo
	err := c.do(ctx, call{method: http.MethodGet, path: "/arqueos/ultimo"}, &last)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get last arqueo: %w", err)
	}
	return last, nil
}
