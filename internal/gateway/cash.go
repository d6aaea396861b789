package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
)

// CashSummary returns the resumen de caja of the current day.
func (c *Client) CashSummary(ctx context.Context) (*domain.CashSummary, error) {
	var summary domain.CashSummary
	if err := c.do(ctx, call{method: http.MethodGet, path: "/caja/resumen"}, &summary); err != nil {
		return nil, fmt.Errorf("could not get cash summary: %w", err)
	}
	return &summary, nil
}

// CashSummaryByDate returns the resumen de caja of a YYYY-MM-DD day.
func (c *Client) CashSummaryByDate(ctx context.Context, date string) (*domain.CashSummary, error) {
	if _, err := format.ParseISODate(date); err != nil {
		return nil, err
	}

	var summary domain.CashSummary
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/caja/resumen/fecha",
		query:  url.Values{"fecha": {date}},
	}, &summary)
	if err != nil {
		return nil, fmt.Errorf("could not get cash summary for %s: %w", date, err)
	}
	return &summary, nil
}
