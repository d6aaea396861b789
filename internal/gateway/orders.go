package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"taqueando-console/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// OrdersOfDay returns the orders the backend considers part of today.
func (c *Client) OrdersOfDay(ctx context.Context) ([]domain.Order, error) {
	var resp struct {
		Data []domain.Order `json:"data"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/pedidos/pedidos-dia"}, &resp); err != nil {
		return nil, fmt.Errorf("could not get orders of the day: %w", err)
	}
	if resp.Data == nil {
		return []domain.Order{}, nil
	}
	return resp.Data, nil
}

// CreateOrder opens a new table or takeaway order.
func (c *Client) CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error) {
	var created domain.Order
	if err := c.do(ctx, call{method: http.MethodPost, path: "/pedidos", body: in}, &created); err != nil {
		return nil, fmt.Errorf("could not create order: %w", err)
	}
	return &created, nil
}

// OrderByID returns one order.
func (c *Client) OrderByID(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, call{method: http.MethodGet, path: "/pedidos/" + strconv.Itoa(id)}, &order)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", domain.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get order %d: %w", id, err)
	}
	return &order, nil
}

// ListOrders queries the order history. Empty filter fields are not sent.
func (c *Client) ListOrders(ctx context.Context, f domain.OrderFilter) (*domain.OrderPage, error) {
	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if f.From != "" {
		q.Set("fechaInicio", f.From)
	}
	if f.To != "" {
		q.Set("fechaFin", f.To)
	}
	if f.Status != "" {
		q.Set("estado", string(f.Status))
	}
	if f.User != "" {
		q.Set("usuario", f.User)
	}

	var result domain.OrderPage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/pedidos", query: q}, &result); err != nil {
		return nil, fmt.Errorf("could not list orders: %w", err)
	}
	if result.Orders == nil {
		result.Orders = []domain.Order{}
	}
	return &result, nil
}

// OrderProducts returns the product lines of an order, annulled ones included.
func (c *Client) OrderProducts(ctx context.Context, orderID int) ([]domain.OrderProduct, error) {
	var resp struct {
		Products []domain.OrderProduct `json:"productos"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/contiene/pedido/" + strconv.Itoa(orderID)}, &resp)
	if err != nil {
		return nil, fmt.Errorf("could not get products of order %d: %w", orderID, err)
	}
	if resp.Products == nil {
		return []domain.OrderProduct{}, nil
	}
	return resp.Products, nil
}
