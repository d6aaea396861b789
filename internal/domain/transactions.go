package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order as reported by the backend.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusCompleted OrderStatus = "completado"
	OrderStatusCancelled OrderStatus = "cancelado"
	OrderStatusPaid      OrderStatus = "pagado"
)

// OrderStatuses lists every status accepted by the order history filter.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusPaid,
}

// Valid reports whether s is one of OrderStatuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Validate checks the dates and the status of the filter. Empty fields are
// allowed.
func (f OrderFilter) Validate() error {
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
	}
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}
	return nil
}

// OrderType tells table orders apart from takeaway ones.
type OrderType string

const (
	OrderTypeTable    OrderType = "mesa"
	OrderTypeTakeaway OrderType = "llevar"
)

// Order represents a customer order placed for a table or for takeaway.
// Date is stored by the backend in UTC.
type Order struct {
	ID          int         `json:"id"`
	Name        string      `json:"nombre"`
	Date        time.Time   `json:"fecha"`
	Status      OrderStatus `json:"estado"`
	ServingUser string      `json:"usuario"`
	Type        OrderType   `json:"tipo,omitempty"`
}

// IsCancelled reports whether the order was cancelled.
func (o Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// NewOrder is the body sent to create an order.
type NewOrder struct {
	Name   string    `json:"nombre" validate:"required,max=100"`
	Type   OrderType `json:"tipo" validate:"required,oneof=mesa llevar"`
	Table  int       `json:"mesa,omitempty" validate:"required_if=Type mesa,gte=0"`
	UserID int       `json:"id_usuario,omitempty"`
}

// OrderFilter holds the query of the paginated order history.
type OrderFilter struct {
	Page   int
	Limit  int
	From   string // YYYY-MM-DD
	To     string // YYYY-MM-DD
	Status OrderStatus
	User   string
}

// OrderPage is one page of the order history.
type OrderPage struct {
	Orders []Order `json:"data"`
	Total  int     `json:"total"`
}

// OrderProduct is a product line of an order. Annulled lines stay listed but
// no longer count towards the order total.
type OrderProduct struct {
	ID        int             `json:"id"`
	ProductID int             `json:"id_producto"`
	Name      string          `json:"nombre"`
	Price     decimal.Decimal `json:"precio"`
	Quantity  FlexInt         `json:"cantidad"`
	Annulled  bool            `json:"anulado"`
}

// Subtotal returns price times quantity, or zero for annulled lines.
func (p OrderProduct) Subtotal() decimal.Decimal {
	if p.Annulled {
		return decimal.Zero
	}
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// PaymentMethod is the way a payment was received.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "efectivo"
	PaymentMethodCard   PaymentMethod = "tarjeta"
	PaymentMethodQR     PaymentMethod = "qr"
	PaymentMethodOnline PaymentMethod = "online"
)

// Normalize lower-cases and trims the method so it can be compared against
// the known methods.
func (m PaymentMethod) Normalize() PaymentMethod {
	return PaymentMethod(strings.ToLower(strings.TrimSpace(string(m))))
}

// Payment records money received against an order. Many payments may point
// to the same order.
type Payment struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"idPedido"`
	Amount      decimal.Decimal `json:"monto"`
	Method      PaymentMethod   `json:"metodo"`
	Time        string          `json:"hora"`
	OrderStatus OrderStatus     `json:"estadoPedido,omitempty"`
	OrderName   string          `json:"nombrePedido,omitempty"`
	UserName    string          `json:"nombreUsuario,omitempty"`
}

// UnmarshalJSON accepts both id_pedido and idPedido for the order reference;
// id_pedido wins when both are set.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type alias Payment
	aux := struct {
		*alias
		SnakeOrderID int `json:"id_pedido"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.SnakeOrderID != 0 {
		p.OrderID = aux.SnakeOrderID
	}
	return nil
}
