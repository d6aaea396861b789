package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexInt decodes integers sent either as JSON numbers or as strings, as the
// backend returns aggregate counts as text. null and "" decode to zero.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", raw, err)
	}
	*n = FlexInt(d.IntPart())
	return nil
}

func (n FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(n))), nil
}

// Role is the access level of a console user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "empleado"
)

// User is the authenticated console user.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  Role   `json:"rol"`
}

// IncomeRow is the revenue of one day.
type IncomeRow struct {
	Date        string          `json:"fecha"`
	Total       decimal.Decimal `json:"total"`
	TotalOrders FlexInt         `json:"total_pedidos"`
}

// MethodIncomeRow is the revenue of one payment method.
type MethodIncomeRow struct {
	Method PaymentMethod   `json:"metodo"`
	Total  decimal.Decimal `json:"total"`
	Count  FlexInt         `json:"cantidad"`
}

// TopProductRow is a best selling product.
type TopProductRow struct {
	Name          string          `json:"nombre"`
	TotalQuantity FlexInt         `json:"cantidad_total"`
	TotalIncome   decimal.Decimal `json:"ingresos_total"`
}

// HourlySalesRow aggregates sales per hour of the day.
type HourlySalesRow struct {
	Hour        FlexInt         `json:"hora"`
	TotalSales  decimal.Decimal `json:"total_ventas"`
	TotalOrders FlexInt         `json:"total_pedidos"`
}

// CancelledProductRow aggregates cancellations of one product.
type CancelledProductRow struct {
	Name              string          `json:"nombre"`
	TimesCancelled    FlexInt         `json:"veces_cancelado"`
	QuantityCancelled FlexInt         `json:"cantidad_total_cancelada"`
	LostValue         decimal.Decimal `json:"valor_perdido"`
}

// UserPerformanceRow aggregates the sales of one staff member.
type UserPerformanceRow struct {
	User        string          `json:"nombre"`
	TotalOrders FlexInt         `json:"total_pedidos"`
	TotalSales  decimal.Decimal `json:"total_ventas"`
	AverageSale decimal.Decimal `json:"promedio_venta"`
}

// WeeklyComparisonRow compares sales between periods.
type WeeklyComparisonRow struct {
	Period      string          `json:"periodo"`
	TotalOrders FlexInt         `json:"total_pedidos"`
	TotalSales  decimal.Decimal `json:"total_ventas"`
	ActiveUsers FlexInt         `json:"usuarios_activos"`
}

// Statistics is the full dashboard payload.
type Statistics struct {
	Income            []IncomeRow           `json:"ingresos"`
	IncomeByMethod    []MethodIncomeRow     `json:"ingresosPorMetodo"`
	TopProducts       []TopProductRow       `json:"productosMasVendidos"`
	HourlySales       []HourlySalesRow      `json:"ventasPorHora"`
	CancelledProducts []CancelledProductRow `json:"productosCancelados"`
	UserPerformance   []UserPerformanceRow  `json:"rendimientoUsuarios"`
	WeeklyComparison  []WeeklyComparisonRow `json:"comparativaSemanal"`
}

// Normalize replaces missing sections with empty slices.
func (s *Statistics) Normalize() {
	if s.Income == nil {
		s.Income = []IncomeRow{}
	}
	if s.IncomeByMethod == nil {
		s.IncomeByMethod = []MethodIncomeRow{}
	}
	if s.TopProducts == nil {
		s.TopProducts = []TopProductRow{}
	}
	if s.HourlySales == nil {
		s.HourlySales = []HourlySalesRow{}
	}
	if s.CancelledProducts == nil {
		s.CancelledProducts = []CancelledProductRow{}
	}
	if s.UserPerformance == nil {
		s.UserPerformance = []UserPerformanceRow{}
	}
	if s.WeeklyComparison == nil {
		s.WeeklyComparison = []WeeklyComparisonRow{}
	}
}

// LogEntry is one line of the activity log.
type LogEntry struct {
	ID       int    `json:"id"`
	UserID   int    `json:"id_usuario"`
	UserName string `json:"nombre_usuario"`
	Action   string `json:"accion"`
	Detail   string `json:"descripcion"`
	Date     string `json:"fecha"`
}
