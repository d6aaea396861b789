package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DenominationKind tells bills apart from coins.
type DenominationKind string

const (
	Bill DenominationKind = "Billete"
	Coin DenominationKind = "Moneda"
)

// Denomination is a face value counted individually during an arqueo.
type Denomination struct {
	Value int              `json:"valor"`
	Kind  DenominationKind `json:"tipo"`
}

// Denominations is the fixed, ordered set of face values, largest first.
var Denominations = []Denomination{
	{Value: 200, Kind: Bill},
	{Value: 100, Kind: Bill},
	{Value: 50, Kind: Bill},
	{Value: 20, Kind: Bill},
	{Value: 10, Kind: Bill},
	{Value: 5, Kind: Bill},
	{Value: 2, Kind: Coin},
	{Value: 1, Kind: Coin},
}

// IsDenomination reports whether value is one of the known face values.
func IsDenomination(value int) bool {
	for _, d := range Denominations {
		if d.Value == value {
			return true
		}
	}
	return false
}

// MaxDenominationCount bounds the units of a single denomination in a count.
const MaxDenominationCount = 1_000_000

// DenominationCount maps a face value to the number of units counted.
type DenominationCount map[int]int

// NewDenominationCount returns a count with every known denomination at zero.
func NewDenominationCount() DenominationCount {
	counts := make(DenominationCount, len(Denominations))
	for _, d := range Denominations {
		counts[d.Value] = 0
	}
	return counts
}

// Total returns the sum of value times count.
func (c DenominationCount) Total() decimal.Decimal {
	total := decimal.Zero
	for value, count := range c {
		total = total.Add(decimal.NewFromInt(int64(value)).Mul(decimal.NewFromInt(int64(count))))
	}
	return total
}

// Clone returns an independent copy of the count.
func (c DenominationCount) Clone() DenominationCount {
	out := make(DenominationCount, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ArqueoStatus classifies the outcome of a reconciliation.
type ArqueoStatus string

const (
	ArqueoBalanced  ArqueoStatus = "cuadrado"
	ArqueoSurplus   ArqueoStatus = "sobrante"
	ArqueoShortfall ArqueoStatus = "faltante"
)

// Arqueo is a persisted cash-register reconciliation. Records are append-only.
type Arqueo struct {
	ID           int               `json:"id"`
	Date         time.Time         `json:"fecha"`
	Counts       DenominationCount `json:"conteo"`
	PettyCash    decimal.Decimal   `json:"caja_chica"`
	CountedTotal decimal.Decimal   `json:"total_contado"`
	SystemTotal  decimal.Decimal   `json:"total_sistema"`
	Discrepancy  decimal.Decimal   `json:"diferencia"`
	Notes        string            `json:"observaciones"`
	Status       ArqueoStatus      `json:"estado"`
	// HasPettyCash is false when the record came without caja_chica or with
	// a null one.
	HasPettyCash bool `json:"-"`
}

func (a *Arqueo) UnmarshalJSON(data []byte) error {
	type alias Arqueo
	aux := struct {
		*alias
		PettyCash decimal.NullDecimal `json:"caja_chica"`
	}{alias: (*alias)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.PettyCash = aux.PettyCash.Decimal
	a.HasPettyCash = aux.PettyCash.Valid
	return nil
}

// ArqueoInput is the body sent to persist a new arqueo.
type ArqueoInput struct {
	Counts       DenominationCount `json:"conteo" validate:"required,dive,keys,oneof=200 100 50 20 10 5 2 1,endkeys,gte=0,lte=1000000"`
	PettyCash    decimal.Decimal   `json:"cajaChica" validate:"gte=0"`
	CountedTotal decimal.Decimal   `json:"totalContado" validate:"gte=0"`
	SystemTotal  decimal.Decimal   `json:"totalSistema"`
	Discrepancy  decimal.Decimal   `json:"diferencia"`
	Notes        string            `json:"observaciones" validate:"max=500"`
	Status       ArqueoStatus      `json:"estado" validate:"oneof=cuadrado sobrante faltante"`
}

// Summary holds the totals per payment method for the current business day.
// TotalUnclassified collects payments whose method is not one of the four
// known ones; they are part of TotalForPeriod as well.
type Summary struct {
	Date              string          `json:"fecha"`
	TotalForPeriod    decimal.Decimal `json:"totalDia"`
	TotalCash         decimal.Decimal `json:"totalEfectivo"`
	TotalCard         decimal.Decimal `json:"totalTarjeta"`
	TotalQR           decimal.Decimal `json:"totalQR"`
	TotalOnline       decimal.Decimal `json:"totalOnline"`
	TotalUnclassified decimal.Decimal `json:"totalSinClasificar"`
}

// MethodDetail is one row of the server side breakdown per payment method.
type MethodDetail struct {
	Method     PaymentMethod   `json:"metodo"`
	Total      decimal.Decimal `json:"total"`
	Count      FlexInt         `json:"cantidad"`
	Percentage string          `json:"porcentaje"`
}

// CashStatistics are the figures the backend derives for the day.
type CashStatistics struct {
	AveragePerOrder     decimal.Decimal `json:"promedioPorPedido"`
	MostUsedMethod      string          `json:"metodoPagoMasUsado"`
	HighestAmountMethod string          `json:"metodoPagoMayorMonto"`
}

// CashSummary is the pre-aggregated resumen de caja returned by the backend.
// Payments is nil when the backend did not include the raw payments; an empty
// array decodes to an empty, non-nil slice.
type CashSummary struct {
	Date          string          `json:"fecha"`
	TotalDay      decimal.Decimal `json:"totalDia"`
	TotalOrders   FlexInt         `json:"totalPedidos"`
	TotalCash     decimal.Decimal `json:"totalEfectivo"`
	TotalCard     decimal.Decimal `json:"totalTarjeta"`
	TotalQR       decimal.Decimal `json:"totalQR"`
	TotalOnline   decimal.Decimal `json:"totalOnline"`
	MethodDetails []MethodDetail  `json:"detallesPorMetodo"`
	Payments      []Payment       `json:"pagos"`
	Statistics    CashStatistics  `json:"estadisticas"`
}

// HasPayments reports whether the raw payments came with the summary.
func (s CashSummary) HasPayments() bool {
	return s.Payments != nil
}

// ServerTotals converts the backend totals into a Summary.
func (s CashSummary) ServerTotals(date string) Summary {
	return Summary{
		Date:              date,
		TotalForPeriod:    s.TotalDay,
		TotalCash:         s.TotalCash,
		TotalCard:         s.TotalCard,
		TotalQR:           s.TotalQR,
		TotalOnline:       s.TotalOnline,
		TotalUnclassified: decimal.Zero,
	}
}

// HistorySummary aggregates the arqueos of one day.
type HistorySummary struct {
	Date             string          `json:"fecha"`
	TotalArqueos     int             `json:"totalArqueos"`
	Balanced         int             `json:"cuadrados"`
	Surplus          int             `json:"sobrantes"`
	Shortfall        int             `json:"faltantes"`
	TotalCounted     decimal.Decimal `json:"totalContado"`
	TotalSystem      decimal.Decimal `json:"totalSistema"`
	TotalDiscrepancy decimal.Decimal `json:"diferenciaTotal"`
}

// HistoryReport lists the arqueos of one day, newest first, with the records
// that did not balance pulled out.
type HistoryReport struct {
	Summary    HistorySummary `json:"resumen"`
	Arqueos    []Arqueo       `json:"arqueos"`
	Discrepant []Arqueo       `json:"conDiferencia"`
}

// CancelledOrder is a cancelled order with its product lines and the payments
// that had been taken for it. DetailError is set when the product lines could
// not be loaded.
type CancelledOrder struct {
	Order       Order           `json:"pedido"`
	Products    []OrderProduct  `json:"productos"`
	Payments    []Payment       `json:"pagos"`
	Total       decimal.Decimal `json:"total"`
	Refundable  decimal.Decimal `json:"montoPagado"`
	DetailError string          `json:"errorDetalle,omitempty"`
}
