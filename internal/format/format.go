// Package format renders amounts and dates for display. Nothing here is a
// wire format.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"taqueando-console/internal/domain"
)

// Amount renders d with two decimals.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DateTime renders t in loc as dd/mm/yyyy hh:mm a.m.|p.m.
func DateTime(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	suffix := "a.m."
	if local.Hour() >= 12 {
		suffix = "p.m."
	}
	return local.Format("02/01/2006 03:04") + " " + suffix
}

// ISODate renders the calendar day of t in loc as YYYY-MM-DD.
func ISODate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

// ParseISODate parses a YYYY-MM-DD day.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

// MethodColor maps a payment method to its badge colour.
func MethodColor(method domain.PaymentMethod) string {
	switch method.Normalize() {
	case domain.PaymentMethodCash:
		return "success"
	case domain.PaymentMethodCard:
		return "info"
	case domain.PaymentMethodQR:
		return "secondary"
	case domain.PaymentMethodOnline:
		return "warning"
	default:
		return "default"
	}
}

// FillColor is the spreadsheet fill of a badge colour.
func FillColor(color string) string {
	switch color {
	case "success":
		return "C6EFCE"
	case "warning":
		return "FFEB9C"
	case "error":
		return "FFC7CE"
	case "info":
		return "BDD7EE"
	case "secondary":
		return "E2D0F0"
	default:
		return ""
	}
}

// ArqueoColor maps an arqueo status to its badge colour.
func ArqueoColor(status domain.ArqueoStatus) string {
	switch status {
	case domain.ArqueoBalanced:
		return "success"
	case domain.ArqueoSurplus:
		return "warning"
	default:
		return "error"
	}
}
