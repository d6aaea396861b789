package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
)

// SameBusinessDay reports whether a and b fall on the same calendar day in
// loc. Timestamps arrive in UTC, so both are moved into loc before the
// year/month/day comparison.
func SameBusinessDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// OrdersOfBusinessDay keeps the orders placed on the business day of now.
func OrdersOfBusinessDay(orders []domain.Order, now time.Time, loc *time.Location) []domain.Order {
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if SameBusinessDay(o.Date, now, loc) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// ComputeSummary totals the payments whose order was placed on the business
// day of now, keeping only cancelled orders when onlyCancelled is set and
// only non-cancelled ones otherwise. Payments whose order is unknown are
// skipped. Methods outside the four known ones count towards TotalForPeriod
// and TotalUnclassified but no per-method bucket.
func ComputeSummary(payments []domain.Payment, orders []domain.Order, onlyCancelled bool, now time.Time, loc *time.Location) domain.Summary {
	summary := domain.Summary{
		Date:              format.ISODate(now, loc),
		TotalForPeriod:    decimal.Zero,
		TotalCash:         decimal.Zero,
		TotalCard:         decimal.Zero,
		TotalQR:           decimal.Zero,
		TotalOnline:       decimal.Zero,
		TotalUnclassified: decimal.Zero,
	}

	byID := make(map[int]domain.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	for _, p := range payments {
		order, ok := byID[p.OrderID]
		if !ok {
			continue
		}
		if !SameBusinessDay(order.Date, now, loc) {
			continue
		}
		if order.IsCancelled() != onlyCancelled {
			continue
		}

		switch p.Method.Normalize() {
		case domain.PaymentMethodCash:
			summary.TotalCash = summary.TotalCash.Add(p.Amount)
		case domain.PaymentMethodCard:
			summary.TotalCard = summary.TotalCard.Add(p.Amount)
		case domain.PaymentMethodQR:
			summary.TotalQR = summary.TotalQR.Add(p.Amount)
		case domain.PaymentMethodOnline:
			summary.TotalOnline = summary.TotalOnline.Add(p.Amount)
		default:
			summary.TotalUnclassified = summary.TotalUnclassified.Add(p.Amount)
		}
		summary.TotalForPeriod = summary.TotalForPeriod.Add(p.Amount)
	}

	return summary
}
