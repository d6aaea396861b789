package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"taqueando-console/internal/config"
	"taqueando-console/internal/domain"
)

// detailWorkers bounds the product lookups running at once.
const detailWorkers = 4

// CancelledOrdersUseCase lists the day's cancelled orders with their detail.
type CancelledOrdersUseCase struct {
	repo   CashRepository
	loc    *time.Location
	now    func() time.Time
	logger *logrus.Logger
}

func NewCancelledOrdersUseCase(repo CashRepository, loc *time.Location, logger *logrus.Logger) *CancelledOrdersUseCase {
	if logger == nil {
		logger = config.GetLogger()
	}
	return &CancelledOrdersUseCase{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// Today returns the orders cancelled on the current business day, most
// recent first. Each one carries its products and the payments the cash
// summary lists for it. An order whose products cannot be loaded is kept
// with DetailError set.
func (uc *CancelledOrdersUseCase) Today(ctx context.Context) ([]domain.CancelledOrder, error) {
	var (
		orders  []domain.Order
		summary *domain.CashSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := uc.repo.OrdersOfDay(gctx)
		if err != nil {
			return fmt.Errorf("could not get orders: %w", err)
		}
		orders = o
		return nil
	})
	g.Go(func() error {
		s, err := uc.repo.CashSummary(gctx)
		if err != nil {
			// payments are optional detail
			config.LogError(uc.logger, "usecase", "CancelledOrders.Today", "fetching cash summary", nil, err)
			return nil
		}
		summary = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paymentsByOrder := make(map[int][]domain.Payment)
	if summary != nil {
		for _, p := range summary.Payments {
			paymentsByOrder[p.OrderID] = append(paymentsByOrder[p.OrderID], p)
		}
	}

	now := uc.now()
	result := make([]domain.CancelledOrder, 0)
	for _, o := range OrdersOfBusinessDay(orders, now, uc.loc) {
		if !o.IsCancelled() {
			continue
		}
		payments := paymentsByOrder[o.ID]
		if payments == nil {
			payments = []domain.Payment{}
		}
		result = append(result, domain.CancelledOrder{
			Order:      o,
			Products:   []domain.OrderProduct{},
			Payments:   payments,
			Total:      decimal.Zero,
			Refundable: sumPayments(payments),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Order.Date.After(result[j].Order.Date)
	})

	fan, fctx := errgroup.WithContext(ctx)
	fan.SetLimit(detailWorkers)
	for i := range result {
		item := &result[i]
		fan.Go(func() error {
			products, err := uc.repo.OrderProducts(fctx, item.Order.ID)
			if err != nil {
				uc.logger.WithError(err).WithField("order_id", item.Order.ID).Warn("could not load products of cancelled order")
				item.DetailError = err.Error()
				return nil
			}
			if products != nil {
				item.Products = products
			}
			item.Total = productsTotal(products)
			return nil
		})
	}
	_ = fan.Wait()

	return result, nil
}

func productsTotal(products []domain.OrderProduct) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Subtotal())
	}
	return total
}

func sumPayments(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
