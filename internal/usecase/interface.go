package usecase

import (
	"context"

	"taqueando-console/internal/domain"
)

// CashRepository defines the interface for fetching the day's cash data.
// The usecase layer depends on this interface, not on the REST client.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type CashRepository interface {
	CashSummary(ctx context.Context) (*domain.CashSummary, error)
	OrdersOfDay(ctx context.Context) ([]domain.Order, error)
	OrderProducts(ctx context.Context, orderID int) ([]domain.OrderProduct, error)
}

// ArqueoRepository persists and queries reconciliation records.
// LastArqueo returns (nil, nil) when no record exists yet.
type ArqueoRepository interface {
	CreateArqueo(ctx context.Context, in domain.ArqueoInput) (*domain.Arqueo, error)
	LastArqueo(ctx context.Context) (*domain.Arqueo, error)
	ArqueosByDate(ctx context.Context, date string) ([]domain.Arqueo, error)
}

// Notifier surfaces the outcome of a user action.
type Notifier interface {
	Success(message string)
	Error(message string)
}
