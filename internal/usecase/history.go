package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
)

// HistoryUseCase reports the arqueos recorded on a given day.
type HistoryUseCase struct {
	repo ArqueoRepository
}

func NewHistoryUseCase(repo ArqueoRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// ByDate lists the arqueos of date (YYYY-MM-DD), newest first, and totals
// them per status.
func (uc *HistoryUseCase) ByDate(ctx context.Context, date string) (*domain.HistoryReport, error) {
	if _, err := format.ParseISODate(date); err != nil {
		return nil, err
	}

	arqueos, err := uc.repo.ArqueosByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("could not get arqueos: %w", err)
	}

	sorted := make([]domain.Arqueo, len(arqueos))
	copy(sorted, arqueos)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].Date.After(sorted[j].Date)
	})

	report := domain.HistoryReport{
		Summary: domain.HistorySummary{
			Date:             date,
			TotalArqueos:     len(sorted),
			TotalCounted:     decimal.Zero,
			TotalSystem:      decimal.Zero,
			TotalDiscrepancy: decimal.Zero,
		},
		Arqueos:    sorted,
		Discrepant: make([]domain.Arqueo, 0),
	}

	for _, a := range sorted {
		uc.tally(&report, a)
	}

	return &report, nil
}

func (uc *HistoryUseCase) tally(report *domain.HistoryReport, a domain.Arqueo) {
	s := &report.Summary
	s.TotalCounted = s.TotalCounted.Add(a.CountedTotal)
	s.TotalSystem = s.TotalSystem.Add(a.SystemTotal)
	s.TotalDiscrepancy = s.TotalDiscrepancy.Add(a.Discrepancy)

	switch a.Status {
	case domain.ArqueoBalanced:
		s.Balanced++
		return
	case domain.ArqueoSurplus:
		s.Surplus++
	case domain.ArqueoShortfall:
		s.Shortfall++
	}
	report.Discrepant = append(report.Discrepant, a)
}
