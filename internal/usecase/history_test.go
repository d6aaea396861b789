package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/usecase"
	mock_usecase "taqueando-console/internal/usecase/mocks"
)

func TestHistoryUseCase_ByDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		date        string
		arqueos     []domain.Arqueo
		repoErr     error
		expectCall  bool
		wantIDs     []int
		wantSummary domain.HistorySummary
		wantDiscIDs []int
		wantErr     error
		wantAnyErr  bool
	}{
		{
			name:       "orders newest first and tallies statuses",
			date:       "2025-05-01",
			expectCall: true,
			arqueos: []domain.Arqueo{
				{ID: 1, Date: base, CountedTotal: money("100"), SystemTotal: money("100"), Discrepancy: money("0"), Status: domain.ArqueoBalanced},
				{ID: 2, Date: base.Add(2 * time.Hour), CountedTotal: money("90"), SystemTotal: money("100"), Discrepancy: money("-10"), Status: domain.ArqueoShortfall},
				{ID: 3, Date: base.Add(time.Hour), CountedTotal: money("105"), SystemTotal: money("100"), Discrepancy: money("5"), Status: domain.ArqueoSurplus},
				{ID: 4, Date: base.Add(2 * time.Hour), CountedTotal: money("100"), SystemTotal: money("100"), Discrepancy: money("0"), Status: domain.ArqueoBalanced},
			},
			wantIDs: []int{4, 2, 3, 1},
			wantSummary: domain.HistorySummary{
				Date:         "2025-05-01",
				TotalArqueos: 4,
				Balanced:     2,
				Surplus:      1,
				Shortfall:    1,
			},
			wantDiscIDs: []int{2, 3},
		},
		{
			name:        "empty day",
			date:        "2025-05-02",
			expectCall:  true,
			arqueos:     []domain.Arqueo{},
			wantIDs:     []int{},
			wantSummary: domain.HistorySummary{Date: "2025-05-02"},
			wantDiscIDs: []int{},
		},
		{
			name:    "invalid date",
			date:    "01/05/2025",
			wantErr: domain.ErrInvalidDate,
		},
		{
			name:       "repository failure",
			date:       "2025-05-01",
			expectCall: true,
			repoErr:    errors.New("boom"),
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock_usecase.NewMockArqueoRepository(ctrl)
			if tt.expectCall {
				repo.EXPECT().ArqueosByDate(gomock.Any(), tt.date).Return(tt.arqueos, tt.repoErr)
			}

			uc := usecase.NewHistoryUseCase(repo)
			got, err := uc.ByDate(context.Background(), tt.date)

			if tt.wantErr != nil || tt.wantAnyErr {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)

			ids := make([]int, 0, len(got.Arqueos))
			for _, a := range got.Arqueos {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			disc := make([]int, 0, len(got.Discrepant))
			for _, a := range got.Discrepant {
				disc = append(disc, a.ID)
			}
			assert.Equal(t, tt.wantDiscIDs, disc)

			assert.Equal(t, tt.wantSummary.Date, got.Summary.Date)
			assert.Equal(t, tt.wantSummary.TotalArqueos, got.Summary.TotalArqueos)
			assert.Equal(t, tt.wantSummary.Balanced, got.Summary.Balanced)
			assert.Equal(t, tt.wantSummary.Surplus, got.Summary.Surplus)
			assert.Equal(t, tt.wantSummary.Shortfall, got.Summary.Shortfall)
		})
	}
}

func TestHistoryUseCase_Totals(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_usecase.NewMockArqueoRepository(ctrl)
	repo.EXPECT().ArqueosByDate(gomock.Any(), "2025-05-01").Return([]domain.Arqueo{
		{ID: 1, CountedTotal: money("100.50"), SystemTotal: money("100"), Discrepancy: money("0.50"), Status: domain.ArqueoSurplus},
		{ID: 2, CountedTotal: money("80"), SystemTotal: money("90"), Discrepancy: money("-10"), Status: domain.ArqueoShortfall},
	}, nil)

	got, err := usecase.NewHistoryUseCase(repo).ByDate(context.Background(), "2025-05-01")
	require.NoError(t, err)

	assertMoney(t, "180.50", got.Summary.TotalCounted, "counted")
	assertMoney(t, "190", got.Summary.TotalSystem, "system")
	assertMoney(t, "-9.50", got.Summary.TotalDiscrepancy, "discrepancy")
}
