package usecase_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/usecase"
	mock_usecase "taqueando-console/internal/usecase/mocks"
)

// 16:00 on 2025-05-01 in La Paz
var deskNow = time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

type deskFixture struct {
	cash     *mock_usecase.MockCashRepository
	arqueos  *mock_usecase.MockArqueoRepository
	notifier *mock_usecase.MockNotifier
	desk     *usecase.CashDesk
}

func newDeskFixture(t *testing.T) *deskFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &deskFixture{
		cash:     mock_usecase.NewMockCashRepository(ctrl),
		arqueos:  mock_usecase.NewMockArqueoRepository(ctrl),
		notifier: mock_usecase.NewMockNotifier(ctrl),
	}
	f.desk = usecase.NewCashDesk(f.cash, f.arqueos, f.notifier, laPaz(t),
		usecase.WithClock(func() time.Time { return deskNow }),
		usecase.WithLogger(logger),
	)
	return f
}

func dayOrders() []domain.Order {
	at := time.Date(2025, 5, 1, 14, 0, 0, 0, time.UTC)
	return []domain.Order{
		{ID: 1, Name: "Mesa 1", Date: at, Status: domain.OrderStatusPaid},
		{ID: 2, Name: "Mesa 2", Date: at, Status: domain.OrderStatusCancelled},
		{ID: 3, Name: "Ayer", Date: at.AddDate(0, 0, -1), Status: domain.OrderStatusPaid},
	}
}

func daySummary() *domain.CashSummary {
	return &domain.CashSummary{
		Date:      "2025-05-01",
		TotalDay:  money("999"),
		TotalCash: money("999"),
		Payments: []domain.Payment{
			{ID: 1, OrderID: 1, Amount: money("150"), Method: domain.PaymentMethodCash},
			{ID: 2, OrderID: 1, Amount: money("50"), Method: "Efectivo"},
			{ID: 3, OrderID: 1, Amount: money("30"), Method: domain.PaymentMethodQR},
			{ID: 4, OrderID: 2, Amount: money("40"), Method: domain.PaymentMethodCash},
			{ID: 5, OrderID: 3, Amount: money("70"), Method: domain.PaymentMethodCash},
		},
	}
}

func (f *deskFixture) expectLoad(summary *domain.CashSummary, last *domain.Arqueo) {
	f.cash.EXPECT().CashSummary(gomock.Any()).Return(summary, nil)
	f.cash.EXPECT().OrdersOfDay(gomock.Any()).Return(dayOrders(), nil)
	f.arqueos.EXPECT().LastArqueo(gomock.Any()).Return(last, nil)
}

func TestCashDesk_Refresh(t *testing.T) {
	t.Run("aggregates raw payments of the day", func(t *testing.T) {
		f := newDeskFixture(t)
		f.expectLoad(daySummary(), &domain.Arqueo{ID: 7, PettyCash: money("20"), HasPettyCash: true})

		require.NoError(t, f.desk.Refresh(context.Background()))

		v := f.desk.View()
		assert.Equal(t, "2025-05-01", v.Summary.Date)
		assertMoney(t, "230", v.Summary.TotalForPeriod, "totalDia")
		assertMoney(t, "200", v.Summary.TotalCash, "totalEfectivo")
		assertMoney(t, "30", v.Summary.TotalQR, "totalQR")
		assertMoney(t, "200", v.SystemTotal, "system total")
		assertMoney(t, "20", v.PettyCash, "petty cash")
		assertMoney(t, "-220", v.Discrepancy, "discrepancy")
		assert.Equal(t, domain.ArqueoShortfall, v.Status)
		assert.Equal(t, 5, v.Payments)
		assert.False(t, v.Loading)
		assert.Empty(t, v.LastError)
		assert.Equal(t, deskNow, v.UpdatedAt)
	})

	t.Run("falls back to server totals without raw payments", func(t *testing.T) {
		f := newDeskFixture(t)
		f.expectLoad(&domain.CashSummary{
			TotalDay:    money("120"),
			TotalCash:   money("80"),
			TotalCard:   money("40"),
			TotalQR:     money("0"),
			TotalOnline: money("0"),
		}, nil)

		require.NoError(t, f.desk.Refresh(context.Background()))

		v := f.desk.View()
		assertMoney(t, "120", v.Summary.TotalForPeriod, "totalDia")
		assertMoney(t, "80", v.Summary.TotalCash, "totalEfectivo")
		assertMoney(t, "40", v.Summary.TotalCard, "totalTarjeta")
		assert.Equal(t, 0, v.Payments)
	})

	t.Run("no previous arqueo resets petty cash", func(t *testing.T) {
		f := newDeskFixture(t)
		_, err := f.desk.SetPettyCash("15")
		require.NoError(t, err)
		f.expectLoad(daySummary(), nil)

		require.NoError(t, f.desk.Refresh(context.Background()))

		assertMoney(t, "0", f.desk.View().PettyCash, "petty cash")
	})

	t.Run("last arqueo failure keeps petty cash and applies totals", func(t *testing.T) {
		f := newDeskFixture(t)
		_, err := f.desk.SetPettyCash("15")
		require.NoError(t, err)

		f.cash.EXPECT().CashSummary(gomock.Any()).Return(daySummary(), nil)
		f.cash.EXPECT().OrdersOfDay(gomock.Any()).Return(dayOrders(), nil)
		f.arqueos.EXPECT().LastArqueo(gomock.Any()).Return(nil, errors.New("db down"))
		f.notifier.EXPECT().Error("Error al obtener último arqueo: db down")

		require.NoError(t, f.desk.Refresh(context.Background()))

		v := f.desk.View()
		assertMoney(t, "15", v.PettyCash, "petty cash")
		assertMoney(t, "200", v.Summary.TotalCash, "totalEfectivo")
		assert.Equal(t, "Error al obtener último arqueo: db down", v.LastError)
	})

	t.Run("last arqueo without petty cash keeps the float", func(t *testing.T) {
		f := newDeskFixture(t)
		_, err := f.desk.SetPettyCash("15")
		require.NoError(t, err)
		f.expectLoad(daySummary(), &domain.Arqueo{ID: 8})

		require.NoError(t, f.desk.Refresh(context.Background()))

		v := f.desk.View()
		assertMoney(t, "15", v.PettyCash, "petty cash")
		assert.Empty(t, v.LastError)
	})

	t.Run("a failed fetch applies nothing", func(t *testing.T) {
		f := newDeskFixture(t)
		f.expectLoad(daySummary(), &domain.Arqueo{PettyCash: money("20"), HasPettyCash: true})
		require.NoError(t, f.desk.Refresh(context.Background()))
		before := f.desk.View()

		f.cash.EXPECT().CashSummary(gomock.Any()).Return(&domain.CashSummary{TotalCash: money("1")}, nil)
		f.cash.EXPECT().OrdersOfDay(gomock.Any()).Return(nil, errors.New("timeout"))
		f.notifier.EXPECT().Error("Error al cargar los datos: timeout")

		err := f.desk.Refresh(context.Background())
		require.Error(t, err)

		after := f.desk.View()
		assert.True(t, before.Summary.TotalCash.Equal(after.Summary.TotalCash))
		assert.True(t, before.PettyCash.Equal(after.PettyCash))
		assert.Equal(t, before.Payments, after.Payments)
		assert.Equal(t, "Error al cargar los datos: timeout", after.LastError)
	})
}

func TestCashDesk_RefreshInFlight(t *testing.T) {
	f := newDeskFixture(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.cash.EXPECT().CashSummary(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.CashSummary, error) {
		close(started)
		<-release
		return daySummary(), nil
	})
	f.cash.EXPECT().OrdersOfDay(gomock.Any()).Return(dayOrders(), nil)
	f.arqueos.EXPECT().LastArqueo(gomock.Any()).Return(nil, nil)

	done := make(chan error, 1)
	go func() { done <- f.desk.Refresh(context.Background()) }()

	<-started
	assert.True(t, f.desk.View().Loading)
	assert.ErrorIs(t, f.desk.Refresh(context.Background()), usecase.ErrRefreshInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.desk.View().Loading)
}

func TestCashDesk_DetachDiscardsResults(t *testing.T) {
	f := newDeskFixture(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.cash.EXPECT().CashSummary(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.CashSummary, error) {
		close(started)
		<-release
		return daySummary(), nil
	})
	f.cash.EXPECT().OrdersOfDay(gomock.Any()).Return(dayOrders(), nil)

	done := make(chan error, 1)
	go func() { done <- f.desk.Refresh(context.Background()) }()

	<-started
	f.desk.Detach()
	close(release)

	assert.ErrorIs(t, <-done, usecase.ErrStaleRefresh)
	v := f.desk.View()
	assert.True(t, v.Summary.TotalCash.IsZero())
	assert.Equal(t, 0, v.Payments)
}

func TestCashDesk_SetOnlyCancelled(t *testing.T) {
	f := newDeskFixture(t)
	f.expectLoad(daySummary(), nil)
	require.NoError(t, f.desk.Refresh(context.Background()))

	v := f.desk.SetOnlyCancelled(true)
	assert.True(t, v.OnlyCancelled)
	assertMoney(t, "40", v.Summary.TotalCash, "cancelled cash")
	assertMoney(t, "40", v.Summary.TotalForPeriod, "cancelled total")

	v = f.desk.SetOnlyCancelled(false)
	assertMoney(t, "200", v.Summary.TotalCash, "active cash")
}

func TestCashDesk_Counter(t *testing.T) {
	f := newDeskFixture(t)

	v, err := f.desk.InputCount(100, "2")
	require.NoError(t, err)
	assertMoney(t, "200", v.CountedTotal, "counted")

	v, err = f.desk.InputCount(100, "-3")
	assert.ErrorIs(t, err, domain.ErrInvalidCount)
	assertMoney(t, "200", v.CountedTotal, "counted after rejected input")

	_, err = f.desk.SetPettyCash("abc")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	v = f.desk.SetNotes("cierre")
	assert.Equal(t, "cierre", v.Notes)
	assertMoney(t, "200", v.Discrepancy, "discrepancy against empty summary")
	assert.Equal(t, domain.ArqueoSurplus, v.Status)
}

func TestCashDesk_Submit(t *testing.T) {
	t.Run("persists the arqueo, resets the count and refreshes", func(t *testing.T) {
		f := newDeskFixture(t)
		f.expectLoad(daySummary(), &domain.Arqueo{PettyCash: money("20"), HasPettyCash: true})
		require.NoError(t, f.desk.Refresh(context.Background()))

		_, err := f.desk.InputCount(100, "2")
		require.NoError(t, err)
		_, err = f.desk.InputCount(20, "1")
		require.NoError(t, err)
		f.desk.SetNotes("sin novedad")

		var sent domain.ArqueoInput
		created := &domain.Arqueo{ID: 11, PettyCash: money("20"), HasPettyCash: true, Status: domain.ArqueoBalanced}
		f.arqueos.EXPECT().CreateArqueo(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, in domain.ArqueoInput) (*domain.Arqueo, error) {
				sent = in
				return created, nil
			})
		f.notifier.EXPECT().Success("Arqueo guardado exitosamente")
		f.expectLoad(daySummary(), created)

		got, err := f.desk.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, created, got)

		assert.Equal(t, 2, sent.Counts[100])
		assert.Equal(t, 1, sent.Counts[20])
		assertMoney(t, "220", sent.CountedTotal, "totalContado")
		assertMoney(t, "20", sent.PettyCash, "cajaChica")
		assertMoney(t, "200", sent.SystemTotal, "totalSistema")
		assertMoney(t, "0", sent.Discrepancy, "diferencia")
		assert.Equal(t, domain.ArqueoBalanced, sent.Status)
		assert.Equal(t, "sin novedad", sent.Notes)

		v := f.desk.View()
		assertMoney(t, "0", v.CountedTotal, "counted after reset")
		assert.Empty(t, v.Notes)
		assertMoney(t, "20", v.PettyCash, "petty cash")
	})

	t.Run("failure keeps the count", func(t *testing.T) {
		f := newDeskFixture(t)
		_, err := f.desk.InputCount(50, "3")
		require.NoError(t, err)
		f.desk.SetNotes("revisar")

		f.arqueos.EXPECT().CreateArqueo(gomock.Any(), gomock.Any()).Return(nil, errors.New("bad gateway"))
		f.notifier.EXPECT().Error("Error al guardar el arqueo")

		_, err = f.desk.Submit(context.Background())
		require.Error(t, err)

		v := f.desk.View()
		assertMoney(t, "150", v.CountedTotal, "counted")
		assert.Equal(t, "revisar", v.Notes)
		assert.Equal(t, 3, v.Counts[50])
	})
	t.Run("edits made while posting are kept", func(t *testing.T) {
		f := newDeskFixture(t)
		_, err := f.desk.InputCount(100, "2")
		require.NoError(t, err)
		f.desk.SetNotes("primer conteo")

		var sent domain.ArqueoInput
		f.arqueos.EXPECT().CreateArqueo(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, in domain.ArqueoInput) (*domain.Arqueo, error) {
				sent = in
				_, err := f.desk.InputCount(50, "3")
				require.NoError(t, err)
				f.desk.SetNotes("segundo conteo")
				return &domain.Arqueo{ID: 12}, nil
			})
		f.notifier.EXPECT().Success("Arqueo guardado exitosamente")
		f.expectLoad(daySummary(), nil)

		_, err = f.desk.Submit(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, sent.Counts[100])
		assert.Equal(t, 0, sent.Counts[50])
		assert.Equal(t, "primer conteo", sent.Notes)

		v := f.desk.View()
		assert.Equal(t, 0, v.Counts[100])
		assert.Equal(t, 3, v.Counts[50])
		assert.Equal(t, "segundo conteo", v.Notes)
	})

	t.Run("refresh is queued behind a running one", func(t *testing.T) {
		f := newDeskFixture(t)
		_, err := f.desk.InputCount(100, "2")
		require.NoError(t, err)

		started := make(chan struct{})
		release := make(chan struct{})
		gomock.InOrder(
			f.cash.EXPECT().CashSummary(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.CashSummary, error) {
				close(started)
				<-release
				return &domain.CashSummary{TotalCash: money("1")}, nil
			}),
			f.cash.EXPECT().CashSummary(gomock.Any()).Return(daySummary(), nil),
		)
		f.cash.EXPECT().OrdersOfDay(gomock.Any()).Return(dayOrders(), nil).Times(2)
		f.arqueos.EXPECT().LastArqueo(gomock.Any()).Return(nil, nil).Times(2)

		done := make(chan error, 1)
		go func() { done <- f.desk.Refresh(context.Background()) }()
		<-started

		f.arqueos.EXPECT().CreateArqueo(gomock.Any(), gomock.Any()).Return(&domain.Arqueo{ID: 13}, nil)
		f.notifier.EXPECT().Success("Arqueo guardado exitosamente")
		_, err = f.desk.Submit(context.Background())
		require.NoError(t, err)

		close(release)
		require.NoError(t, <-done)
		assertMoney(t, "200", f.desk.View().Summary.TotalCash, "totals after queued refresh")
	})
}
