package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"taqueando-console/internal/config"
	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
)

var (
	// ErrRefreshInFlight is returned when Refresh is called while another
	// refresh is running. The call is dropped, not queued.
	ErrRefreshInFlight = errors.New("refresh already in progress")
	// ErrSubmitInFlight is returned when Submit is called while another
	// submission is running.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrStaleRefresh is returned when the results of a refresh arrived after
	// the cash desk was detached and were discarded.
	ErrStaleRefresh = errors.New("refresh results discarded")
)

const (
	msgLoadFailed    = "Error al cargar los datos"
	msgLastArqueo    = "Error al obtener último arqueo"
	msgSaveFailed    = "Error al guardar el arqueo"
	msgSaveSucceeded = "Arqueo guardado exitosamente"
)

// View is a snapshot of the cash desk.
type View struct {
	Summary       domain.Summary           `json:"resumen"`
	OnlyCancelled bool                     `json:"soloCancelados"`
	Counts        domain.DenominationCount `json:"conteo"`
	CountedTotal  decimal.Decimal          `json:"totalContado"`
	PettyCash     decimal.Decimal          `json:"cajaChica"`
	SystemTotal   decimal.Decimal          `json:"totalSistema"`
	Discrepancy   decimal.Decimal          `json:"diferencia"`
	Status        domain.ArqueoStatus      `json:"estado"`
	StatusColor   string                   `json:"colorEstado"`
	Notes         string                   `json:"observaciones"`
	Payments      int                      `json:"pagos"`
	Loading       bool                     `json:"cargando"`
	LastError     string                   `json:"error,omitempty"`
	UpdatedAt     time.Time                `json:"actualizado"`
}

// CashDesk owns the state of the cash summary and the arqueo in progress:
// the day's payments and orders, the computed summary and the counter.
type CashDesk struct {
	cash     CashRepository
	arqueos  ArqueoRepository
	notifier Notifier
	logger   *logrus.Logger
	loc      *time.Location
	now      func() time.Time

	refreshing     atomic.Bool
	refreshPending atomic.Bool
	submitting     atomic.Bool
	generation     atomic.Uint64

	mu            sync.Mutex
	counter       *Counter
	onlyCancelled bool
	hasPayments   bool
	payments      []domain.Payment
	orders        []domain.Order
	summary       domain.Summary
	lastError     string
	updatedAt     time.Time
}

type Option func(*CashDesk)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *CashDesk) { d.now = now }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(d *CashDesk) { d.logger = logger }
}

// NewCashDesk creates a cash desk showing active (non-cancelled) orders, so
// the system total starts as the cash of the orders still standing. Note the
// browser console opened on cancelled orders; call SetOnlyCancelled(true) for
// that view.
func NewCashDesk(cash CashRepository, arqueos ArqueoRepository, notifier Notifier, loc *time.Location, opts ...Option) *CashDesk {
	d := &CashDesk{
		cash:     cash,
		arqueos:  arqueos,
		notifier: notifier,
		logger:   config.GetLogger(),
		loc:      loc,
		now:      time.Now,
		counter:  NewCounter(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.summary = ComputeSummary(nil, nil, d.onlyCancelled, d.now(), d.loc)
	return d
}

// Refresh reloads the day's summary and orders, then the petty-cash float of
// the last arqueo. Summary and orders are fetched concurrently and applied
// only when both arrive; on failure the previous state stays in place.
// A refresh requested by Submit while another one was running is run again
// once that one finishes.
func (d *CashDesk) Refresh(ctx context.Context) error {
	if !d.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	d.refreshPending.Store(false)
	err := d.refresh(ctx)
	d.refreshing.Store(false)

	if d.refreshPending.CompareAndSwap(true, false) && ctx.Err() == nil {
		if rerr := d.Refresh(ctx); rerr != nil && !errors.Is(rerr, ErrRefreshInFlight) {
			d.logger.WithError(rerr).Warn("queued refresh failed")
		}
	}
	return err
}

func (d *CashDesk) refresh(ctx context.Context) error {
	gen := d.generation.Load()

	var (
		summary *domain.CashSummary
		orders  []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := d.cash.CashSummary(gctx)
		if err != nil {
			return err
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		o, err := d.cash.OrdersOfDay(gctx)
		if err != nil {
			return err
		}
		orders = o
		return nil
	})

	if err := g.Wait(); err != nil {
		config.LogError(d.logger, "usecase", "Refresh", "fetching cash summary and orders", nil, err)
		if !d.current(gen) {
			return ErrStaleRefresh
		}
		msg := msgLoadFailed + ": " + userMessage(err)
		d.mu.Lock()
		d.lastError = msg
		d.mu.Unlock()
		d.notifier.Error(msg)
		return fmt.Errorf("could not refresh cash desk: %w", err)
	}

	if !d.current(gen) {
		return ErrStaleRefresh
	}

	last, lastErr := d.arqueos.LastArqueo(ctx)
	if lastErr != nil {
		config.LogError(d.logger, "usecase", "Refresh", "fetching last arqueo", nil, lastErr)
	}

	if !d.apply(gen, summary, orders, last, lastErr) {
		return ErrStaleRefresh
	}
	if lastErr != nil {
		d.notifier.Error(msgLastArqueo + ": " + userMessage(lastErr))
	}
	return nil
}

// apply installs the results of a refresh unless the cash desk was detached
// after the refresh started.
func (d *CashDesk) apply(gen uint64, summary *domain.CashSummary, orders []domain.Order, last *domain.Arqueo, lastErr error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.current(gen) {
		return false
	}

	now := d.now()
	d.orders = OrdersOfBusinessDay(orders, now, d.loc)
	if summary.HasPayments() {
		d.hasPayments = true
		d.payments = summary.Payments
		d.summary = ComputeSummary(d.payments, d.orders, d.onlyCancelled, now, d.loc)
	} else {
		d.hasPayments = false
		d.payments = nil
		d.summary = summary.ServerTotals(format.ISODate(now, d.loc))
	}

	if !d.summary.TotalUnclassified.IsZero() {
		d.logger.WithField("amount", d.summary.TotalUnclassified.String()).
			Warn("payments with an unknown method counted in the day total only")
	}

	switch {
	case lastErr != nil:
		d.lastError = msgLastArqueo + ": " + userMessage(lastErr)
	case last == nil:
		if err := d.counter.SetPettyCashAmount(decimal.Zero); err != nil {
			d.logger.WithError(err).Warn("could not clear petty cash")
		}
		d.lastError = ""
	case !last.HasPettyCash:
		d.logger.WithField("arqueo", last.ID).Info("last arqueo has no petty cash, keeping current float")
		d.lastError = ""
	default:
		if err := d.counter.SetPettyCashAmount(last.PettyCash); err != nil {
			d.logger.WithError(err).Warn("ignoring petty cash of last arqueo")
		}
		d.lastError = ""
	}

	d.updatedAt = now
	return true
}

func (d *CashDesk) current(gen uint64) bool {
	return d.generation.Load() == gen
}

// Detach marks every refresh in flight as stale; their results are dropped.
func (d *CashDesk) Detach() {
	d.generation.Add(1)
}

// SetOnlyCancelled switches between cancelled and active orders and
// recomputes the summary from the data already loaded.
func (d *CashDesk) SetOnlyCancelled(onlyCancelled bool) View {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.onlyCancelled = onlyCancelled
	if d.hasPayments {
		d.summary = ComputeSummary(d.payments, d.orders, d.onlyCancelled, d.now(), d.loc)
	}
	return d.view()
}

// InputCount sets the count of one denomination from user input.
func (d *CashDesk) InputCount(denomination int, raw string) (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.counter.Input(denomination, raw); err != nil {
		return d.view(), err
	}
	return d.view(), nil
}

// SetPettyCash sets the petty-cash float from user input.
func (d *CashDesk) SetPettyCash(raw string) (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.counter.SetPettyCash(raw); err != nil {
		return d.view(), err
	}
	return d.view(), nil
}

func (d *CashDesk) SetNotes(notes string) View {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.counter.SetNotes(notes)
	return d.view()
}

// Now is the cash desk's clock.
func (d *CashDesk) Now() time.Time {
	return d.now()
}

// Location is the business time zone.
func (d *CashDesk) Location() *time.Location {
	return d.loc
}

func (d *CashDesk) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view()
}

func (d *CashDesk) view() View {
	system := d.summary.TotalCash
	discrepancy := d.counter.Discrepancy(system)
	status := ClassifyDiscrepancy(discrepancy)
	return View{
		Summary:       d.summary,
		OnlyCancelled: d.onlyCancelled,
		Counts:        d.counter.Counts(),
		CountedTotal:  d.counter.CountedTotal(),
		PettyCash:     d.counter.PettyCash(),
		SystemTotal:   system,
		Discrepancy:   discrepancy,
		Status:        status,
		StatusColor:   format.ArqueoColor(status),
		Notes:         d.counter.Notes(),
		Payments:      len(d.payments),
		Loading:       d.refreshing.Load(),
		LastError:     d.lastError,
		UpdatedAt:     d.updatedAt,
	}
}

// draft assembles the record to persist from the counter and the current
// cash total.
func (d *CashDesk) draft() domain.ArqueoInput {
	counted := d.counter.CountedTotal()
	system := d.summary.TotalCash
	discrepancy := ComputeDiscrepancy(counted, d.counter.PettyCash(), system)
	return domain.ArqueoInput{
		Counts:       d.counter.Counts(),
		PettyCash:    d.counter.PettyCash(),
		CountedTotal: counted,
		SystemTotal:  system,
		Discrepancy:  discrepancy,
		Notes:        d.counter.Notes(),
		Status:       ClassifyDiscrepancy(discrepancy),
	}
}

// Submit persists the arqueo in progress. On success the counter is reset
// and the data refreshed; on failure the counter is left as it was. There
// is no automatic retry.
func (d *CashDesk) Submit(ctx context.Context) (*domain.Arqueo, error) {
	if !d.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer d.submitting.Store(false)

	d.mu.Lock()
	in := d.draft()
	d.mu.Unlock()

	if err := ValidateArqueo(in); err != nil {
		d.notifier.Error(msgSaveFailed + ": " + err.Error())
		return nil, err
	}

	created, err := d.arqueos.CreateArqueo(ctx, in)
	if err != nil {
		config.LogError(d.logger, "usecase", "Submit", "posting arqueo", in, err)
		d.notifier.Error(msgSaveFailed)
		return nil, fmt.Errorf("could not submit arqueo: %w", err)
	}

	d.mu.Lock()
	d.counter.Reset(in.Counts, in.Notes)
	d.mu.Unlock()
	d.notifier.Success(msgSaveSucceeded)

	d.refreshPending.Store(true)
	err = d.Refresh(ctx)
	switch {
	case errors.Is(err, ErrRefreshInFlight):
		d.logger.Info("refresh after arqueo submission queued behind the running one")
	case err != nil:
		d.logger.WithError(err).Warn("refresh after arqueo submission failed")
	}
	return created, nil
}

// userMessage prefers the server's message over the transport error text.
func userMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}
