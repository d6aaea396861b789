package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taqueando-console/internal/config"
	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
	"taqueando-console/internal/gateway"
	handler "taqueando-console/internal/handlers"
	"taqueando-console/internal/report"
	"taqueando-console/internal/routes"
	"taqueando-console/internal/session"
	"taqueando-console/internal/usecase"
)

const usage = `usage: console <command> [flags]

commands:
  login      authenticate and store the session
  logout     forget the stored session
  password   change the password of the current user
  summary    resumen de caja of today or of -date
  arqueo     count the register and save an arqueo
  history    arqueos of -date
  cancelled  today's cancelled orders
  orders     paginated order history, or one order with -id
  stats      statistics dashboard (admin)
  logs       activity log
  export     write the arqueos of -date to an XLSX file
  menu       navigation for the current role
  serve      run the console server
`

type app struct {
	cfg       config.Config
	logger    *logrus.Logger
	loc       *time.Location
	session   *session.Session
	client    *gateway.Client
	notices   *usecase.NoticeBoard
	desk      *usecase.CashDesk
	history   *usecase.HistoryUseCase
	cancelled *usecase.CancelledOrdersUseCase
	out       io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := config.ConfigureLogger(cfg.LogLevel, os.Stderr)

	a := newApp(cfg, logger)
	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		logger.WithError(err).WithField("command", os.Args[1]).Error("command failed")
		fmt.Fprintln(os.Stderr, "Error:", gateway.Message(err))
		os.Exit(1)
	}
}

// newApp wires the session, the REST gateway and the use cases.
func newApp(cfg config.Config, logger *logrus.Logger) *app {
	sess := session.New()
	if cfg.Token != "" {
		sess.SetToken(cfg.Token)
	} else if err := sess.Load(cfg.SessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithError(err).Warn("could not load session")
	}

	loc := cfg.Location()
	client := gateway.NewClient(gateway.Config{BaseURL: cfg.APIURL, Timeout: cfg.HTTPTimeout}, sess, logger)
	notices := usecase.NewNoticeBoard(0)
	notifier := usecase.Notifiers{notices, usecase.LogNotifier{Logger: logger}}

	return &app{
		cfg:       cfg,
		logger:    logger,
		loc:       loc,
		session:   sess,
		client:    client,
		notices:   notices,
		desk:      usecase.NewCashDesk(client, client, notifier, loc, usecase.WithLogger(logger)),
		history:   usecase.NewHistoryUseCase(client),
		cancelled: usecase.NewCancelledOrdersUseCase(client, loc, logger),
		out:       os.Stdout,
	}
}

func (a *app) run(command string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout()
	case "password":
		return a.password(ctx, args)
	case "summary":
		return a.summary(ctx, args)
	case "arqueo":
		return a.arqueo(ctx, args)
	case "history":
		return a.historyCmd(ctx, args)
	case "cancelled":
		return a.cancelledCmd(ctx)
	case "orders":
		return a.orders(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "logs":
		return a.logs(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "menu":
		return a.print(gin.H{"rol": a.session.Role(), "menu": session.Menu(a.session.Role())})
	case "serve":
		return a.serve(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", os.Getenv("TAQUEANDO_PASSWORD"), "account password (defaults to TAQUEANDO_PASSWORD)")
	captcha := fs.String("captcha", "", "captcha token, when the backend asks for one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}

	if err := a.client.Login(ctx, *email, *password, *captcha); err != nil {
		return err
	}
	user, err := a.client.VerifyToken(ctx)
	if err != nil {
		return err
	}
	if err := a.session.Save(a.cfg.SessionFile); err != nil {
		return err
	}
	return a.print(gin.H{"usuario": user, "menu": session.Menu(user.Role)})
}

func (a *app) logout() error {
	a.session.Clear()
	if err := os.Remove(a.cfg.SessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not remove session file: %w", err)
	}
	return a.print(gin.H{"message": "sesión cerrada"})
}

func (a *app) password(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("password", flag.ContinueOnError)
	current := fs.String("current", "", "current password (required)")
	next := fs.String("new", "", "new password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *current == "" || *next == "" {
		return errors.New("-current and -new are required")
	}

	message, err := a.client.UpdatePassword(ctx, *current, *next)
	if err != nil {
		return err
	}
	return a.print(gin.H{"message": message})
}

func (a *app) summary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	date := fs.String("date", "", "day to summarise (YYYY-MM-DD), today when empty")
	onlyCancelled := fs.Bool("cancelled", false, "total the payments of cancelled orders instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *date != "" {
		if _, err := format.ParseISODate(*date); err != nil {
			return err
		}
		cash, err := a.client.CashSummaryByDate(ctx, *date)
		if err != nil {
			return err
		}
		return a.print(cash.ServerTotals(*date))
	}

	if err := a.desk.Refresh(ctx); err != nil {
		return err
	}
	return a.print(a.desk.SetOnlyCancelled(*onlyCancelled))
}

func (a *app) arqueo(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("arqueo", flag.ContinueOnError)
	counts := fs.String("count", "", "denomination=count pairs, e.g. 100=2,20=1")
	petty := fs.String("petty", "", "petty cash float, defaults to the last arqueo's")
	notes := fs.String("notes", "", "observaciones")
	dryRun := fs.Bool("dry-run", false, "show the result without saving it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.desk.Refresh(ctx); err != nil {
		return err
	}

	parsed, err := parseCounts(*counts)
	if err != nil {
		return err
	}
	for den, raw := range parsed {
		if _, err := a.desk.InputCount(den, raw); err != nil {
			return err
		}
	}
	if *petty != "" {
		if _, err := a.desk.SetPettyCash(*petty); err != nil {
			return err
		}
	}
	view := a.desk.SetNotes(*notes)

	if *dryRun {
		return a.print(view)
	}

	created, err := a.desk.Submit(ctx)
	if err != nil {
		return err
	}
	return a.print(gin.H{"arqueo": created, "avisos": a.notices.Drain()})
}

// parseCounts reads "100=2,20=1" into denomination -> raw count.
func parseCounts(s string) (map[int]string, error) {
	out := make(map[int]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		den, count, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCount, pair)
		}
		value, err := strconv.Atoi(strings.TrimSpace(den))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDenomination, den)
		}
		out[value] = count
	}
	return out, nil
}

func (a *app) historyCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	date := fs.String("date", format.ISODate(time.Now(), a.loc), "day (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hist, err := a.history.ByDate(ctx, *date)
	if err != nil {
		return err
	}
	return a.print(hist)
}

func (a *app) cancelledCmd(ctx context.Context) error {
	orders, err := a.cancelled.Today(ctx)
	if err != nil {
		return err
	}
	return a.print(gin.H{"data": orders, "total": len(orders)})
}

func (a *app) orders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "orders per page")
	from := fs.String("from", "", "first day (YYYY-MM-DD)")
	to := fs.String("to", "", "last day (YYYY-MM-DD)")
	status := fs.String("status", "", "pendiente, completado, cancelado or pagado")
	user := fs.String("user", "", "serving user")
	id := fs.Int("id", 0, "show only this order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id != 0 {
		order, err := a.client.OrderByID(ctx, *id)
		if err != nil {
			return err
		}
		return a.print(order)
	}

	filter := domain.OrderFilter{
		Page:   *page,
		Limit:  *limit,
		From:   *from,
		To:     *to,
		Status: domain.OrderStatus(*status),
		User:   *user,
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	result, err := a.client.ListOrders(ctx, filter)
	if err != nil {
		return err
	}
	return a.print(result)
}

func (a *app) stats(ctx context.Context) error {
	if !session.CanAccess(a.session.Role(), "stats") {
		return gateway.ErrForbidden
	}
	stats, err := a.client.Statistics(ctx)
	if err != nil {
		return err
	}
	return a.print(stats)
}

func (a *app) logs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	userID := fs.Int("user", 0, "only the entries of this user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		entries []domain.LogEntry
		err     error
	)
	switch {
	case *userID != 0:
		entries, err = a.client.LogsByUser(ctx, *userID)
	case a.session.Role() == domain.RoleAdmin:
		entries, err = a.client.Logs(ctx)
	default:
		entries, err = a.client.LogsByUser(ctx, a.session.Claims().UserID)
	}
	if err != nil {
		return err
	}
	return a.print(gin.H{"logs": entries})
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	date := fs.String("date", format.ISODate(time.Now(), a.loc), "day (YYYY-MM-DD)")
	out := fs.String("out", "", "output file, arqueos_<date>.xlsx when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		*out = report.FileName(*date)
	}

	hist, err := a.history.ByDate(ctx, *date)
	if err != nil {
		return err
	}

	var summary *domain.Summary
	if cash, err := a.client.CashSummaryByDate(ctx, *date); err != nil {
		a.logger.WithError(err).Warn("exporting without cash summary")
	} else {
		totals := cash.ServerTotals(*date)
		summary = &totals
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", *out, err)
	}
	defer f.Close()

	if err := report.NewExporter(a.loc).Write(f, hist, summary); err != nil {
		return err
	}
	return a.print(gin.H{"archivo": *out, "arqueos": hist.Summary.TotalArqueos})
}

func (a *app) serve(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	h := handler.NewConsoleHandler(handler.Deps{
		Desk:      a.desk,
		History:   a.history,
		Cancelled: a.cancelled,
		Backend:   a.client,
		Session:   a.session,
		Exporter:  report.NewExporter(a.loc),
		Notices:   a.notices,
		Logger:    a.logger,
	})
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           routes.NewEngine(h, a.session, a.logger, a.cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := a.desk.Refresh(ctx); err != nil {
		a.logger.WithError(err).Warn("initial cash desk refresh failed")
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("addr", a.cfg.Addr).Info("console server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.desk.Detach()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *app) print(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON output: %w", err)
	}
	fmt.Fprintln(a.out, string(output))
	return nil
}
