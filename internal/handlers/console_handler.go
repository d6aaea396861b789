package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taqueando-console/internal/config"
	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
	"taqueando-console/internal/gateway"
	"taqueando-console/internal/report"
	"taqueando-console/internal/session"
	"taqueando-console/internal/usecase"
)

// Backend is the part of the REST backend the console reads directly.
type Backend interface {
	ListOrders(ctx context.Context, f domain.OrderFilter) (*domain.OrderPage, error)
	CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error)
	CashSummaryByDate(ctx context.Context, date string) (*domain.CashSummary, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
	Logs(ctx context.Context) ([]domain.LogEntry, error)
	LogsByUser(ctx context.Context, userID int) ([]domain.LogEntry, error)
}

type ConsoleHandler struct {
	desk      *usecase.CashDesk
	history   *usecase.HistoryUseCase
	cancelled *usecase.CancelledOrdersUseCase
	backend   Backend
	session   *session.Session
	exporter  *report.Exporter
	notices   *usecase.NoticeBoard
	logger    *logrus.Logger
}

type Deps struct {
	Desk      *usecase.CashDesk
	History   *usecase.HistoryUseCase
	Cancelled *usecase.CancelledOrdersUseCase
	Backend   Backend
	Session   *session.Session
	Exporter  *report.Exporter
	Notices   *usecase.NoticeBoard
	Logger    *logrus.Logger
}

func NewConsoleHandler(d Deps) *ConsoleHandler {
	logger := d.Logger
	if logger == nil {
		logger = config.GetLogger()
	}
	notices := d.Notices
	if notices == nil {
		notices = usecase.NewNoticeBoard(0)
	}
	return &ConsoleHandler{
		desk:      d.Desk,
		history:   d.History,
		cancelled: d.Cancelled,
		backend:   d.Backend,
		session:   d.Session,
		exporter:  d.Exporter,
		notices:   notices,
		logger:    logger,
	}
}

func (h *ConsoleHandler) Menu(c *gin.Context) {
	role := h.session.Role()
	c.JSON(http.StatusOK, gin.H{"rol": role, "menu": session.Menu(role)})
}

func (h *ConsoleHandler) GetCashDesk(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"caja": h.desk.View(), "avisos": h.notices.Drain()})
}

func (h *ConsoleHandler) RefreshCashDesk(c *gin.Context) {
	if err := h.desk.Refresh(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"caja": h.desk.View(), "avisos": h.notices.Drain()})
}

func (h *ConsoleHandler) SetFilter(c *gin.Context) {
	var payload struct {
		OnlyCancelled bool `json:"soloCancelados"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caja": h.desk.SetOnlyCancelled(payload.OnlyCancelled)})
}

func (h *ConsoleHandler) SetCount(c *gin.Context) {
	denomination, err := strconv.Atoi(c.Param("denominacion"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid denomination"})
		return
	}

	var payload struct {
		Count string `json:"cantidad"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := h.desk.InputCount(denomination, payload.Count)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "caja": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caja": view})
}

func (h *ConsoleHandler) SetPettyCash(c *gin.Context) {
	var payload struct {
		PettyCash string `json:"cajaChica"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := h.desk.SetPettyCash(payload.PettyCash)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "caja": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caja": view})
}

func (h *ConsoleHandler) SetNotes(c *gin.Context) {
	var payload struct {
		Notes string `json:"observaciones" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caja": h.desk.SetNotes(payload.Notes)})
}

func (h *ConsoleHandler) SubmitArqueo(c *gin.Context) {
	created, err := h.desk.Submit(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Arqueo guardado exitosamente",
		"arqueo":  created,
		"caja":    h.desk.View(),
	})
}

func (h *ConsoleHandler) ListArqueos(c *gin.Context) {
	hist, err := h.history.ByDate(c.Request.Context(), h.dateParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hist)
}

func (h *ConsoleHandler) ExportArqueos(c *gin.Context) {
	ctx := c.Request.Context()
	date := h.dateParam(c)

	history, err := h.history.ByDate(ctx, date)
	if err != nil {
		h.fail(c, err)
		return
	}

	var summary *domain.Summary
	if cash, err := h.backend.CashSummaryByDate(ctx, date); err != nil {
		config.LogError(h.logger, "handler", "ExportArqueos", "fetching cash summary", date, err)
	} else {
		totals := cash.ServerTotals(date)
		summary = &totals
	}

	c.Header("Content-Type", report.ContentType)
	c.Header("Content-Disposition", "attachment; filename="+report.FileName(date))
	if err := h.exporter.Write(c.Writer, history, summary); err != nil {
		config.LogError(h.logger, "handler", "ExportArqueos", "writing workbook", date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write file"})
	}
}

func (h *ConsoleHandler) CancelledOrders(c *gin.Context) {
	orders, err := h.cancelled.Today(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "total": len(orders)})
}

func (h *ConsoleHandler) ListOrders(c *gin.Context) {
	filter := domain.OrderFilter{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		From:   c.Query("fechaInicio"),
		To:     c.Query("fechaFin"),
		Status: domain.OrderStatus(c.Query("estado")),
		User:   c.Query("usuario"),
	}
	if err := filter.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.backend.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ConsoleHandler) CreateOrder(c *gin.Context) {
	var payload domain.NewOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.UserID == 0 {
		payload.UserID = h.session.Claims().UserID
	}
	if err := usecase.ValidateNewOrder(payload); err != nil {
		h.fail(c, err)
		return
	}

	order, err := h.backend.CreateOrder(c.Request.Context(), payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "pedido creado", "pedido": order})
}

func (h *ConsoleHandler) Statistics(c *gin.Context) {
	stats, err := h.backend.Statistics(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Logs returns the whole activity log to admins and the caller's own entries
// to everyone else.
func (h *ConsoleHandler) Logs(c *gin.Context) {
	var (
		logs []domain.LogEntry
		err  error
	)
	if h.session.Role() == domain.RoleAdmin {
		logs, err = h.backend.Logs(c.Request.Context())
	} else {
		logs, err = h.backend.LogsByUser(c.Request.Context(), h.session.Claims().UserID)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *ConsoleHandler) dateParam(c *gin.Context) string {
	if date := c.Query("fecha"); date != "" {
		return date
	}
	return format.ISODate(h.desk.Now(), h.desk.Location())
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// fail maps err to a status code and writes it as {"error": ...}.
func (h *ConsoleHandler) fail(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownDenomination):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, session.ErrTokenExpired),
		errors.Is(err, gateway.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, gateway.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usecase.ErrRefreshInFlight),
		errors.Is(err, usecase.ErrSubmitInFlight),
		errors.Is(err, usecase.ErrStaleRefresh):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, gateway.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gateway.Message(err)})
	default:
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("backend request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": gateway.Message(err)})
	}
}
