package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handler "taqueando-console/internal/handlers"
	"taqueando-console/internal/session"
)

// NewEngine builds the console server with CORS for the given origins.
func NewEngine(h *handler.ConsoleHandler, sess *session.Session, logger *logrus.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRoutes(r, h, sess)
	return r
}

func RegisterRoutes(r *gin.Engine, h *handler.ConsoleHandler, sess *session.Session) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/menu", h.Menu)

	cash := api.Group("/caja", handler.RequireAccess(sess, "cash"))
	cash.GET("", h.GetCashDesk)
	cash.POST("/refresh", h.RefreshCashDesk)
	cash.PUT("/filtro", h.SetFilter)

	arqueo := api.Group("/arqueo", handler.RequireAccess(sess, "cash"))
	arqueo.PUT("/conteo/:denominacion", h.SetCount)
	arqueo.PUT("/caja-chica", h.SetPettyCash)
	arqueo.PUT("/observaciones", h.SetNotes)
	arqueo.POST("", h.SubmitArqueo)

	arqueos := api.Group("/arqueos", handler.RequireAccess(sess, "arqueos"))
	arqueos.GET("", h.ListArqueos)
	arqueos.GET("/export", h.ExportArqueos)

	api.GET("/pedidos/cancelados", handler.RequireAccess(sess, "cancelled"), h.CancelledOrders)
	api.GET("/pedidos", handler.RequireAccess(sess, "history"), h.ListOrders)
	api.POST("/pedidos", handler.RequireAccess(sess, "orders"), h.CreateOrder)

	api.GET("/estadisticas", handler.RequireAccess(sess, "stats"), h.Statistics)
	api.GET("/logs", handler.RequireAccess(sess, "logs"), h.Logs)
}
