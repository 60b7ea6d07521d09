package handlers

import (
	"github.com/gin-gonic/gin"

	"shutterdesk-be/internal/logger"
	"shutterdesk-be/internal/middleware"
)

// NewRouter wires every route. Only login is public; everything else sits
// behind the access-token gate, websockets included.
func NewRouter(h *Handler, ws *WSHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(logger.Requests())
	r.Use(middleware.RateLimit())

	r.GET("/healthz", h.Health)

	api := r.Group("/api/v1")

	api.POST("/auth/login", h.Login)

	private := api.Group("")
	private.Use(middleware.RequireAuth())
	{
		private.POST("/orders", h.CreateOrder)
		private.GET("/orders", h.ListOrders)
		private.GET("/orders/months", h.OrderMonths)
		private.GET("/orders/:id", h.GetOrder)
		private.PUT("/orders/:id", h.UpdateOrder)
		private.DELETE("/orders/:id", h.DeleteOrder)
		private.POST("/orders/:id/payments", h.AddPayment)
		private.POST("/orders/:id/complete", h.RequestCompletion)
		private.POST("/orders/:id/complete/confirm", h.ConfirmCompletion)
		private.POST("/orders/:id/cancel", h.CancelOrder)
		private.GET("/customers/suggest", h.SuggestCustomers)

		private.POST("/expenses", h.CreateExpense)
		private.GET("/expenses", h.ListExpenses)
		private.PUT("/expenses/:id", h.UpdateExpense)
		private.DELETE("/expenses/:id", h.DeleteExpense)

		private.GET("/reports/monthly", h.MonthlySummary)
		private.GET("/reports/monthly/pdf", h.MonthlySummaryPDF)
		private.GET("/reports/headline", h.HeadlineSummary)
	}

	feeds := r.Group("/ws")
	feeds.Use(middleware.RequireAuth())
	{
		feeds.GET("/orders", ws.Orders)
		feeds.GET("/expenses", ws.Expenses)
	}

	return r
}
