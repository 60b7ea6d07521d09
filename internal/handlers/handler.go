// Package handlers is the HTTP edge of the app. It owns the widget-level
// validation the screens used to do (required fields, payment bounds, date
// parsing); the stores below it trust what it lets through.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shutterdesk-be/internal/expense"
	"shutterdesk-be/internal/logger"
	"shutterdesk-be/internal/metrics"
	"shutterdesk-be/internal/order"
	"shutterdesk-be/internal/user"
)

type Handler struct {
	orders   order.Service
	expenses expense.Service
	users    user.Service

	// writeFailures counts store writes surfaced to clients as errors; the
	// health endpoint exposes it. Failures are never retried here.
	writeFailures *metrics.Counter
}

func NewHandler(orders order.Service, expenses expense.Service, users user.Service) *Handler {
	return &Handler{
		orders:        orders,
		expenses:      expenses,
		users:         users,
		writeFailures: &metrics.Counter{},
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"writeFailures": h.writeFailures.Load(),
	})
}

// fail maps a service error onto a transient JSON response. The client is
// expected to keep working; nothing here is fatal to the process.
func (h *Handler) fail(c *gin.Context, err error) {
	var malformedOrder *order.MalformedRecordError
	var malformedExpense *expense.MalformedRecordError

	switch {
	case errors.As(err, &malformedOrder), errors.As(err, &malformedExpense):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNotFound), errors.Is(err, expense.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNotPending),
		errors.Is(err, order.ErrAlreadyCompleted),
		errors.Is(err, order.ErrNothingDue),
		errors.Is(err, order.ErrNoPendingConfirmation),
		errors.Is(err, order.ErrConfirmationExpired),
		errors.Is(err, order.ErrConfirmationMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.writeFailures.Inc()
		logger.FromCtx(c.Request.Context()).Error("store operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

// parseDate reads the date widget's value (YYYY-MM-DD). A zero time means
// the field was empty.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
