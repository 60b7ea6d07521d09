package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shutterdesk-be/internal/order"
	"shutterdesk-be/internal/report"
)

func (h *Handler) snapshotRange(c *gin.Context) (report.Range, bool) {
	var r report.Range

	if s := c.Query("start"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
			return r, false
		}
		r.Start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
			return r, false
		}
		r.End = &t
	}

	return r, true
}

func (h *Handler) monthlyBuckets(c *gin.Context) ([]report.MonthBucket, bool) {
	r, ok := h.snapshotRange(c)
	if !ok {
		return nil, false
	}

	orders, err := h.orders.List(c.Request.Context(), order.ListFilter{})
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	expenses, err := h.expenses.List(c.Request.Context(), "")
	if err != nil {
		h.fail(c, err)
		return nil, false
	}

	return report.Monthly(orders.Orders, expenses, r), true
}

func (h *Handler) MonthlySummary(c *gin.Context) {
	buckets, ok := h.monthlyBuckets(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": buckets})
}

// MonthlySummaryPDF streams the same table as a downloadable document.
func (h *Handler) MonthlySummaryPDF(c *gin.Context) {
	buckets, ok := h.monthlyBuckets(c)
	if !ok {
		return
	}

	pdf, err := report.RenderPDF(buckets, time.Now())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="monthly-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) HeadlineSummary(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), order.ListFilter{})
	if err != nil {
		h.fail(c, err)
		return
	}
	expenses, err := h.expenses.List(c.Request.Context(), "")
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report.Summarize(orders.Orders, expenses))
}
