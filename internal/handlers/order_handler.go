package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shutterdesk-be/internal/order"
)

// orderForm is the intake/edit payload as the form submits it. Dates travel
// as YYYY-MM-DD strings, amounts as numbers already bounded by the widgets.
type orderForm struct {
	CustomerName string  `json:"customerName" binding:"required"`
	Phone        string  `json:"phone"`
	Account      string  `json:"account" binding:"required"`
	PhotoType    string  `json:"photoType" binding:"required"`
	TotalCharges float64 `json:"totalCharges" binding:"min=0"`
	UpfrontPaid  float64 `json:"upfrontPaid" binding:"min=0"`
	Date         string  `json:"date" binding:"required"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var form orderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	date, err := parseDate(form.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	o, err := h.orders.Intake(c.Request.Context(), order.Intake{
		CustomerName: form.CustomerName,
		Phone:        form.Phone,
		Account:      order.Account(form.Account),
		PhotoType:    order.PhotoType(form.PhotoType),
		TotalCharges: form.TotalCharges,
		UpfrontPaid:  form.UpfrontPaid,
		Date:         date,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *Handler) ListOrders(c *gin.Context) {
	res, err := h.orders.List(c.Request.Context(), order.ListFilter{
		Status: c.Query("status"),
		Month:  c.Query("month"),
		Search: c.Query("search"),
		SortBy: c.Query("sort"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var form orderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	date, err := parseDate(form.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	o, err := h.orders.Edit(c.Request.Context(), c.Param("id"), order.Edit{
		CustomerName: form.CustomerName,
		Phone:        form.Phone,
		Account:      order.Account(form.Account),
		PhotoType:    order.PhotoType(form.PhotoType),
		TotalCharges: form.TotalCharges,
		UpfrontPaid:  form.UpfrontPaid,
		Date:         date,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

type paymentRequest struct {
	Amount float64 `json:"amount" binding:"required,min=1"`
}

// AddPayment enforces the payment widget's bounds (1 <= amount <= due)
// before handing off; the store itself does not re-check them.
func (h *Handler) AddPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Amount > o.DueAmount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount exceeds due"})
		return
	}

	updated, err := h.orders.AddPayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RequestCompletion is the first of the two confirmations finalizing an
// order; it answers with the token the second one must echo.
func (h *Handler) RequestCompletion(c *gin.Context) {
	token, err := h.orders.RequestCompletion(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"confirmationToken": token})
}

type confirmCompletionRequest struct {
	ConfirmationToken string `json:"confirmationToken" binding:"required"`
}

func (h *Handler) ConfirmCompletion(c *gin.Context) {
	var req confirmCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	o, err := h.orders.ConfirmCompletion(c.Request.Context(), c.Param("id"), req.ConfirmationToken)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	if err := h.orders.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) SuggestCustomers(c *gin.Context) {
	suggestions, err := h.orders.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *Handler) OrderMonths(c *gin.Context) {
	months, err := h.orders.Months(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}
