package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shutterdesk-be/internal/expense"
)

type expenseForm struct {
	Amount float64 `json:"amount" binding:"min=0"`
	Type   string  `json:"type" binding:"required"`
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var form expenseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	e, err := h.expenses.Create(c.Request.Context(), expense.Input{
		Amount: form.Amount,
		Type:   expense.ExpenseType(form.Type),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

func (h *Handler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenses.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	var form expenseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	e, err := h.expenses.Update(c.Request.Context(), c.Param("id"), expense.Input{
		Amount: form.Amount,
		Type:   expense.ExpenseType(form.Type),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	if err := h.expenses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
