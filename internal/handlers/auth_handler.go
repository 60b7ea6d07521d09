package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shutterdesk-be/internal/user"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}

	c.SetCookie("access_token", token, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
