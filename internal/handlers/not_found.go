package handlers

import (
	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/gin-gonic/gin"
)

type NotFoundHandler struct{}

func NewNotFoundHandler() *NotFoundHandler {
	return &NotFoundHandler{}
}

// NotFound handles requests for routes that don't exist
func (h *NotFoundHandler) NotFound(c *gin.Context) {
	respondError(c, models.ErrNotFound)
}
