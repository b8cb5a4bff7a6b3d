package sync

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, h.Sync)
	r.POST("/sync", handlers...)
}
