package inventory

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	items := r.Group("/inventory")
	{
		items.GET("", h.List)
		items.GET("/logs", h.ListLogs)
		items.GET("/:id", h.GetByID)
		items.POST("", h.Create)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}
