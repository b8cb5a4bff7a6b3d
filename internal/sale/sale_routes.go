package sale

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	sales := r.Group("/sales")
	{
		sales.GET("", h.List)
		sales.GET("/summary", h.Summary)
		sales.GET("/:id", h.GetByID)
		sales.POST("", h.Create)
		sales.POST("/bulk", h.Bulk)
		sales.PUT("/:id", h.Update)
		sales.DELETE("/:id", h.Delete)
	}
}
