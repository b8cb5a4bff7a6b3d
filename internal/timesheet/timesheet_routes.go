package timesheet

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	timesheets := r.Group("/timesheets")
	{
		timesheets.GET("", h.List)
		timesheets.GET("/:id", h.GetByID)
		timesheets.POST("/clock-in", h.ClockIn)
		timesheets.PUT("/clock-out/:id", h.ClockOut)
		timesheets.POST("/bulk", h.Bulk)
		timesheets.PUT("/:id", h.Update)
		timesheets.DELETE("/:id", h.Delete)
	}
}
