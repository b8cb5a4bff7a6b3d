package period

import (
	"net/http"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/shared/apperror"
	"github.com/creesler/laundry-pos-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type NavigateResponse struct {
	Period  string `json:"period"`
	RefDate string `json:"refDate"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type Handler struct {
	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// Navigate shifts the reference date one period step and returns the
// resolved window, so the dashboard's prev/next arrows stay stateless.
func (h *Handler) Navigate(c *gin.Context) {
	periodTok := c.Query("period")
	direction := c.Query("direction")

	ref := h.now()
	if raw := c.Query("refDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			httpErr := apperror.ToHTTP(apperror.InvalidField("refDate"))
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
		ref = parsed
	}

	next, err := Navigate(periodTok, ref, direction)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	rng, ok := Resolve(periodTok, next, "", "")
	if !ok {
		rng = Range{Start: startOfDay(next), End: endOfDay(next)}
	}

	response.Success(c, http.StatusOK, NavigateResponse{
		Period:  periodTok,
		RefDate: next.Format(dateLayout),
		Start:   rng.Start.UTC().Format(time.RFC3339),
		End:     rng.End.UTC().Format(time.RFC3339),
	}, nil)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/periods/navigate", h.Navigate)
}
