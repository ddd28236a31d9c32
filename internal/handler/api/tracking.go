package api

import (
	"net/http"

	resdto "kilo-share/internal/handler/dto/response"
	"kilo-share/internal/handler/httperr"
	"kilo-share/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	q queries.TrackingQueries
}

func NewTrackingHandler(q queries.TrackingQueries) *TrackingHandler {
	return &TrackingHandler{q: q}
}

// @Summary Track a shipment
// @Description Public shipment status by tracking code. Codes are case-insensitive.
// @Tags tracking
// @Produce json
// @Param code path string true "Tracking code, e.g. KG-7Q2M9XK4"
// @Success 200 {object} resdto.TrackingResponse
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/tracking/{code} [get]
func (h *TrackingHandler) Get(c *gin.Context) {
	view, err := h.q.GetByTrackingCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if view == nil {
		httperr.AbortWithError(c, http.StatusNotFound, errTrackingMissing, "Tracking code not found", nil)
		return
	}
	resp, err := resdto.FromTrackingView(view)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
