package api

import (
	"net/http"

	reqdto "kilo-share/internal/handler/dto/request"
	resdto "kilo-share/internal/handler/dto/response"
	"kilo-share/internal/handler/middleware"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IdempotencyKeyHeader = "Idempotency-Key"

var errInvalidIdempotencyKey = errs.New("Idempotency-Key must be a UUID")

type ReservationHandler struct {
	cmds   commands.ReservationCommands
	status commands.StatusCommands
	q      queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, status commands.StatusCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, status: status, q: q}
}

// @Summary Reserve kilos
// @Description Reserve kilos on an offer. Repeating a request with the same Idempotency-Key returns the original reservation.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID identifying this request"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReserveResponse
// @Success 200 {object} resdto.ReserveResponse "Replayed request"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		abortBadRequest(c, err, "Invalid Idempotency-Key header")
		return
	}
	var req reqdto.CreateReservationRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	result, err := h.cmds.Reserve(c.Request.Context(), middleware.GetActor(c), req.ToCommand(key))
	if err != nil {
		abortWithError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReserveResult(result))
}

// @Summary List my reservations
// @Description List the caller's reservations, newest first, with keyset pagination
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50, max 200)"
// @Param after query string false "Cursor from next_cursor"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	items, next, err := h.q.ListMine(c.Request.Context(), middleware.GetActor(c), afterCursor(c), queryInt(c, "limit", queries.DefaultListLimit))
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeReservationList(c, items, next)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp, err := resdto.FromReservationView(view)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update reservation description
// @Description Owners may edit the description while the reservation awaits submission
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateDescriptionRequest true "New description"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id} [patch]
func (h *ReservationHandler) UpdateDescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	actor := middleware.GetActor(c)
	if err := h.cmds.UpdateDescription(c.Request.Context(), actor, id, req.Description); err != nil {
		abortWithError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp, err := resdto.FromReservationView(view)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel reservation
// @Description Delete the reservation and give its kilos back to the offer
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reservation status history
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.StatusHistoryResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id}/history [get]
func (h *ReservationHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.q.ListHistory(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp, err := resdto.FromHistory(items)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List all reservations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param limit query int false "Max items (default 50, max 200)"
// @Param after query string false "Cursor from next_cursor"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/reservations [get]
func (h *ReservationHandler) ListAll(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}
	items, next, err := h.q.ListAll(c.Request.Context(), middleware.GetActor(c), status, afterCursor(c), queryInt(c, "limit", queries.DefaultListLimit))
	if err != nil {
		abortWithError(c, err)
		return
	}
	writeReservationList(c, items, next)
}

// @Summary Change reservation status
// @Description Move a reservation to a new status and record it in the history
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.TransitionStatusRequest true "Target status"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/reservations/{id}/status [post]
func (h *ReservationHandler) Transition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	result, err := h.status.Transition(c.Request.Context(), middleware.GetActor(c), req.ToCommand(id))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
}

func idempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader(IdempotencyKeyHeader)
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "parse idempotency key"), errInvalidIdempotencyKey)
	}
	return &key, nil
}

func afterCursor(c *gin.Context) *queries.Cursor {
	if after := c.Query("after"); after != "" {
		return &queries.Cursor{After: after}
	}
	return nil
}

func writeReservationList(c *gin.Context, items []*queries.ReservationView, next *queries.Cursor) {
	resp, err := resdto.FromReservationList(items, next)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
