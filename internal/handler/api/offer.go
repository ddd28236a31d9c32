package api

import (
	"net/http"
	"strings"

	reqdto "kilo-share/internal/handler/dto/request"
	resdto "kilo-share/internal/handler/dto/response"
	"kilo-share/internal/handler/middleware"
	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	cmds commands.OfferCommands
	q    queries.OfferQueries
}

func NewOfferHandler(cmds commands.OfferCommands, q queries.OfferQueries) *OfferHandler {
	return &OfferHandler{cmds: cmds, q: q}
}

// @Summary List offers
// @Description List active offers with kilos left, soonest departure first
// @Tags offers
// @Produce json
// @Param q query string false "Case-insensitive match on departure or arrival city and country"
// @Param limit query int false "Max items (default 50, max 200)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} resdto.OfferListResponse
// @Failure 500 {object} httperr.Response
// @Router /api/offers [get]
func (h *OfferHandler) ListActive(c *gin.Context) {
	filter := offerFilter(c)
	items, err := h.q.ListActive(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.writeList(c, items, filter)
}

// @Summary Get offer
// @Description Get an offer by ID. Inactive offers are only visible to admins.
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp, err := resdto.FromOfferView(view)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List all offers
// @Description List every offer including inactive and sold out ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param limit query int false "Max items (default 50, max 200)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} resdto.OfferListResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/offers [get]
func (h *OfferHandler) ListAll(c *gin.Context) {
	filter := offerFilter(c)
	items, err := h.q.ListAll(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.writeList(c, items, filter)
}

// @Summary Create offer
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOfferRequest true "Offer"
// @Success 201 {object} resdto.OfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	var req reqdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	draft, err := req.ToDraft()
	if err != nil {
		abortWithError(c, err)
		return
	}
	actor := middleware.GetActor(c)
	id, err := h.cmds.Create(c.Request.Context(), actor, draft)
	if err != nil {
		abortWithError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp, err := resdto.FromOfferView(view)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Update offer
// @Description Partially update an offer; omitted fields keep their value
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body reqdto.UpdateOfferRequest true "Fields to change"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/offers/{id} [patch]
func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	p, err := req.ToPatch()
	if err != nil {
		abortWithError(c, err)
		return
	}
	actor := middleware.GetActor(c)
	if err = h.cmds.Update(c.Request.Context(), actor, id, p); err != nil {
		abortWithError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp, err := resdto.FromOfferView(view)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Delete offer
// @Description Delete an offer together with its reservations and their history. Requires confirm=true.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param confirm query bool true "Must be true"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 428 {object} httperr.Response
// @Router /api/admin/offers/{id} [delete]
func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	confirmed := strings.EqualFold(c.Query("confirm"), "true")
	if err := h.cmds.Delete(c.Request.Context(), middleware.GetActor(c), id, confirmed); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OfferHandler) writeList(c *gin.Context, items []*queries.OfferView, filter queries.OfferFilter) {
	resp, err := resdto.FromOfferList(items, queries.OfferFilter{
		Limit:  queries.ValidateLimit(filter.Limit),
		Offset: max(filter.Offset, 0),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func offerFilter(c *gin.Context) queries.OfferFilter {
	return queries.OfferFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Limit:  queryInt(c, "limit", queries.DefaultListLimit),
		Offset: queryInt(c, "offset", 0),
	}
}
