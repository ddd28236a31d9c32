package api

import (
	"net/http"

	resdto "kilo-share/internal/handler/dto/response"
	"kilo-share/internal/handler/middleware"
	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoleHandler struct {
	cmds commands.RoleCommands
	q    queries.RoleQueries
}

func NewRoleHandler(cmds commands.RoleCommands, q queries.RoleQueries) *RoleHandler {
	return &RoleHandler{cmds: cmds, q: q}
}

// @Summary My roles
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RolesResponse
// @Failure 401 {object} httperr.Response
// @Router /api/me/roles [get]
func (h *RoleHandler) Mine(c *gin.Context) {
	actor := middleware.GetActor(c)
	h.writeRoles(c, actor.UserID())
}

// @Summary User roles
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.RolesResponse
// @Failure 403 {object} httperr.Response
// @Router /api/admin/users/{id}/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.writeRoles(c, userID)
}

// @Summary Grant role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param role path string true "Role name"
// @Success 200 {object} resdto.RoleChangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/users/{id}/roles/{role} [put]
func (h *RoleHandler) Grant(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	role := c.Param("role")
	changed, err := h.cmds.Grant(c.Request.Context(), middleware.GetActor(c), userID, role)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RoleChangeResponse{UserID: userID, Role: role, Changed: changed})
}

// @Summary Revoke role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param role path string true "Role name"
// @Success 200 {object} resdto.RoleChangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/users/{id}/roles/{role} [delete]
func (h *RoleHandler) Revoke(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	role := c.Param("role")
	changed, err := h.cmds.Revoke(c.Request.Context(), middleware.GetActor(c), userID, role)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RoleChangeResponse{UserID: userID, Role: role, Changed: changed})
}

func (h *RoleHandler) writeRoles(c *gin.Context, userID uuid.UUID) {
	view, err := h.q.ListRoles(c.Request.Context(), middleware.GetActor(c), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoleView(view))
}
