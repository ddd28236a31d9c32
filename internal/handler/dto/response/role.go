package response

import (
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
)

type RolesResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Roles  []string  `json:"roles"`
}

type RoleChangeResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Role    string    `json:"role"`
	Changed bool      `json:"changed"`
}

func FromRoleView(v *queries.RoleView) *RolesResponse {
	roles := v.Roles
	if roles == nil {
		roles = []string{}
	}
	return &RolesResponse{UserID: v.UserID, Roles: roles}
}
