//go:build unit

package api_test

import (
	"net/http"

	"kilo-share/internal/domain/user"
	"kilo-share/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

var (
	testUserID  = uuid.MustParse("5f0c7a2e-4d1b-4b8e-9a51-0b6f2f1f9c01")
	testAdminID = uuid.MustParse("9d3e1c44-8a77-4f0e-b0c2-7e5d6a3b2f10")
)

// fakeAuth stands in for the JWT middleware: the bearer token picks the actor.
func fakeAuth(c *gin.Context) {
	switch c.GetHeader("Authorization") {
	case "Bearer " + userToken:
		middleware.SetActor(c, user.NewActor(testUserID))
	case "Bearer " + adminToken:
		middleware.SetActor(c, user.NewActor(testAdminID, user.RoleAdmin))
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	c.Next()
}

// optionalAuth keeps anonymous requests going.
func optionalAuth(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.Next()
		return
	}
	fakeAuth(c)
}

func isActor(id uuid.UUID) actorMatcher { return actorMatcher{id: id} }

type actorMatcher struct{ id uuid.UUID }

func (m actorMatcher) Matches(x any) bool {
	a, ok := x.(user.Actor)
	return ok && a.UserID() == m.id
}

func (m actorMatcher) String() string { return "actor " + m.id.String() }
