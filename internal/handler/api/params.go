package api

import (
	"strconv"

	"kilo-share/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abortBadRequest(c, errs.Mark(errs.Wrapf(err, "parse %s", name), errInvalidID), "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt falls back to def when the parameter is absent or not a number.
func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
