package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/errdef"
)

type ctxKey int

var groupIDKey ctxKey

// GroupIDContextKey is the Gin context key under which the authentication
// middleware stores the signed-in group's id.
const GroupIDContextKey = "groupId"

// NewContextWithGroupID returns a context carrying the signed-in group's id.
func NewContextWithGroupID(ctx context.Context, groupID uint) context.Context {
	return context.WithValue(ctx, groupIDKey, groupID)
}

// GroupIDFromContext returns the signed-in group's id stored by the token
// authentication middleware, if any.
func GroupIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(groupIDKey).(uint)
	return id, ok
}

// GetGroupID extracts the signed-in group's id from the request. Routes
// behind the token authentication middleware can rely on it being present.
func GetGroupID(c *gin.Context) (uint, error) {
	groupID, exists := c.Get(GroupIDContextKey)
	if !exists {
		return 0, errdef.NewUnauthorized("no group session on request")
	}

	id, ok := groupID.(uint)
	if !ok {
		return 0, errdef.NewUnauthorized("malformed group session on request")
	}
	return id, nil
}
