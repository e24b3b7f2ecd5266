package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// WithUserID stores the authenticated owner on ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the owner stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserIDFromContext returns the authenticated user ID from the gin context,
// falling back to the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, ok := c.Get(string(userIDKey)); ok {
		userID, isString := v.(string)
		return userID, isString && userID != ""
	}
	return UserIDFromContext(c.Request.Context())
}
