package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/constants"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
)

// RequireAuth resolves the acting user from the session and stores it as a
// uint64 under constants.ContextKeyUserID. Sessions without a usable id get 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := toUserID(sessions.Default(c).Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the acting user set by RequireAuth.
func GetUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(v)
}

func toUserID(v interface{}) (uint64, bool) {
	var id uint64
	switch n := v.(type) {
	case uint64:
		id = n
	case uint:
		id = uint64(n)
	case int64:
		if n < 0 {
			return 0, false
		}
		id = uint64(n)
	case int:
		if n < 0 {
			return 0, false
		}
		id = uint64(n)
	default:
		return 0, false
	}
	return id, id != 0
}
