package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
)

const idParamKeyPrefix = "id_param:"

// RequireIDParams parses the named path parameters as positive integer ids
// and stores them in the context for GetIDParam.
func RequireIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			id, err := strconv.ParseUint(c.Param(name), 10, 64)
			if err != nil || id == 0 {
				apierrors.BadRequestWithDetails(c, fmt.Sprintf("Invalid %s", name), apierrors.FieldDetails{Param: name})
				c.Abort()
				return
			}
			c.Set(idParamKeyPrefix+name, id)
		}
		c.Next()
	}
}

// GetIDParam retrieves an id parsed by RequireIDParams
func GetIDParam(c *gin.Context, name string) (uint64, bool) {
	v, exists := c.Get(idParamKeyPrefix + name)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
