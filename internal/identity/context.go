package identity

import "github.com/gin-gonic/gin"

const contextKey = "callerID"

// UserID returns the caller's user id stored by the Require middleware, or 0.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
