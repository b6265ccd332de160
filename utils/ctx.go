package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the user id stored by the auth middleware. Zero means
// the request carried no valid token.
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get("userId")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

// CurrentRole reads the role claim stored by the auth middleware.
func CurrentRole(c *gin.Context) string {
	v, ok := c.Get("role")
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}
