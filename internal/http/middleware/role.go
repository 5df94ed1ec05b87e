package middleware

import "github.com/gin-gonic/gin"

// RequireAdmin only lets elevated callers through. It must run after
// RequireAuth.
//
//	r.PATCH("/refunds/:id/resolve", RequireAdmin(), handler)
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}
		if err := caller.RequireAdmin(); err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Next()
	}
}
