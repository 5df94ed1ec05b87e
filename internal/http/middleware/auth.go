package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"toursbackend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

// RequireAuth validates an HS256 bearer token and stores the caller in the
// context. Tokens carry user_id and role ("admin" elevates), or is_admin.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}

		caller, err := ParseCaller(secret, strings.TrimSpace(raw))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// ParseCaller verifies tokenString and extracts the caller identity.
func ParseCaller(secret []byte, tokenString string) (domain.Caller, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Caller{}, err
	}
	if !tkn.Valid {
		return domain.Caller{}, errors.New("token not valid")
	}

	id := claimString(claims["user_id"])
	if id == "" {
		id, _ = claims.GetSubject()
	}
	if id == "" {
		return domain.Caller{}, errors.New("token has no user id")
	}

	isAdmin := strings.EqualFold(claimString(claims["role"]), "admin")
	if v, ok := claims["is_admin"].(bool); ok && v {
		isAdmin = true
	}
	return domain.Caller{ID: id, IsAdmin: isAdmin}, nil
}

func claimString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// CallerFrom returns the caller set by RequireAuth.
func CallerFrom(c *gin.Context) (domain.Caller, bool) {
	if c == nil {
		return domain.Caller{}, false
	}
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": msg,
		"errors":  gin.H{},
	})
}
