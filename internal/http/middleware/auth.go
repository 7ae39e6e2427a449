package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const subjectKey = "auth_subject"

// BearerAuth verifies HS256 bearer tokens issued by the hosting gateway.
// With an empty secret it passes every request through.
func BearerAuth(secret string) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}
	key := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid bearer token")
			return
		}

		if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
			c.Set(subjectKey, sub)
		}
		c.Next()
	}
}

// GetSubject returns the verified token subject, if any.
func GetSubject(c *gin.Context) string {
	if v, ok := c.Get(subjectKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "UNAUTHORIZED",
		"request_id": GetRequestID(c),
	})
}
