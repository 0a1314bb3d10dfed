package middleware

import (
	"errors"
	"net/http"
	"strings"

	pkgAuth "jokerdeck/pkg/auth"

	"github.com/gin-gonic/gin"
)

const ContextPlayerIDKey = "playerID"

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := pkgAuth.ParsePlayerToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextPlayerIDKey, claims.PlayerID)
		c.Next()
	}
}

func PlayerID(c *gin.Context) int64 {
	v, ok := c.Get(ContextPlayerIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}

func extractBearerToken(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
