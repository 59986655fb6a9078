package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sumitroy01/Donate-v2/internal/pkg/errcode"
	"github.com/sumitroy01/Donate-v2/internal/pkg/jwt"
	"github.com/sumitroy01/Donate-v2/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"
	// Session cookie set alongside the bearer token on verify/login.
	TokenCookieName = "token"
)

func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(TokenCookieName)
		}
		if token == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		if claims.Email != "" {
			c.Set("user_email", claims.Email)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
