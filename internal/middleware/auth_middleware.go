package middleware

import (
	"net/http"
	"strings"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/internal/utils"
	"github.com/Baaaki/portfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claimsKey = "claims"

// Authenticator is the part of the auth service the middleware needs.
type Authenticator interface {
	Verify(tokenString string) (*utils.Claims, error)
	RequireRole(claims *utils.Claims, role models.Role) error
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header and
// stores the claims on the context.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		claims, err := auth.Verify(tokenString)
		if err != nil {
			logger.Log.Warn("Rejected bearer token",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.Set("user_id", claims.UserID.String())
		c.Set("username", claims.Username)
		c.Set("user_role", string(claims.Role))
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware. Missing claims are a 401,
// any role other than admin a 403.
func AdminMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)

		if err := auth.RequireRole(claims, models.RoleAdmin); err != nil {
			status := http.StatusForbidden
			if claims == nil {
				status = http.StatusUnauthorized
			} else {
				logger.Log.Warn("Non-admin attempted admin operation",
					zap.String("user_id", claims.UserID.String()),
					zap.String("username", claims.Username),
					zap.String("path", c.FullPath()),
				)
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.Next()
	}
}

// ClaimsFromContext returns the claims AuthMiddleware stored, or nil.
func ClaimsFromContext(c *gin.Context) *utils.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
