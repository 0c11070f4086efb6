package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RPleshkov/SessionVault/domain"
)

// Context keys populated by the JWT middleware.
const (
	CtxUser        = "user"
	CtxUserID      = "user_id"
	CtxUserRole    = "user_role"
	CtxAccessToken = "access_token"
)

// AuthMW wraps the auth service for middleware
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.authSvc)
}

// AuthMiddleware authenticates the bearer token through the lifecycle engine,
// which layers the revocation check above signature validation.
func AuthMiddleware(authSvc domain.AuthService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}
		accessToken := tokenParts[1]

		user, err := authSvc.ValidateAccessToken(c.Request.Context(), accessToken)
		if err != nil {
			switch err {
			case domain.ErrUserInactive:
				c.JSON(http.StatusForbidden, gin.H{"error": "User inactive"})
			case domain.ErrUserNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			}
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserRole, user.Role)
		c.Set(CtxAccessToken, accessToken)
		c.Next()
	})
}
