package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/auth"
)

// Context keys set by the auth gate
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware guards routes with stateless JWT verification. The token
// table is never consulted; possession of a validly signed, unexpired
// token is the only criterion.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token or the token cookie and stores the
// caller's id and role in the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// extractToken reads the Authorization header first and falls back to the
// cookie set at login for browser clients.
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err == nil {
			return tokenString
		}
		return ""
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}

// UserID reads the authenticated user id stored by JWTAuth
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// RoleName reads the authenticated role name stored by JWTAuth
func RoleName(c *gin.Context) string {
	v, exists := c.Get(ContextRole)
	if !exists {
		return ""
	}
	name, _ := v.(string)
	return name
}
