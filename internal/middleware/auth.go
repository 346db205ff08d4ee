package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/auth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/models"
	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
)

type AuthenticatedUser struct {
	ID       uint           `json:"id"`
	FullName string         `json:"fullName"`
	Email    string         `json:"email"`
	Provider types.Provider `json:"provider"`
}

// Auth authenticates requests carrying a bearer token in the Authorization
// header or the token cookie. Every verification failure yields the same
// 401 response.
func Auth(db *gorm.DB, issuer *auth.Issuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewApiError(http.StatusUnauthorized, "Authorization token is required"))
			return
		}

		claims, err := issuer.Verify(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewApiError(http.StatusUnauthorized, "Invalid or expired token"))
			return
		}

		var user models.User

		if err := db.First(&user, claims.UserID).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewApiError(http.StatusUnauthorized, "Invalid or expired token"))
			return
		}

		email := ""
		if user.Email != nil {
			email = *user.Email
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    email,
			Provider: user.Provider,
		})
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) string {
	if header := ctx.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		// A non-Bearer header is not ours; the cookie may still carry
		// a valid token.
	}

	if cookie, err := ctx.Cookie(types.TokenCookieName); err == nil {
		return cookie
	}

	return ""
}
