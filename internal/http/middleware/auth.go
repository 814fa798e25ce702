package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shoury7/EzyStayBackend/internal/modules/users"
	"github.com/Shoury7/EzyStayBackend/internal/shared/apperr"
)

const ctxKeyUser = "current_user"

type AuthUser struct {
	ID    string
	Role  string
	Email string
}

// RequireAuth validates the Bearer token and stores the claims on the context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			Fail(c, apperr.UnauthorizedErr("No token provided."))
			return
		}

		claims, err := users.ParseToken(strings.TrimPrefix(h, "Bearer "), jwtSecret)
		if err != nil {
			Fail(c, apperr.UnauthorizedErr("Invalid token."))
			return
		}

		c.Set(ctxKeyUser, AuthUser{ID: claims.Sub, Role: claims.Role, Email: claims.Email})
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			Fail(c, apperr.UnauthorizedErr("No token provided."))
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		Fail(c, apperr.ForbiddenErr("Insufficient role."))
	}
}

func CurrentUser(c *gin.Context) (AuthUser, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return AuthUser{}, false
	}
	u, ok := v.(AuthUser)
	return u, ok
}
