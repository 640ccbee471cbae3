package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvenhancer-backend/internal/shared/auth"
	"cvenhancer-backend/internal/shared/server/respond"
)

const (
	userIDKey        = "userId"
	userEmailKey     = "userEmail"
	userNameKey      = "userName"
	emailVerifiedKey = "emailVerified"
)

// Identity is the minimal capability token the pipeline endpoint consumes:
// who the caller is and whether their email is verified. The identity
// provider behind it is invisible past this point.
type Identity struct {
	UserID        string
	Email         string
	Name          string
	Guest         bool
	EmailVerified bool
}

// Auth validates JWTs or guest headers and stores identity in context.
// Google OAuth routes are exempt because they are how a JWT is obtained.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/auth/google/") {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(userIDKey, claims.Sub)
			if claims.Email != "" {
				c.Set(userEmailKey, claims.Email)
			}
			if claims.Name != "" {
				c.Set(userNameKey, claims.Name)
			}
			c.Set(emailVerifiedKey, claims.EmailVerified)
			c.Set("isGuest", false)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Set("isGuest", true)
		c.Set(emailVerifiedKey, false)
		c.Next()
	}
}

// IdentityFromContext assembles the Identity stored by the auth middleware.
func IdentityFromContext(c *gin.Context) Identity {
	if c == nil {
		return Identity{}
	}
	guest := false
	if raw, ok := c.Get("isGuest"); ok {
		if b, ok2 := raw.(bool); ok2 {
			guest = b
		}
	}
	verified := false
	if raw, ok := c.Get(emailVerifiedKey); ok {
		if b, ok2 := raw.(bool); ok2 {
			verified = b
		}
	}
	return Identity{
		UserID:        c.GetString(userIDKey),
		Email:         c.GetString(userEmailKey),
		Name:          c.GetString(userNameKey),
		Guest:         guest,
		EmailVerified: verified,
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
