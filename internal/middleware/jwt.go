package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/auth"
)

const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"
)

// JWTAuth returns the session guard. It extracts the token from the
// Authorization header, falling back to the session cookie, verifies
// signature and expiry, and stores the identity claim for downstream
// handlers. Any failure rejects the request before the handler runs.
func JWTAuth(issuer *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			tokenStr = c.Cookies(auth.TokenCookie)
		}
		if tokenStr == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing token")
		}

		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			// Expired and tampered tokens get the same answer.
			return fiber.NewError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(userIDKey, claims.Subject)
		c.Locals(userEmailKey, claims.Email)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[len("Bearer "):])
}

// UserID returns the authenticated user id set by JWTAuth, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// UserEmail returns the authenticated email set by JWTAuth, or "".
func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(userEmailKey).(string)
	return email
}
