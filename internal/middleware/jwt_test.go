package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/auth"
)

func setupGuardedApp(t *testing.T, issuer *auth.Issuer) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", JWTAuth(issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c), "email": UserEmail(c)})
	})
	return app
}

func TestJWTAuthMissingToken(t *testing.T) {
	app := setupGuardedApp(t, auth.NewIssuer("secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	app := setupGuardedApp(t, auth.NewIssuer("secret", time.Hour))

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expired := auth.NewIssuer("secret", -time.Minute)
	token, _, err := expired.Issue("u1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := setupGuardedApp(t, auth.NewIssuer("secret", time.Hour))

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestJWTAuthBearerHeader(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, _, err := issuer.Issue("u1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := setupGuardedApp(t, issuer)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestJWTAuthCookieCarrier(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, _, err := issuer.Issue("u1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := setupGuardedApp(t, issuer)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d", resp.StatusCode)
	}
}
