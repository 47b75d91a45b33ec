package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/identity"
	"github.com/pipespec/pipespec/internal/logging"
	"github.com/pipespec/pipespec/internal/subscription"
)

func setupLoginApp(t *testing.T) (*fiber.App, identity.Repository) {
	t.Helper()
	repo := identity.NewMemoryRepository()
	subs := subscription.NewService(subscription.NewMemoryRepository())
	issuer := NewIssuer("test-secret", time.Hour)
	h := NewHandler(NewVerifier(repo), issuer, subs, logging.Discard())

	app := fiber.New()
	app.Post("/login", h.Login)
	return app, repo
}

func postLogin(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(raw)
}

func TestLoginSuccess(t *testing.T) {
	app, repo := setupLoginApp(t)
	seedUser(t, repo, "a@x.com", "secret-password")

	status, body := postLogin(t, app, `{"email":"a@x.com","password":"secret-password"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected success with token, got %s", body)
	}
	if resp.User.Email != "a@x.com" {
		t.Fatalf("expected redacted user, got %s", body)
	}
	if strings.Contains(body, "password") && strings.Contains(body, "hash") {
		t.Fatalf("response leaks credential material: %s", body)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, repo := setupLoginApp(t)
	seedUser(t, repo, "a@x.com", "secret-password")

	wrongPwStatus, wrongPwBody := postLogin(t, app, `{"email":"a@x.com","password":"wrong"}`)
	noUserStatus, noUserBody := postLogin(t, app, `{"email":"b@x.com","password":"secret-password"}`)

	if wrongPwStatus != fiber.StatusBadRequest || noUserStatus != fiber.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", wrongPwStatus, noUserStatus)
	}
	if wrongPwBody != noUserBody {
		t.Fatalf("failure responses must be identical:\n%s\n%s", wrongPwBody, noUserBody)
	}
	if !strings.Contains(wrongPwBody, msgInvalidCredentials) {
		t.Fatalf("expected uniform message %q, got %s", msgInvalidCredentials, wrongPwBody)
	}
}

func TestLoginMissingFields(t *testing.T) {
	app, _ := setupLoginApp(t)

	status, _ := postLogin(t, app, `{"password":"x"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", status)
	}
	status, _ = postLogin(t, app, `{"email":"a@x.com"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", status)
	}
}

func TestLoginLookupFailureIsServerError(t *testing.T) {
	subs := subscription.NewService(subscription.NewMemoryRepository())
	issuer := NewIssuer("test-secret", time.Hour)
	h := NewHandler(NewVerifier(failingRepository{}), issuer, subs, logging.Discard())

	app := fiber.New()
	app.Post("/login", h.Login)

	status, body := postLogin(t, app, `{"email":"a@x.com","password":"secret-password"}`)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if strings.Contains(body, msgInvalidCredentials) {
		t.Fatalf("store failure must not render as a credential failure: %s", body)
	}
}
