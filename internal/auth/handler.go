package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/identity"
	"github.com/pipespec/pipespec/internal/subscription"
)

// msgInvalidCredentials is the single message rendered for both an unknown
// email and a wrong password, so responses cannot enumerate accounts.
const msgInvalidCredentials = "Invalid credentials"

// TokenCookie is the cookie carrying the session token for browser clients.
const TokenCookie = "token"

// Handler exposes the login endpoint.
type Handler struct {
	verifier *Verifier
	issuer   *Issuer
	subs     *subscription.Service
	logger   *slog.Logger
}

// NewHandler builds the auth HTTP handler.
func NewHandler(verifier *Verifier, issuer *Issuer, subs *subscription.Service, logger *slog.Logger) *Handler {
	return &Handler{verifier: verifier, issuer: issuer, subs: subs, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success   bool                  `json:"success"`
	Message   string                `json:"message"`
	User      identity.RedactedUser `json:"user"`
	Token     string                `json:"token"`
	ExpiresIn int64                 `json:"expires_in"`
	Plan      *subscription.Info    `json:"plan"`
}

// Login verifies credentials and mints a session token. Verification always
// completes before a token is issued; no token exists for a failed login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email is required")
	}
	if req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "password is required")
	}

	user, err := h.verifier.Verify(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSuchUser), errors.Is(err, ErrBadCredentials):
			// Same external text for both branches.
			return fiber.NewError(http.StatusBadRequest, msgInvalidCredentials)
		default:
			h.logger.Error("credential lookup failed", slog.String("email", req.Email), slog.Any("error", err))
			return fiber.NewError(http.StatusInternalServerError, "Internal server error")
		}
	}

	token, exp, err := h.issuer.Issue(user.ID, user.Email)
	if err != nil {
		h.logger.Error("token issue failed", slog.String("user_id", user.ID), slog.Any("error", err))
		return fiber.NewError(http.StatusInternalServerError, "Internal server error")
	}

	// Enrichment only: a missing subscription never fails the login.
	var plan *subscription.Info
	if h.subs != nil {
		if info, err := h.subs.InfoForUser(c.UserContext(), user.ID); err == nil {
			plan = &info
		} else if !errors.Is(err, subscription.ErrNotFound) {
			h.logger.Warn("subscription lookup failed", slog.String("user_id", user.ID), slog.Any("error", err))
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(http.StatusOK).JSON(loginResponse{
		Success:   true,
		Message:   "Login successful",
		User:      user.Redacted(),
		Token:     token,
		ExpiresIn: int64(time.Until(exp).Seconds()),
		Plan:      plan,
	})
}
