package identity

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/notification"
	"github.com/pipespec/pipespec/internal/subscription"
)

// Handler exposes user account HTTP endpoints.
type Handler struct {
	svc      *Service
	subs     *subscription.Service
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewHandler builds the identity HTTP handler.
func NewHandler(svc *Service, subs *subscription.Service, notifier notification.Notifier, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, subs: subs, notifier: notifier, logger: logger}
}

type registerRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Plan        int    `json:"plan"`
}

// Register creates a user and subscribes it to the chosen plan.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Plan == 0 {
		req.Plan = 1 // free tier
	}

	// Reject an unknown plan before the user row is written.
	if _, err := h.subs.PlanByID(c.UserContext(), req.Plan); err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return fiber.NewError(http.StatusNotFound, "Selected plan not found")
		}
		return err
	}

	user, err := h.svc.Register(c.UserContext(), RegisterInput{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Industry:    req.Industry,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(http.StatusBadRequest, verr.Error())
		}
		if errors.Is(err, ErrEmailTaken) {
			return fiber.NewError(http.StatusConflict, "email already registered")
		}
		return err
	}

	info, err := h.subs.Subscribe(c.UserContext(), user.ID, req.Plan)
	if err != nil {
		return err
	}

	if h.notifier != nil {
		_ = h.notifier.Send(c.UserContext(), notification.Message{
			Kind:        notification.KindWelcome,
			Destination: user.Email,
			Body:        fmt.Sprintf("Welcome to PipeSpec, %s. You are on the %s plan.", user.Name, info.Plan.Name),
		})
	}

	h.logger.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.Int("plan", info.Plan.ID),
	)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user.Redacted(),
		"plan":    info,
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

// Get returns the user addressed by email.
func (h *Handler) Get(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.svc.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return mapIdentityError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "user": user.Redacted()})
}

type updateRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Update applies a partial profile update addressed by email.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.svc.Update(c.UserContext(), UpdateInput{
		Email:       req.Email,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return mapIdentityError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "user": user.Redacted()})
}

// Delete soft-deletes the user addressed by email.
func (h *Handler) Delete(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Delete(c.UserContext(), req.Email); err != nil {
		return mapIdentityError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func mapIdentityError(err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(http.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "User not found")
	default:
		return err
	}
}
