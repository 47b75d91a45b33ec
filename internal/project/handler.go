package project

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/middleware"
)

// Handler exposes project HTTP endpoints. The owner is always the
// authenticated user; client-supplied owner ids are ignored.
type Handler struct {
	service *Service
}

// NewHandler builds a project HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	ProjectCode        string `json:"projectCode"`
	ProjectDescription string `json:"projectDescription"`
	CompanyName        string `json:"companyName"`
}

// Create provisions a project for the authenticated owner.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.service.Create(c.UserContext(), CreateInput{
		OwnerID:     middleware.UserID(c),
		Code:        req.ProjectCode,
		Description: req.ProjectDescription,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return mapProjectError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Project created successfully",
		"project": p,
	})
}

type updateRequest struct {
	ID                 string `json:"id"`
	ProjectCode        string `json:"projectCode"`
	ProjectDescription string `json:"projectDescription"`
	CompanyName        string `json:"companyName"`
}

// Update rewrites a project the authenticated user owns.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.ID == "" {
		return fiber.NewError(http.StatusBadRequest, "id is required")
	}
	p, err := h.service.Update(c.UserContext(), UpdateInput{
		OwnerID:     middleware.UserID(c),
		ID:          req.ID,
		Code:        req.ProjectCode,
		Description: req.ProjectDescription,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return mapProjectError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Project updated successfully",
		"project": p,
	})
}

// Get returns a single project.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), middleware.UserID(c), c.Params("projectId"))
	if err != nil {
		return mapProjectError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "project": p})
}

// List returns every project owned by the authenticated user.
func (h *Handler) List(c *fiber.Ctx) error {
	projects, err := h.service.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []Project{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "projects": projects})
}

// Delete soft-deletes a project.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.UserID(c), c.Params("projectId")); err != nil {
		return mapProjectError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func mapProjectError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "Project not found")
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusForbidden, "Invalid project access")
	case errors.Is(err, ErrCodeTaken):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCode):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		if err != nil && (errors.Is(err, errDescription) || errors.Is(err, errCompany)) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}
}
