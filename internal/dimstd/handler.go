package dimstd

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/middleware"
)

// Handler exposes dimensional-standard HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a dimstd HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createStandardRequest struct {
	ComponentID int    `json:"component_id"`
	Standard    string `json:"dimensional_standard"`
}

// CreateStandard registers a dimensional standard for a component.
func (h *Handler) CreateStandard(c *fiber.Ctx) error {
	var req createStandardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	std, err := h.service.CreateStandard(c.UserContext(), req.ComponentID, req.Standard)
	if err != nil {
		return mapDimStdError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "dimensional_standard": std})
}

type updateStandardRequest struct {
	ID       string `json:"id"`
	Standard string `json:"dimensional_standard"`
}

// UpdateStandard rewrites a dimensional standard.
func (h *Handler) UpdateStandard(c *fiber.Ctx) error {
	var req updateStandardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	std, err := h.service.UpdateStandard(c.UserContext(), req.ID, req.Standard)
	if err != nil {
		return mapDimStdError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "dimensional_standard": std})
}

// GetAllStandards lists every dimensional standard.
func (h *Handler) GetAllStandards(c *fiber.Ctx) error {
	standards, err := h.service.AllStandards(c.UserContext())
	if err != nil {
		return err
	}
	if standards == nil {
		standards = []DimensionalStandard{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "dimensional_standards": standards})
}

type byComponentRequest struct {
	ComponentID int `json:"component_id"`
}

// GetStandardsByComponent lists the standards for one component.
func (h *Handler) GetStandardsByComponent(c *fiber.Ctx) error {
	var req byComponentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	standards, err := h.service.StandardsByComponent(c.UserContext(), req.ComponentID)
	if err != nil {
		return mapDimStdError(err)
	}
	if standards == nil {
		standards = []DimensionalStandard{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "dimensional_standards": standards})
}

type deleteStandardRequest struct {
	ID string `json:"id"`
}

// DeleteStandard removes a dimensional standard.
func (h *Handler) DeleteStandard(c *fiber.Ctx) error {
	var req deleteStandardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteStandard(c.UserContext(), req.ID); err != nil {
		return mapDimStdError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "Dimensional Standard deleted successfully"})
}

type byGTypeRequest struct {
	GType     string `json:"gType"`
	ProjectID string `json:"projectId"`
}

// GetDimStdsByGType returns dim-std values for a g_type scoped to a project.
func (h *Handler) GetDimStdsByGType(c *fiber.Ctx) error {
	var req byGTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	dimStds, err := h.service.DimStdsByGType(c.UserContext(), req.GType, req.ProjectID)
	if err != nil {
		return mapDimStdError(err)
	}
	if dimStds == nil {
		dimStds = []DimStd{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "dimStds": dimStds})
}

type addOrUpdateRequest struct {
	DimStds []DimStdInput `json:"dimStds"`
}

// AddOrUpdateDimStds batch-upserts dim-std values.
func (h *Handler) AddOrUpdateDimStds(c *fiber.Ctx) error {
	var req addOrUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.AddOrUpdateDimStds(c.UserContext(), middleware.UserID(c), req.DimStds); err != nil {
		return mapDimStdError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "DimStds added or updated successfully."})
}

// GetSchedules lists the default schedule catalog.
func (h *Handler) GetSchedules(c *fiber.Ctx) error {
	schedules, err := h.service.Schedules(c.UserContext())
	if err != nil {
		return err
	}
	if schedules == nil {
		schedules = []DefaultSchedule{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "schedules": schedules})
}

func mapDimStdError(err error) error {
	switch {
	case errors.Is(err, ErrComponentNotFound):
		return fiber.NewError(http.StatusNotFound, "Component not found")
	case errors.Is(err, ErrStandardNotFound):
		return fiber.NewError(http.StatusNotFound, "Dimensional Standard not found")
	case errors.Is(err, ErrInvalidProjectAccess):
		return fiber.NewError(http.StatusForbidden, "Invalid project access")
	case errors.Is(err, errEmptyField):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
