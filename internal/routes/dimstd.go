package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/dimstd"
)

// RegisterDimStdRoutes wires dimensional-standard endpoints.
func RegisterDimStdRoutes(r fiber.Router, h *dimstd.Handler) {
	standards := r.Group("/dimensional-standards")
	standards.Post("/create", h.CreateStandard)
	standards.Put("/update", h.UpdateStandard)
	standards.Get("/getall", h.GetAllStandards)
	standards.Post("/by-component", h.GetStandardsByComponent)
	standards.Delete("/delete", h.DeleteStandard)

	dimStds := r.Group("/dimstd")
	dimStds.Post("/getbygtype", h.GetDimStdsByGType)
	dimStds.Post("/add-or-update", h.AddOrUpdateDimStds)

	r.Get("/schedules", h.GetSchedules)
}
