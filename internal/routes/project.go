package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/project"
)

// RegisterProjectRoutes wires project CRUD endpoints.
func RegisterProjectRoutes(r fiber.Router, h *project.Handler) {
	group := r.Group("/projects")
	group.Post("/create", h.Create)
	group.Put("/update", h.Update)
	group.Get("/", h.List)
	group.Get("/:projectId", h.Get)
	group.Delete("/:projectId", h.Delete)
}
