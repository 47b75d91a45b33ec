package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pipespec/pipespec/internal/identity"
)

// RegisterUserRoutes wires the protected user endpoints. Registration is
// public and mounted separately.
func RegisterUserRoutes(r fiber.Router, h *identity.Handler) {
	group := r.Group("/users")
	group.Post("/getUser", h.Get)
	group.Put("/updateUser", h.Update)
	group.Delete("/deleteUser", h.Delete)
}
