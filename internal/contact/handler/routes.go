package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the contact routes. Fixed paths are registered
// before the :id routes so "search" and friends never match as an id.
func RegisterRoutes(app *fiber.App, h *ContactHandler, requireAuth fiber.Handler) {
	contacts := app.Group("/api/contacts", requireAuth)

	contacts.Get("/search", h.Search)
	contacts.Get("/count", h.Count)
	contacts.Delete("/bulk-delete", h.BulkDelete)

	contacts.Get("/", h.List)
	contacts.Post("/", h.Create)
	contacts.Get("/:id", h.Get)
	contacts.Put("/:id", h.Update)
	contacts.Delete("/:id", h.Delete)
}
