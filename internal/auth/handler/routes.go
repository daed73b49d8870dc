package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, requireAuth fiber.Handler) {
	users := app.Group("/api/users")

	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Post("/request-password-reset", h.RequestPasswordReset)
	users.Post("/reset-password/:token", h.ResetPassword)

	users.Post("/logout", requireAuth, h.Logout)
	users.Get("/current", requireAuth, h.CurrentUser)
	users.Put("/update", requireAuth, h.UpdateUser)
	users.Delete("/delete", requireAuth, h.DeleteUser)
}
