package errors

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

type errorBody struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// FiberErrorHandler is the single place errors become HTTP responses.
// Handlers return kinded errors and never write error bodies themselves.
// Stack traces are attached in development only.
func FiberErrorHandler(env string) fiber.ErrorHandler {
	dev := env == "development"

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		title := "Server Error"

		var appErr *Error
		if errors.As(err, &appErr) {
			switch appErr.Kind {
			case KindValidation:
				status, title = fiber.StatusBadRequest, "Validation Failed"
			case KindNotFound:
				status, title = fiber.StatusNotFound, "Not Found"
			case KindUnauthorized:
				status, title = fiber.StatusUnauthorized, "Unauthorized"
			case KindForbidden:
				status, title = fiber.StatusForbidden, "Forbidden"
			case KindServer:
				status, title = fiber.StatusInternalServerError, "Server Error"
			}
		} else {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
				title = "Request Failed"
			}
		}

		body := errorBody{Title: title, Message: err.Error()}
		if dev {
			body.StackTrace = string(debug.Stack())
		}

		return c.Status(status).JSON(body)
	}
}
