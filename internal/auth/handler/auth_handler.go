package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Saeed-Mujawar/contact-management-apis/internal/auth/dto"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/auth/service"
	autherror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.Validation("invalid input")
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully!",
		"data":    fiber.Map{"id": user.ID, "email": user.Email},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.Validation("invalid input")
	}

	out, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful!",
		"data":    out,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.userService.Logout(TokenFromCtx(c), ClaimsFromCtx(c))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logout successful!",
	})
}

// CurrentUser echoes the validated identity claim; no store lookup happens
// here.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	claims := ClaimsFromCtx(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User information fetched successfully!",
		"data": dto.UserOutput{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		},
	})
}

func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var input dto.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.Validation("invalid input")
	}

	user, err := h.userService.Update(c.Context(), ClaimsFromCtx(c).UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully!",
		"data": dto.UserOutput{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.Context(), ClaimsFromCtx(c).UserID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User account and all associated contacts deleted successfully!",
	})
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var input dto.RequestPasswordResetInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.Validation("invalid input")
	}

	if err := h.userService.RequestPasswordReset(c.Context(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Please check your email for instructions to reset your password.",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.Validation("invalid input")
	}

	if err := h.userService.ResetPassword(c.Context(), c.Params("token"), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password reset successfully!",
	})
}
