package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/Saeed-Mujawar/contact-management-apis/internal/auth/handler"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/domain"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/dto"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/service"
	apperror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func toOutput(c *domain.Contact) dto.ContactOutput {
	return dto.ContactOutput{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func toOutputs(contacts []domain.Contact) []dto.ContactOutput {
	out := make([]dto.ContactOutput, 0, len(contacts))
	for i := range contacts {
		out = append(out, toOutput(&contacts[i]))
	}
	return out
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contactService.List(c.Context(), authhandler.ClaimsFromCtx(c).UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Contacts retrieved successfully!",
		"contacts": toOutputs(contacts),
	})
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateContactInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid input")
	}

	contact, err := h.contactService.Create(c.Context(), authhandler.ClaimsFromCtx(c).UserID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Contact created successfully!",
		"contact": toOutput(contact),
	})
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contact, err := h.contactService.Get(c.Context(), authhandler.ClaimsFromCtx(c).UserID, c.Params("id"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Contact retrieved successfully!",
		"contact": toOutput(contact),
	})
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateContactInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid input")
	}

	contact, err := h.contactService.Update(c.Context(), authhandler.ClaimsFromCtx(c).UserID, c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Contact updated successfully!",
		"contact": toOutput(contact),
	})
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.contactService.Delete(c.Context(), authhandler.ClaimsFromCtx(c).UserID, id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Deleted contact with id: %s", id),
	})
}

func (h *ContactHandler) Search(c *fiber.Ctx) error {
	contacts, err := h.contactService.Search(c.Context(), authhandler.ClaimsFromCtx(c).UserID,
		c.Query("name"), c.Query("email"), c.Query("phone"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(toOutputs(contacts))
}

func (h *ContactHandler) Count(c *fiber.Ctx) error {
	count, err := h.contactService.Count(c.Context(), authhandler.ClaimsFromCtx(c).UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"total": count})
}

func (h *ContactHandler) BulkDelete(c *fiber.Ctx) error {
	var input dto.BulkDeleteInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Validation("invalid input")
	}

	deleted, err := h.contactService.BulkDelete(c.Context(), authhandler.ClaimsFromCtx(c).UserID, input.IDs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Deleted %d contacts", deleted),
	})
}
