package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/contactbook-api/internal/application/dto"
	"github.com/jhoicas/contactbook-api/internal/application/usecase"
)

// ContactBookHandler maneja las peticiones HTTP de agendas.
type ContactBookHandler struct {
	uc   *usecase.ContactBookUseCase
	errs errorMapper
}

// NewContactBookHandler construye el handler.
func NewContactBookHandler(uc *usecase.ContactBookUseCase, errs errorMapper) *ContactBookHandler {
	return &ContactBookHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Crear agenda
// @Tags         contact-books
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactBookRequest  true  "Datos de la agenda"
// @Success      201   {object}  dto.ContactBookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contact-books [post]
func (h *ContactBookHandler) Create(c *fiber.Ctx) error {
	var in dto.ContactBookRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/contact-books/:id
func (h *ContactBookHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.ContactBookRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/contact-books/:id (borra también sus empresas y contactos)
func (h *ContactBookHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID GET /api/contact-books/:id
func (h *ContactBookHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.errs.write(c, err)
	}
	if out == nil {
		return notFound(c, "agenda no encontrada")
	}
	return c.JSON(out)
}

// List GET /api/contact-books
func (h *ContactBookHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Vista de agenda: empresas con sus contactos y contactos sin empresa
// @Tags         contact-books
// @Produce      json
// @Param        id   path  int  true  "ID de la agenda"
// @Success      200  {object}  dto.ContactBookOverview
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contact-books/{id}/overview [get]
func (h *ContactBookHandler) Overview(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Overview(c.UserContext(), id)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
