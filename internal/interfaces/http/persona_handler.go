package http

import (
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/application"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/gofiber/fiber/v2"
)

type PersonaHandler struct {
	service *application.PersonaService
}

// NewPersonaHandler crea una nueva instancia del handler de personas.
func NewPersonaHandler(service *application.PersonaService) *PersonaHandler {
	return &PersonaHandler{service: service}
}

// Crear maneja POST /personas/crear.
func (h *PersonaHandler) Crear(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	var persona domain.Persona
	if err := c.BodyParser(&persona); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de solicitud inválido",
		})
	}

	creada, err := h.service.Crear(c.UserContext(), token, &persona)
	if err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   creada,
	})
}

// Consultar maneja GET /personas/consultar/:nro_doc.
func (h *PersonaHandler) Consultar(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	persona, err := h.service.Consultar(c.UserContext(), token, c.Params("nro_doc"))
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   persona,
	})
}

// Modificar maneja PUT /personas/modificar/:nro_doc.
func (h *PersonaHandler) Modificar(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	var campos map[string]any
	if err := c.BodyParser(&campos); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de solicitud inválido",
		})
	}

	actualizada, err := h.service.Modificar(c.UserContext(), token, c.Params("nro_doc"), campos)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   actualizada,
	})
}

// Eliminar maneja DELETE /personas/eliminar/:nro_doc.
func (h *PersonaHandler) Eliminar(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	if err := h.service.Eliminar(c.UserContext(), token, c.Params("nro_doc")); err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Persona eliminada",
	})
}
