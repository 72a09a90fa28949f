package http

import (
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/application"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/gofiber/fiber/v2"
)

type LogHandler struct {
	service *application.LogService
}

// NewLogHandler crea una nueva instancia del handler de logs.
func NewLogHandler(service *application.LogService) *LogHandler {
	return &LogHandler{service: service}
}

// Registrar maneja POST /logs/registrar. A diferencia del registro de mejor
// esfuerzo que disparan las demás operaciones, este endpoint no tiene
// operación que proteger: un fallo del Log Sink se propaga como 500.
func (h *LogHandler) Registrar(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	var entrada domain.AuditLog
	if err := c.BodyParser(&entrada); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de solicitud inválido",
		})
	}

	if entrada.TipoOperacion == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tipo_operacion es requerido",
		})
	}

	if err := h.service.Registrar(c.UserContext(), token, &entrada); err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "registered",
	})
}

// Consultar maneja GET /logs/consultar con filtros opcionales.
func (h *LogHandler) Consultar(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	filtro := domain.LogFiltro{
		TipoOperacion:     c.Query("tipo"),
		DocumentoAfectado: c.Query("documento"),
		UsuarioEmail:      c.Query("usuario"),
	}

	entradas, err := h.service.Consultar(c.UserContext(), token, filtro)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   entradas,
	})
}
