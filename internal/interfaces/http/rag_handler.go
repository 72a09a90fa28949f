package http

import (
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/application"
	"github.com/gofiber/fiber/v2"
)

type RAGHandler struct {
	service *application.RAGService
}

// NewRAGHandler crea una nueva instancia del handler de consultas RAG.
func NewRAGHandler(service *application.RAGService) *RAGHandler {
	return &RAGHandler{service: service}
}

// ConsultaRequest es una pregunta en lenguaje natural.
type ConsultaRequest struct {
	Pregunta string `json:"pregunta"`
}

// Consultar maneja POST /consulta-natural.
func (h *RAGHandler) Consultar(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	var solicitud ConsultaRequest
	if err := c.BodyParser(&solicitud); err != nil || solicitud.Pregunta == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pregunta es requerida",
		})
	}

	respuesta, err := h.service.Consultar(c.UserContext(), token, solicitud.Pregunta)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":             "success",
		"pregunta":           respuesta.Pregunta,
		"respuesta":          respuesta.Respuesta,
		"contexto_registros": respuesta.ContextoRegistros,
		"modelo":             respuesta.Modelo,
		"proveedor":          "google",
	})
}
