package http

import "github.com/gofiber/fiber/v2"

type HealthHandler struct {
	modelo            string
	geminiConfigurado bool
}

// NewHealthHandler crea una nueva instancia del handler de salud.
func NewHealthHandler(modelo string, geminiConfigurado bool) *HealthHandler {
	return &HealthHandler{modelo: modelo, geminiConfigurado: geminiConfigurado}
}

// Health maneja GET /health.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":             "healthy",
		"modelo":             h.modelo,
		"proveedor":          "google",
		"google_configurado": h.geminiConfigurado,
	})
}
