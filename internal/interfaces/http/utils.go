package http

import (
	"errors"
	"strings"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// bearerToken extrae el token del encabezado Authorization.
func bearerToken(c *fiber.Ctx) (string, bool) {
	encabezado := c.Get(fiber.HeaderAuthorization)
	if encabezado == "" {
		return "", false
	}

	partes := strings.SplitN(encabezado, " ", 2)
	if len(partes) != 2 || !strings.EqualFold(partes[0], "Bearer") || partes[1] == "" {
		return "", false
	}

	return partes[1], true
}

// sinToken responde 401 cuando la solicitud no trae credencial bearer.
// El handler debe devolver este resultado de inmediato, antes de tocar
// cualquier servicio.
func sinToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Se requiere un token bearer",
	})
}

// responderError traduce la taxonomía de errores del dominio a códigos HTTP.
func responderError(c *fiber.Ctx, err error) error {
	var validacion *domain.ValidationError

	switch {
	case errors.As(err, &validacion):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Datos inválidos",
			"motivos": validacion.Motivos,
		})
	case errors.Is(err, domain.ErrPersonaNoEncontrada):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Persona no encontrada",
		})
	case errors.Is(err, domain.ErrDocumentoDuplicado):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Documento ya registrado",
		})
	case errors.Is(err, domain.ErrSinCambios):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No hay campos para actualizar",
		})
	case errors.Is(err, domain.ErrCredenciales):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Credenciales inválidas",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
