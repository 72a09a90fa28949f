package http

import (
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/application"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler crea una nueva instancia del handler de autenticación.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest son las credenciales del usuario.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var solicitud LoginRequest
	if err := c.BodyParser(&solicitud); err != nil || solicitud.Email == "" || solicitud.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email y password son requeridos",
		})
	}

	resultado, err := h.service.Login(c.UserContext(), solicitud.Email, solicitud.Password)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": resultado.AccessToken,
		"token_type":   "bearer",
	})
}

// ValidarToken maneja GET /auth/validar-token.
func (h *AuthHandler) ValidarToken(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	sesion, err := h.service.ValidarToken(c.UserContext(), token)
	if err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"valid":      true,
		"roble_data": sesion,
	})
}

// Logout maneja POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	if err := h.service.Logout(c.UserContext(), token); err != nil {
		return responderError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Sesión cerrada correctamente",
	})
}
