package http

import (
	"io"
	"strings"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/application"
	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	service *application.ImportService
}

// NewImportHandler crea una nueva instancia del handler de importación.
func NewImportHandler(service *application.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportRequest es el cuerpo JSON alternativo a la carga multipart.
type ImportRequest struct {
	Delimitador string `json:"delimitador"`
	Contenido   string `json:"contenido"`
}

// Importar maneja POST /personas/importar. Acepta el archivo delimitado como
// carga multipart (campo "archivo", delimitador en el campo "delimitador") o
// como cuerpo JSON. El reporte siempre se devuelve con 200: los rechazos por
// fila no son errores de la operación.
func (h *ImportHandler) Importar(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return sinToken(c)
	}

	contenido, delimitador, err := h.leerArchivo(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	reporte, err := h.service.ImportarArchivo(c.UserContext(), token, delimitador, contenido)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   reporte,
	})
}

func (h *ImportHandler) leerArchivo(c *fiber.Ctx) (string, rune, error) {
	if archivo, err := c.FormFile("archivo"); err == nil {
		abierto, err := archivo.Open()
		if err != nil {
			return "", 0, fiber.NewError(fiber.StatusBadRequest, "no se pudo abrir el archivo")
		}
		defer abierto.Close()

		datos, err := io.ReadAll(abierto)
		if err != nil {
			return "", 0, fiber.NewError(fiber.StatusBadRequest, "no se pudo leer el archivo")
		}

		return string(datos), delimitadorDesde(c.FormValue("delimitador")), nil
	}

	var solicitud ImportRequest
	if err := c.BodyParser(&solicitud); err != nil || solicitud.Contenido == "" {
		return "", 0, fiber.NewError(fiber.StatusBadRequest, "se requiere un archivo o el campo contenido")
	}

	return solicitud.Contenido, delimitadorDesde(solicitud.Delimitador), nil
}

func delimitadorDesde(valor string) rune {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return ','
	}
	return []rune(valor)[0]
}
