package main

import (
	"log"
	"time"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/application"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/config"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/gemini"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/infrastructure/repository"
	handlers "github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/interfaces/http"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/logger"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/roble"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logg := logger.New(cfg.LogLevel)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	app.Use(accessLog(logg))

	// Clientes hacia ROBLE y Gemini
	robleClient := roble.NewClient(cfg.DatabaseURL(), cfg.HTTPTimeout)
	robleAuth := roble.NewAuthClient(cfg.AuthURL(), cfg.HTTPTimeout)
	geminiClient := gemini.NewClient(cfg.GoogleAPIKey, cfg.GoogleModel, cfg.HTTPTimeout)

	// Logs
	logRepo := repository.NewLogRepository(robleClient, cfg.TablaLogs)
	logService := application.NewLogService(logRepo, logg)
	logHandler := handlers.NewLogHandler(logService)

	// Personas
	validator := application.NewValidator()
	personaRepo := repository.NewPersonaRepository(robleClient, cfg.TablaPersonas)
	personaService := application.NewPersonaService(personaRepo, validator, logService, logg)
	personaHandler := handlers.NewPersonaHandler(personaService)

	// Importación masiva
	importService := application.NewImportService(personaRepo, validator, logService, logg)
	importHandler := handlers.NewImportHandler(importService)

	// Consulta RAG
	ragService := application.NewRAGService(personaRepo, geminiClient, logService, logg)
	ragHandler := handlers.NewRAGHandler(ragService)

	// Autenticación
	authService := application.NewAuthService(robleAuth, logg)
	authHandler := handlers.NewAuthHandler(authService)

	healthHandler := handlers.NewHealthHandler(cfg.GoogleModel, geminiClient.Configured())

	api := app.Group("/api")

	api.Get("/health", healthHandler.Health)

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/validar-token", authHandler.ValidarToken)
	auth.Post("/logout", authHandler.Logout)

	personas := api.Group("/personas")
	personas.Post("/crear", personaHandler.Crear)
	personas.Get("/consultar/:nro_doc", personaHandler.Consultar)
	personas.Put("/modificar/:nro_doc", personaHandler.Modificar)
	personas.Delete("/eliminar/:nro_doc", personaHandler.Eliminar)
	personas.Post("/importar", importHandler.Importar)

	logs := api.Group("/logs")
	logs.Post("/registrar", logHandler.Registrar)
	logs.Get("/consultar", logHandler.Consultar)

	api.Post("/consulta-natural", ragHandler.Consultar)

	logg.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logg.Fatal().Err(err).Msg("server stopped")
	}
}

// accessLog registra cada solicitud con un id de correlación.
func accessLog(logg zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		requestID := uuid.New().String()
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		logg.Info().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(inicio)).
			Msg("request")

		return err
	}
}
