package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contiene la configuración del servicio. Se construye una sola vez en
// el arranque y se pasa explícitamente a los componentes que la necesitan.
type Config struct {
	ServerPort  string
	CORSOrigins string

	RobleAPIURL string
	RobleDBName string

	GoogleAPIKey string
	GoogleModel  string

	TablaPersonas string
	TablaLogs     string

	// HTTPTimeout acota cada llamada saliente a ROBLE y Gemini.
	// No hay reintentos: un fallo es terminal para esa llamada.
	HTTPTimeout time.Duration

	LogLevel string
}

// LoadConfig carga la configuración desde variables de entorno,
// con soporte de archivo .env para desarrollo local.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RobleAPIURL:   getEnv("ROBLE_API_URL", "https://roble-api.openlab.uninorte.edu.co"),
		RobleDBName:   os.Getenv("ROBLE_DB_NAME"),
		GoogleAPIKey:  os.Getenv("GOOGLE_API_KEY"),
		GoogleModel:   getEnv("GOOGLE_MODEL", "gemini-2.0-flash"),
		TablaPersonas: getEnv("TABLA_PERSONAS", "persona"),
		TablaLogs:     getEnv("TABLA_LOGS", "log"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.RobleDBName == "" {
		return nil, fmt.Errorf("ROBLE_DB_NAME es requerido")
	}

	segundos, err := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "30"))
	if err != nil || segundos <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS inválido: %q", os.Getenv("HTTP_TIMEOUT_SECONDS"))
	}
	cfg.HTTPTimeout = time.Duration(segundos) * time.Second

	return cfg, nil
}

// DatabaseURL devuelve la URL base de la base de datos en ROBLE.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("%s/database/%s", c.RobleAPIURL, c.RobleDBName)
}

// AuthURL devuelve la URL base de autenticación en ROBLE.
func (c *Config) AuthURL() string {
	return fmt.Sprintf("%s/auth/%s", c.RobleAPIURL, c.RobleDBName)
}

func getEnv(clave, porDefecto string) string {
	if valor := os.Getenv(clave); valor != "" {
		return valor
	}
	return porDefecto
}
