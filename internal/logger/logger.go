package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New construye el logger del servicio. El nivel llega de configuración;
// un nivel desconocido cae a info.
func New(nivel string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(nivel))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
