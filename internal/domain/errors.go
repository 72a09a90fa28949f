package domain

import (
	"errors"
	"strings"
)

// Errores terminales de las operaciones sobre personas. Los handlers HTTP
// los traducen a códigos de estado con errors.Is.
var (
	// ErrPersonaNoEncontrada indica que no existe persona con ese documento.
	ErrPersonaNoEncontrada = errors.New("persona no encontrada")
	// ErrDocumentoDuplicado indica que ya existe una persona con ese documento.
	ErrDocumentoDuplicado = errors.New("documento ya registrado")
	// ErrSinCambios indica una actualización sin ningún campo aplicable.
	ErrSinCambios = errors.New("no hay campos para actualizar")
	// ErrCredenciales indica credenciales o token rechazados por ROBLE.
	ErrCredenciales = errors.New("credenciales inválidas")
)

// ValidationError agrupa todos los motivos de rechazo de un registro.
// La lista completa se devuelve al llamador, nunca truncada.
type ValidationError struct {
	Motivos []string
}

func (e *ValidationError) Error() string {
	return "datos inválidos: " + strings.Join(e.Motivos, "; ")
}
