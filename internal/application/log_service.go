package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/rs/zerolog"
)

// LogService registra entradas de auditoría en el Log Sink.
//
// Hay dos modos de uso deliberadamente distintos: Registrar devuelve el error
// al llamador (es lo que expone el endpoint directo de registro), y
// RegistrarMejorEsfuerzo lo descarta tras dejar un warning, que es lo que usan
// los flujos de personas y RAG para no acoplar su resultado al estado del log.
type LogService struct {
	repo domain.LogRepository
	log  zerolog.Logger
}

// NewLogService crea una nueva instancia del servicio de logs.
func NewLogService(repo domain.LogRepository, log zerolog.Logger) *LogService {
	return &LogService{repo: repo, log: log}
}

// Preparar construye una entrada de auditoría con los campos comunes.
func (s *LogService) Preparar(tipoOperacion, usuarioEmail, documento string) *domain.AuditLog {
	return &domain.AuditLog{
		TipoOperacion:     tipoOperacion,
		UsuarioEmail:      usuarioEmail,
		DocumentoAfectado: documento,
	}
}

// Registrar normaliza los snapshots de la entrada y la envía al Log Sink.
// La fecha de transacción por defecto es el momento del envío.
func (s *LogService) Registrar(ctx context.Context, token string, entrada *domain.AuditLog) error {
	entrada.DatosNuevos = s.normalizarSnapshot("datos_nuevos", entrada.DatosNuevos)
	entrada.DatosAnteriores = s.normalizarSnapshot("datos_anteriores", entrada.DatosAnteriores)

	if entrada.UsuarioEmail == "" {
		entrada.UsuarioEmail = EmailDesconocido
	}
	if entrada.FechaTransaccion == "" {
		entrada.FechaTransaccion = time.Now().UTC().Format(time.RFC3339)
	}

	if err := s.repo.Insert(ctx, token, entrada); err != nil {
		return fmt.Errorf("error registrando log: %w", err)
	}

	return nil
}

// RegistrarMejorEsfuerzo registra la entrada y descarta cualquier fallo con
// un warning local. El resultado de la operación protegida nunca cambia por
// un fallo del log.
func (s *LogService) RegistrarMejorEsfuerzo(ctx context.Context, token string, entrada *domain.AuditLog) {
	if err := s.Registrar(ctx, token, entrada); err != nil {
		s.log.Warn().
			Err(err).
			Str("tipo_operacion", entrada.TipoOperacion).
			Str("documento_afectado", entrada.DocumentoAfectado).
			Msg("no se registró el log de auditoría")
	}
}

// Consultar devuelve las entradas del log que cumplen los filtros no vacíos.
func (s *LogService) Consultar(ctx context.Context, token string, filtro domain.LogFiltro) ([]map[string]any, error) {
	entradas, err := s.repo.Find(ctx, token, filtro)
	if err != nil {
		return nil, fmt.Errorf("error consultando logs: %w", err)
	}
	return entradas, nil
}

// normalizarSnapshot deja el snapshot como un único objeto estructurado:
// de una lista se conserva solo el primer elemento, y un valor que no pueda
// representarse como objeto JSON se anula con un warning en lugar de fallar
// el registro.
func (s *LogService) normalizarSnapshot(campo string, valor any) any {
	if valor == nil {
		return nil
	}

	switch lista := valor.(type) {
	case []any:
		if len(lista) == 0 {
			s.advertirSnapshot(campo, "lista vacía")
			return nil
		}
		valor = lista[0]
	case []map[string]any:
		if len(lista) == 0 {
			s.advertirSnapshot(campo, "lista vacía")
			return nil
		}
		valor = lista[0]
	}

	crudo, err := json.Marshal(valor)
	if err != nil {
		s.advertirSnapshot(campo, err.Error())
		return nil
	}

	var objeto map[string]any
	if err := json.Unmarshal(crudo, &objeto); err != nil {
		s.advertirSnapshot(campo, "el valor no es un objeto")
		return nil
	}

	return objeto
}

func (s *LogService) advertirSnapshot(campo, motivo string) {
	s.log.Warn().
		Str("campo", campo).
		Str("motivo", motivo).
		Msg("no se pudo normalizar el snapshot; el campo se anula")
}
