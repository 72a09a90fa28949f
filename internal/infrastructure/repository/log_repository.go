package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/roble"
)

type logRepository struct {
	client *roble.Client
	tabla  string
}

// NewLogRepository crea una nueva instancia del repositorio de logs sobre la
// tabla indicada en ROBLE. El log es de solo inserción y consulta filtrada.
func NewLogRepository(client *roble.Client, tabla string) domain.LogRepository {
	return &logRepository{client: client, tabla: tabla}
}

// Insert registra una entrada de auditoría.
func (r *logRepository) Insert(ctx context.Context, token string, entrada *domain.AuditLog) error {
	crudo, err := json.Marshal(entrada)
	if err != nil {
		return fmt.Errorf("entrada de log inválida: %w", err)
	}

	var registro map[string]any
	if err := json.Unmarshal(crudo, &registro); err != nil {
		return fmt.Errorf("entrada de log inválida: %w", err)
	}

	if _, err := r.client.Insert(ctx, token, r.tabla, []map[string]any{registro}); err != nil {
		return fmt.Errorf("error al registrar log: %w", err)
	}

	return nil
}

// Find consulta el log aplicando los filtros no vacíos.
func (r *logRepository) Find(ctx context.Context, token string, filtro domain.LogFiltro) ([]map[string]any, error) {
	filtros := map[string]string{}
	if filtro.TipoOperacion != "" {
		filtros["tipo_operacion"] = filtro.TipoOperacion
	}
	if filtro.DocumentoAfectado != "" {
		filtros["documento_afectado"] = filtro.DocumentoAfectado
	}
	if filtro.UsuarioEmail != "" {
		filtros["usuario_email"] = filtro.UsuarioEmail
	}

	filas, err := r.client.Read(ctx, token, r.tabla, filtros)
	if err != nil {
		return nil, fmt.Errorf("error al consultar logs: %w", err)
	}

	return filas, nil
}
