package domain

import "context"

// Tipos de operación auditables.
const (
	OperacionCrear        = "CREAR"
	OperacionConsultar    = "CONSULTAR"
	OperacionModificar    = "MODIFICAR"
	OperacionEliminar     = "ELIMINAR"
	OperacionConsultarRAG = "CONSULTAR_RAG"
)

// AuditLog es una entrada del log de auditoría. Las entradas son de solo
// escritura: el sistema nunca las modifica después de registrarlas.
type AuditLog struct {
	TipoOperacion     string `json:"tipo_operacion"`
	UsuarioEmail      string `json:"usuario_email"`
	DocumentoAfectado string `json:"documento_afectado,omitempty"`
	Descripcion       string `json:"descripcion,omitempty"`
	DatosAnteriores   any    `json:"datos_anteriores,omitempty"`
	DatosNuevos       any    `json:"datos_nuevos,omitempty"`
	PreguntaRAG       string `json:"pregunta_rag,omitempty"`
	RespuestaRAG      string `json:"respuesta_rag,omitempty"`
	FechaTransaccion  string `json:"fecha_transaccion,omitempty"`
}

// LogFiltro son los filtros admitidos al consultar el log.
// Los campos vacíos no se aplican.
type LogFiltro struct {
	TipoOperacion     string
	DocumentoAfectado string
	UsuarioEmail      string
}

// LogRepository define las operaciones contra el Log Sink.
type LogRepository interface {
	// Insert registra una entrada en el log.
	Insert(ctx context.Context, token string, entrada *AuditLog) error
	// Find consulta entradas aplicando los filtros no vacíos.
	Find(ctx context.Context, token string, filtro LogFiltro) ([]map[string]any, error)
}
