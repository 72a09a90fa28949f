package domain

// ImportError describe el rechazo de una fila durante una importación masiva.
// Fila es 1-based y cuenta solo filas de datos (el encabezado no cuenta).
type ImportError struct {
	Fila   int      `json:"fila"`
	Motivo []string `json:"motivo"`
}

// ImportReport es el resultado de una importación masiva. Se construye
// incrementalmente fila a fila y es inmutable una vez devuelto.
type ImportReport struct {
	Total      int           `json:"total"`
	Insertadas int           `json:"insertadas"`
	Errores    []ImportError `json:"errores"`
}
