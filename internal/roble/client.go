// Package roble implementa los clientes HTTP hacia ROBLE, la plataforma
// externa que aloja la base de datos y la autenticación del sistema.
package roble

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client es el cliente de la superficie de base de datos de ROBLE.
// Cada llamada reenvía el token del usuario en el encabezado Authorization.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient crea una nueva instancia del cliente de base de datos de ROBLE.
// baseURL es la URL completa de la base, p.ej. {api}/database/{nombre}.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type insertRequest struct {
	TableName string           `json:"tableName"`
	Records   []map[string]any `json:"records"`
}

type updateRequest struct {
	TableName string         `json:"tableName"`
	IDColumn  string         `json:"idColumn"`
	IDValue   string         `json:"idValue"`
	Updates   map[string]any `json:"updates"`
}

type deleteRequest struct {
	TableName string `json:"tableName"`
	IDColumn  string `json:"idColumn"`
	IDValue   string `json:"idValue"`
}

// Insert inserta registros en una tabla y devuelve la respuesta decodificada.
func (c *Client) Insert(ctx context.Context, token, tabla string, registros []map[string]any) (map[string]any, error) {
	cuerpo := insertRequest{TableName: tabla, Records: registros}

	respuesta, err := c.hacer(ctx, http.MethodPost, c.baseURL+"/insert", token, cuerpo)
	if err != nil {
		return nil, err
	}

	resultado, _ := respuesta.(map[string]any)
	return resultado, nil
}

// Read consulta una tabla con filtros de igualdad por columna. ROBLE responde
// con un objeto o con un arreglo según la cantidad de coincidencias; aquí se
// normaliza siempre a un arreglo. Sin coincidencias es un arreglo vacío, no
// un error.
func (c *Client) Read(ctx context.Context, token, tabla string, filtros map[string]string) ([]map[string]any, error) {
	valores := url.Values{}
	valores.Set("tableName", tabla)
	for columna, valor := range filtros {
		valores.Set(columna, valor)
	}

	respuesta, err := c.hacer(ctx, http.MethodGet, c.baseURL+"/read?"+valores.Encode(), token, nil)
	if err != nil {
		return nil, err
	}

	return normalizarFilas(respuesta), nil
}

// Update aplica los campos indicados sobre el registro identificado por
// idColumn=idValue y devuelve el registro actualizado si ROBLE lo incluye
// en la respuesta.
func (c *Client) Update(ctx context.Context, token, tabla, idColumn, idValue string, updates map[string]any) ([]map[string]any, error) {
	cuerpo := updateRequest{TableName: tabla, IDColumn: idColumn, IDValue: idValue, Updates: updates}

	respuesta, err := c.hacer(ctx, http.MethodPut, c.baseURL+"/update", token, cuerpo)
	if err != nil {
		return nil, err
	}

	return normalizarFilas(respuesta), nil
}

// Delete elimina el registro identificado por idColumn=idValue.
func (c *Client) Delete(ctx context.Context, token, tabla, idColumn, idValue string) error {
	cuerpo := deleteRequest{TableName: tabla, IDColumn: idColumn, IDValue: idValue}

	_, err := c.hacer(ctx, http.MethodDelete, c.baseURL+"/delete", token, cuerpo)
	return err
}

// hacer ejecuta una llamada a ROBLE y decodifica la respuesta JSON.
// Cualquier estado fuera de 200/201 es un error terminal: no hay reintentos.
func (c *Client) hacer(ctx context.Context, metodo, url, token string, cuerpo any) (any, error) {
	var lector io.Reader
	if cuerpo != nil {
		datos, err := json.Marshal(cuerpo)
		if err != nil {
			return nil, fmt.Errorf("error serializando solicitud: %w", err)
		}
		lector = bytes.NewReader(datos)
	}

	solicitud, err := http.NewRequestWithContext(ctx, metodo, url, lector)
	if err != nil {
		return nil, fmt.Errorf("error creando solicitud: %w", err)
	}

	solicitud.Header.Set("Authorization", "Bearer "+token)
	if cuerpo != nil {
		solicitud.Header.Set("Content-Type", "application/json")
	}

	respuesta, err := c.http.Do(solicitud)
	if err != nil {
		return nil, fmt.Errorf("error conectando a ROBLE: %w", err)
	}
	defer respuesta.Body.Close()

	datos, err := io.ReadAll(respuesta.Body)
	if err != nil {
		return nil, fmt.Errorf("error leyendo respuesta de ROBLE: %w", err)
	}

	if respuesta.StatusCode != http.StatusOK && respuesta.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("ROBLE respondió %d: %s", respuesta.StatusCode, strings.TrimSpace(string(datos)))
	}

	if len(datos) == 0 {
		return nil, nil
	}

	var decodificada any
	if err := json.Unmarshal(datos, &decodificada); err != nil {
		return nil, fmt.Errorf("respuesta de ROBLE no es JSON válido: %w", err)
	}

	return decodificada, nil
}

// normalizarFilas convierte la respuesta de ROBLE (objeto o arreglo)
// en un arreglo de objetos.
func normalizarFilas(respuesta any) []map[string]any {
	switch valor := respuesta.(type) {
	case nil:
		return []map[string]any{}
	case []any:
		filas := make([]map[string]any, 0, len(valor))
		for _, elemento := range valor {
			if fila, ok := elemento.(map[string]any); ok {
				filas = append(filas, fila)
			}
		}
		return filas
	case map[string]any:
		return []map[string]any{valor}
	default:
		return []map[string]any{}
	}
}
