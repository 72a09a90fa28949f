// Package gemini implementa el cliente HTTP hacia la API generativa de Google.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const baseURLPorDefecto = "https://generativelanguage.googleapis.com"

// Client llama al endpoint generateContent de un modelo Gemini.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient crea una nueva instancia del cliente de Gemini.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return newClient(baseURLPorDefecto, apiKey, model, timeout)
}

func newClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured indica si el cliente tiene clave de API.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model devuelve el nombre del modelo configurado.
func (c *Client) Model() string {
	return c.model
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateContent envía el prompt al modelo y devuelve el texto del primer
// candidato de la respuesta.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY no está configurada")
	}

	cuerpo, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("error serializando solicitud: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	solicitud, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(cuerpo))
	if err != nil {
		return "", fmt.Errorf("error creando solicitud: %w", err)
	}
	solicitud.Header.Set("Content-Type", "application/json")
	solicitud.Header.Set("x-goog-api-key", c.apiKey)

	respuesta, err := c.http.Do(solicitud)
	if err != nil {
		return "", fmt.Errorf("error conectando a Gemini: %w", err)
	}
	defer respuesta.Body.Close()

	datos, err := io.ReadAll(respuesta.Body)
	if err != nil {
		return "", fmt.Errorf("error leyendo respuesta de Gemini: %w", err)
	}

	if respuesta.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini respondió %d: %s", respuesta.StatusCode, strings.TrimSpace(string(datos)))
	}

	var decodificada generateResponse
	if err := json.Unmarshal(datos, &decodificada); err != nil {
		return "", fmt.Errorf("respuesta de Gemini inválida: %w", err)
	}

	if len(decodificada.Candidates) == 0 || len(decodificada.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini no devolvió candidatos")
	}

	return decodificada.Candidates[0].Content.Parts[0].Text, nil
}
