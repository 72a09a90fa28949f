package roble

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized indica que ROBLE rechazó las credenciales o el token.
var ErrUnauthorized = errors.New("roble: credenciales rechazadas")

// AuthClient es el cliente de la superficie de autenticación de ROBLE.
// Este sistema no emite ni verifica tokens por sí mismo: todo se delega.
type AuthClient struct {
	baseURL string
	http    *http.Client
}

// NewAuthClient crea una nueva instancia del cliente de autenticación.
// baseURL es la URL de autenticación de la base, p.ej. {api}/auth/{nombre}.
func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// LoginResult son los tokens que ROBLE entrega tras un login exitoso.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Login autentica al usuario contra ROBLE. ROBLE responde 201 al crear la
// sesión; cualquier otro estado se trata como credenciales rechazadas.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	cuerpo, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("error serializando solicitud: %w", err)
	}

	solicitud, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/login", bytes.NewReader(cuerpo))
	if err != nil {
		return nil, fmt.Errorf("error creando solicitud: %w", err)
	}
	solicitud.Header.Set("Content-Type", "application/json")

	respuesta, err := a.http.Do(solicitud)
	if err != nil {
		return nil, fmt.Errorf("error conectando a ROBLE: %w", err)
	}
	defer respuesta.Body.Close()

	if respuesta.StatusCode != http.StatusOK && respuesta.StatusCode != http.StatusCreated {
		return nil, ErrUnauthorized
	}

	var resultado LoginResult
	if err := json.NewDecoder(respuesta.Body).Decode(&resultado); err != nil {
		return nil, fmt.Errorf("respuesta de login inválida: %w", err)
	}
	if resultado.AccessToken == "" {
		return nil, ErrUnauthorized
	}

	return &resultado, nil
}

// VerifyToken valida un token directamente contra ROBLE y devuelve los datos
// de sesión que ROBLE reporta.
func (a *AuthClient) VerifyToken(ctx context.Context, token string) (map[string]any, error) {
	solicitud, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/verify-token", nil)
	if err != nil {
		return nil, fmt.Errorf("error creando solicitud: %w", err)
	}
	solicitud.Header.Set("Authorization", "Bearer "+token)

	respuesta, err := a.http.Do(solicitud)
	if err != nil {
		return nil, fmt.Errorf("error conectando a ROBLE: %w", err)
	}
	defer respuesta.Body.Close()

	if respuesta.StatusCode != http.StatusOK && respuesta.StatusCode != http.StatusCreated {
		return nil, ErrUnauthorized
	}

	datos, err := io.ReadAll(respuesta.Body)
	if err != nil {
		return nil, fmt.Errorf("error leyendo respuesta de ROBLE: %w", err)
	}

	var sesion map[string]any
	if err := json.Unmarshal(datos, &sesion); err != nil {
		return nil, fmt.Errorf("respuesta de verificación inválida: %w", err)
	}

	return sesion, nil
}

// Logout cierra la sesión asociada al token en ROBLE.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	solicitud, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("error creando solicitud: %w", err)
	}
	solicitud.Header.Set("Authorization", "Bearer "+token)

	respuesta, err := a.http.Do(solicitud)
	if err != nil {
		return fmt.Errorf("error conectando a ROBLE: %w", err)
	}
	defer respuesta.Body.Close()

	if respuesta.StatusCode != http.StatusOK && respuesta.StatusCode != http.StatusCreated {
		return fmt.Errorf("no se pudo cerrar sesión en ROBLE (estado %d)", respuesta.StatusCode)
	}

	return nil
}
