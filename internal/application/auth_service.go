package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/roble"
	"github.com/rs/zerolog"
)

// AuthService reenvía autenticación a ROBLE. Este sistema no emite ni firma
// tokens: entrega al cliente exactamente el token que ROBLE devuelve.
type AuthService struct {
	client *roble.AuthClient
	log    zerolog.Logger
}

// NewAuthService crea una nueva instancia del servicio de autenticación.
func NewAuthService(client *roble.AuthClient, log zerolog.Logger) *AuthService {
	return &AuthService{client: client, log: log}
}

// Login autentica al usuario contra ROBLE y devuelve sus tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*roble.LoginResult, error) {
	resultado, err := s.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, roble.ErrUnauthorized) {
			s.log.Warn().Str("email", email).Msg("login rechazado por ROBLE")
			return nil, domain.ErrCredenciales
		}
		return nil, fmt.Errorf("error de autenticación: %w", err)
	}

	s.log.Info().Str("email", email).Msg("login exitoso")
	return resultado, nil
}

// ValidarToken valida el token contra ROBLE y devuelve los datos de sesión.
func (s *AuthService) ValidarToken(ctx context.Context, token string) (map[string]any, error) {
	sesion, err := s.client.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, roble.ErrUnauthorized) {
			return nil, domain.ErrCredenciales
		}
		return nil, fmt.Errorf("error validando token: %w", err)
	}
	return sesion, nil
}

// Logout cierra la sesión del token en ROBLE.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.client.Logout(ctx, token); err != nil {
		return fmt.Errorf("error cerrando sesión: %w", err)
	}
	return nil
}
