package application

import (
	"context"
	"testing"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personaAna() *domain.Persona {
	return &domain.Persona{
		PrimerNombre:    "Ana",
		Apellidos:       "Lopez",
		FechaNacimiento: "1990-05-01",
		Genero:          "Femenino",
		Correo:          "a@b.com",
		Celular:         "3001234567",
		NroDoc:          "1234567890",
		TipoDoc:         "Cédula",
	}
}

func nuevoPersonaService(repo *fakePersonaRepo, logs *fakeLogRepo) *PersonaService {
	return NewPersonaService(repo, NewValidator(), NewLogService(logs, zerolog.Nop()), zerolog.Nop())
}

func TestCrearPersonaYAuditar(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{}
	s := nuevoPersonaService(repo, logs)

	creada, err := s.Crear(context.Background(), "token", personaAna())

	require.NoError(t, err)
	assert.Equal(t, "1234567890", creada.NroDoc)

	require.Len(t, logs.entradas, 1)
	assert.Equal(t, domain.OperacionCrear, logs.entradas[0].TipoOperacion)
	assert.Equal(t, "1234567890", logs.entradas[0].DocumentoAfectado)
	assert.Equal(t, "Creada persona Ana Lopez", logs.entradas[0].Descripcion)
}

func TestCrearPersonaDuplicada(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{}
	s := nuevoPersonaService(repo, logs)

	_, err := s.Crear(context.Background(), "token", personaAna())
	require.NoError(t, err)

	_, err = s.Crear(context.Background(), "token", personaAna())

	assert.ErrorIs(t, err, domain.ErrDocumentoDuplicado)
	assert.Len(t, logs.entradas, 1, "el intento duplicado no se audita")
}

func TestCrearPersonaInvalidaDevuelveTodosLosMotivos(t *testing.T) {
	repo := newFakePersonaRepo()
	s := nuevoPersonaService(repo, &fakeLogRepo{})

	persona := personaAna()
	persona.Celular = "123"
	persona.Correo = "malo"

	_, err := s.Crear(context.Background(), "token", persona)

	var validacion *domain.ValidationError
	require.ErrorAs(t, err, &validacion)
	assert.Len(t, validacion.Motivos, 2)
	assert.Empty(t, repo.personas, "no se contacta el Record Store con datos inválidos")
}

func TestConsultarPersonaAudita(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{}
	s := nuevoPersonaService(repo, logs)

	_, err := s.Crear(context.Background(), "token", personaAna())
	require.NoError(t, err)
	logs.entradas = nil

	persona, err := s.Consultar(context.Background(), "token", "1234567890")

	require.NoError(t, err)
	assert.Equal(t, "Ana", persona.PrimerNombre)
	require.Len(t, logs.entradas, 1)
	assert.Equal(t, domain.OperacionConsultar, logs.entradas[0].TipoOperacion)
}

func TestConsultarPersonaInexistenteNoAudita(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{}
	s := nuevoPersonaService(repo, logs)

	_, err := s.Consultar(context.Background(), "token", "999")

	assert.ErrorIs(t, err, domain.ErrPersonaNoEncontrada)
	assert.Empty(t, logs.entradas, "una lectura fallida no deja rastro en el log")
}

func TestModificarPersona(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{}
	s := nuevoPersonaService(repo, logs)

	_, err := s.Crear(context.Background(), "token", personaAna())
	require.NoError(t, err)
	logs.entradas = nil

	actualizada, err := s.Modificar(context.Background(), "token", "1234567890", map[string]any{
		"celular": "3109998877",
		"correo":  nil, // los nulos se descartan
	})

	require.NoError(t, err)
	assert.Equal(t, "3109998877", actualizada.Celular)
	assert.Equal(t, "a@b.com", actualizada.Correo)

	require.Len(t, logs.entradas, 1)
	entrada := logs.entradas[0]
	assert.Equal(t, domain.OperacionModificar, entrada.TipoOperacion)
	assert.Equal(t, "Campos modificados: celular", entrada.Descripcion)

	anteriores, ok := entrada.DatosAnteriores.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "3001234567", anteriores["celular"])

	nuevos, ok := entrada.DatosNuevos.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "3109998877", nuevos["celular"])
}

func TestModificarDocumento(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{}
	s := nuevoPersonaService(repo, logs)

	_, err := s.Crear(context.Background(), "token", personaAna())
	require.NoError(t, err)
	logs.entradas = nil

	actualizada, err := s.Modificar(context.Background(), "token", "1234567890", map[string]any{
		"nro_doc": "9876543210",
	})

	require.NoError(t, err)
	assert.Equal(t, "9876543210", actualizada.NroDoc, "el nuevo documento se refleja en el estado posterior")

	require.Len(t, logs.entradas, 1)
	nuevos, ok := logs.entradas[0].DatosNuevos.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "9876543210", nuevos["nro_doc"])
}

func TestModificarSinCamposNoContactaElStore(t *testing.T) {
	repo := newFakePersonaRepo()
	s := nuevoPersonaService(repo, &fakeLogRepo{})

	_, err := s.Crear(context.Background(), "token", personaAna())
	require.NoError(t, err)

	_, err = s.Modificar(context.Background(), "token", "1234567890", map[string]any{
		"celular": nil,
		"correo":  nil,
	})

	assert.ErrorIs(t, err, domain.ErrSinCambios)
	assert.False(t, repo.updateLlamado, "la ruta de actualización del Record Store no se toca")
}

func TestModificarPersonaInexistente(t *testing.T) {
	s := nuevoPersonaService(newFakePersonaRepo(), &fakeLogRepo{})

	_, err := s.Modificar(context.Background(), "token", "999", map[string]any{"celular": "3100000000"})

	assert.ErrorIs(t, err, domain.ErrPersonaNoEncontrada)
}

func TestEliminarPersona(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{}
	s := nuevoPersonaService(repo, logs)

	_, err := s.Crear(context.Background(), "token", personaAna())
	require.NoError(t, err)
	logs.entradas = nil

	require.NoError(t, s.Eliminar(context.Background(), "token", "1234567890"))

	assert.Empty(t, repo.personas)
	require.Len(t, logs.entradas, 1)
	assert.Equal(t, domain.OperacionEliminar, logs.entradas[0].TipoOperacion)
}

func TestEliminarNoEsIdempotente(t *testing.T) {
	repo := newFakePersonaRepo()
	s := nuevoPersonaService(repo, &fakeLogRepo{})

	_, err := s.Crear(context.Background(), "token", personaAna())
	require.NoError(t, err)

	require.NoError(t, s.Eliminar(context.Background(), "token", "1234567890"))
	err = s.Eliminar(context.Background(), "token", "1234567890")

	assert.ErrorIs(t, err, domain.ErrPersonaNoEncontrada, "borrar lo ya borrado es NotFound, no éxito")
}

func TestCrearNoFallaPorLogCaido(t *testing.T) {
	repo := newFakePersonaRepo()
	logs := &fakeLogRepo{insertErr: assert.AnError}
	s := nuevoPersonaService(repo, logs)

	creada, err := s.Crear(context.Background(), "token", personaAna())

	require.NoError(t, err, "el fallo del log no altera el resultado de la operación")
	assert.NotNil(t, creada)
}
