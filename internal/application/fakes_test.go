package application

import (
	"context"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
)

// fakePersonaRepo es un repositorio de personas en memoria para pruebas.
type fakePersonaRepo struct {
	personas map[string]*domain.Persona

	findErr   error
	insertErr error
	updateErr error
	deleteErr error
	listErr   error

	updateLlamado bool
	updateResp    map[string]any
}

func newFakePersonaRepo() *fakePersonaRepo {
	return &fakePersonaRepo{personas: map[string]*domain.Persona{}}
}

func (f *fakePersonaRepo) FindByDocumento(_ context.Context, _, nroDoc string) (*domain.Persona, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	persona, ok := f.personas[nroDoc]
	if !ok {
		return nil, nil
	}
	copia := *persona
	return &copia, nil
}

func (f *fakePersonaRepo) Insert(_ context.Context, _ string, persona *domain.Persona) (*domain.Persona, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	copia := *persona
	f.personas[persona.NroDoc] = &copia
	return &copia, nil
}

func (f *fakePersonaRepo) Update(_ context.Context, _, nroDoc string, updates map[string]any) (map[string]any, error) {
	f.updateLlamado = true
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResp, nil
}

func (f *fakePersonaRepo) Delete(_ context.Context, _, nroDoc string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.personas, nroDoc)
	return nil
}

func (f *fakePersonaRepo) ListAll(_ context.Context, _ string) ([]domain.Persona, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	personas := make([]domain.Persona, 0, len(f.personas))
	for _, persona := range f.personas {
		personas = append(personas, *persona)
	}
	return personas, nil
}

// fakeLogRepo captura las entradas registradas en el Log Sink.
type fakeLogRepo struct {
	entradas  []*domain.AuditLog
	insertErr error
}

func (f *fakeLogRepo) Insert(_ context.Context, _ string, entrada *domain.AuditLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copia := *entrada
	f.entradas = append(f.entradas, &copia)
	return nil
}

func (f *fakeLogRepo) Find(_ context.Context, _ string, _ domain.LogFiltro) ([]map[string]any, error) {
	return []map[string]any{}, nil
}

// fakeGenerador responde con un texto fijo y captura el prompt recibido.
type fakeGenerador struct {
	respuesta string
	err       error
	prompt    string
}

func (f *fakeGenerador) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.respuesta, nil
}

func (f *fakeGenerador) Model() string { return "gemini-test" }
