package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/roble"
)

type personaRepository struct {
	client *roble.Client
	tabla  string
}

// NewPersonaRepository crea una nueva instancia del repositorio de personas
// sobre la tabla indicada en ROBLE.
func NewPersonaRepository(client *roble.Client, tabla string) domain.PersonaRepository {
	return &personaRepository{client: client, tabla: tabla}
}

// FindByDocumento busca una persona por su número de documento.
// ROBLE responde con un arreglo vacío cuando no hay coincidencias;
// eso se devuelve como (nil, nil), no como error.
func (r *personaRepository) FindByDocumento(ctx context.Context, token, nroDoc string) (*domain.Persona, error) {
	filas, err := r.client.Read(ctx, token, r.tabla, map[string]string{"nro_doc": nroDoc})
	if err != nil {
		return nil, fmt.Errorf("error al buscar persona: %w", err)
	}
	if len(filas) == 0 {
		return nil, nil
	}

	return personaDesdeFila(filas[0])
}

// Insert crea una nueva persona y devuelve el registro que ROBLE reporta
// como insertado (con su _id asignado) o, si la respuesta no lo trae, el
// registro enviado.
func (r *personaRepository) Insert(ctx context.Context, token string, persona *domain.Persona) (*domain.Persona, error) {
	registro, err := filaDesdePersona(persona)
	if err != nil {
		return nil, err
	}

	respuesta, err := r.client.Insert(ctx, token, r.tabla, []map[string]any{registro})
	if err != nil {
		return nil, fmt.Errorf("error al crear persona: %w", err)
	}

	if insertados, ok := respuesta["inserted"].([]any); ok && len(insertados) > 0 {
		if fila, ok := insertados[0].(map[string]any); ok {
			if creada, err := personaDesdeFila(fila); err == nil {
				return creada, nil
			}
		}
	}

	return persona, nil
}

// Update aplica los campos sobre la persona identificada por nro_doc y
// devuelve el registro actualizado si ROBLE lo incluye en la respuesta.
func (r *personaRepository) Update(ctx context.Context, token, nroDoc string, updates map[string]any) (map[string]any, error) {
	filas, err := r.client.Update(ctx, token, r.tabla, "nro_doc", nroDoc, updates)
	if err != nil {
		return nil, fmt.Errorf("error al actualizar persona: %w", err)
	}
	if len(filas) == 0 {
		return nil, nil
	}
	return filas[0], nil
}

// Delete elimina la persona identificada por nro_doc.
func (r *personaRepository) Delete(ctx context.Context, token, nroDoc string) error {
	if err := r.client.Delete(ctx, token, r.tabla, "nro_doc", nroDoc); err != nil {
		return fmt.Errorf("error al eliminar persona: %w", err)
	}
	return nil
}

// ListAll devuelve todas las personas de la tabla.
func (r *personaRepository) ListAll(ctx context.Context, token string) ([]domain.Persona, error) {
	filas, err := r.client.Read(ctx, token, r.tabla, nil)
	if err != nil {
		return nil, fmt.Errorf("error al listar personas: %w", err)
	}

	personas := make([]domain.Persona, 0, len(filas))
	for _, fila := range filas {
		persona, err := personaDesdeFila(fila)
		if err != nil {
			continue
		}
		personas = append(personas, *persona)
	}

	return personas, nil
}

// personaDesdeFila decodifica una fila de ROBLE al modelo de dominio
// reutilizando las etiquetas JSON.
func personaDesdeFila(fila map[string]any) (*domain.Persona, error) {
	crudo, err := json.Marshal(fila)
	if err != nil {
		return nil, fmt.Errorf("fila de persona inválida: %w", err)
	}

	var persona domain.Persona
	if err := json.Unmarshal(crudo, &persona); err != nil {
		return nil, fmt.Errorf("fila de persona inválida: %w", err)
	}

	return &persona, nil
}

func filaDesdePersona(persona *domain.Persona) (map[string]any, error) {
	crudo, err := json.Marshal(persona)
	if err != nil {
		return nil, fmt.Errorf("persona inválida: %w", err)
	}

	var fila map[string]any
	if err := json.Unmarshal(crudo, &fila); err != nil {
		return nil, fmt.Errorf("persona inválida: %w", err)
	}

	// ROBLE asigna el _id; nunca se envía en un insert.
	delete(fila, "_id")

	return fila, nil
}
