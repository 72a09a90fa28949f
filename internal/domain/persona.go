package domain

import "context"

// Persona representa un registro de persona almacenado en ROBLE.
// Todos los campos viajan como texto; ROBLE agrega su propio _id al insertar.
type Persona struct {
	ID              string `json:"_id,omitempty"`
	PrimerNombre    string `json:"primer_nombre"`
	SegundoNombre   string `json:"segundo_nombre,omitempty"`
	Apellidos       string `json:"apellidos"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Genero          string `json:"genero"`
	Correo          string `json:"correo"`
	Celular         string `json:"celular"`
	NroDoc          string `json:"nro_doc"`
	TipoDoc         string `json:"tipo_doc"`
	Foto            string `json:"foto,omitempty"`
}

// Campos devuelve la persona como mapa de nombre de campo a texto,
// la forma que consume el validador.
func (p *Persona) Campos() map[string]string {
	return map[string]string{
		"primer_nombre":    p.PrimerNombre,
		"segundo_nombre":   p.SegundoNombre,
		"apellidos":        p.Apellidos,
		"fecha_nacimiento": p.FechaNacimiento,
		"genero":           p.Genero,
		"correo":           p.Correo,
		"celular":          p.Celular,
		"nro_doc":          p.NroDoc,
		"tipo_doc":         p.TipoDoc,
		"foto":             p.Foto,
	}
}

// PersonaRepository define las operaciones con personas contra el Record Store.
// Todas requieren el token del llamador, que se reenvía a ROBLE sin verificar.
type PersonaRepository interface {
	// FindByDocumento busca una persona por su número de documento.
	// Devuelve (nil, nil) si no existe.
	FindByDocumento(ctx context.Context, token, nroDoc string) (*Persona, error)
	// Insert crea una nueva persona y devuelve el registro almacenado.
	Insert(ctx context.Context, token string, persona *Persona) (*Persona, error)
	// Update aplica los campos indicados sobre una persona existente.
	// Devuelve el registro que reporta el Record Store tras la actualización,
	// o nil si la respuesta no trae el registro.
	Update(ctx context.Context, token, nroDoc string, updates map[string]any) (map[string]any, error)
	// Delete elimina una persona por su número de documento.
	Delete(ctx context.Context, token, nroDoc string) error
	// ListAll devuelve todas las personas registradas.
	ListAll(ctx context.Context, token string) ([]Persona, error)
}
