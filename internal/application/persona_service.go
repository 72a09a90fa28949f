package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/rs/zerolog"
)

// PersonaService orquesta las operaciones CRUD sobre personas contra el
// Record Store y dispara la auditoría correspondiente tras cada operación
// exitosa. El log de auditoría es de mejor esfuerzo: su fallo nunca altera
// el resultado de la operación.
type PersonaService struct {
	repo      domain.PersonaRepository
	validator *Validator
	logs      *LogService
	log       zerolog.Logger
}

// NewPersonaService crea una nueva instancia del servicio de personas.
func NewPersonaService(repo domain.PersonaRepository, validator *Validator, logs *LogService, log zerolog.Logger) *PersonaService {
	return &PersonaService{
		repo:      repo,
		validator: validator,
		logs:      logs,
		log:       log,
	}
}

// Crear valida el registro, verifica unicidad por nro_doc, lo inserta y
// audita la operación. Crear no es idempotente: un segundo intento con el
// mismo documento falla con ErrDocumentoDuplicado.
func (s *PersonaService) Crear(ctx context.Context, token string, persona *domain.Persona) (*domain.Persona, error) {
	if motivos := s.validator.ValidarPersona(persona.Campos()); len(motivos) > 0 {
		return nil, &domain.ValidationError{Motivos: motivos}
	}

	existente, err := s.repo.FindByDocumento(ctx, token, persona.NroDoc)
	if err != nil {
		return nil, fmt.Errorf("error verificando documento: %w", err)
	}
	if existente != nil {
		return nil, domain.ErrDocumentoDuplicado
	}

	creada, err := s.repo.Insert(ctx, token, persona)
	if err != nil {
		return nil, fmt.Errorf("error insertando persona: %w", err)
	}

	entrada := s.logs.Preparar(domain.OperacionCrear, EmailDeToken(token), persona.NroDoc)
	entrada.Descripcion = fmt.Sprintf("Creada persona %s %s", persona.PrimerNombre, persona.Apellidos)
	entrada.DatosNuevos = creada
	s.logs.RegistrarMejorEsfuerzo(ctx, token, entrada)

	return creada, nil
}

// Consultar busca una persona por documento. Solo las lecturas exitosas se
// auditan: un documento inexistente devuelve ErrPersonaNoEncontrada sin
// dejar rastro en el log.
func (s *PersonaService) Consultar(ctx context.Context, token, nroDoc string) (*domain.Persona, error) {
	persona, err := s.repo.FindByDocumento(ctx, token, nroDoc)
	if err != nil {
		return nil, fmt.Errorf("error consultando persona: %w", err)
	}
	if persona == nil {
		return nil, domain.ErrPersonaNoEncontrada
	}

	entrada := s.logs.Preparar(domain.OperacionConsultar, EmailDeToken(token), nroDoc)
	entrada.Descripcion = "Consultada información personal"
	s.logs.RegistrarMejorEsfuerzo(ctx, token, entrada)

	return persona, nil
}

// Modificar aplica una actualización parcial. Los campos nulos se descartan;
// si no queda ninguno la operación falla con ErrSinCambios sin tocar el
// Record Store. Audita los nombres de los campos cambiados junto con los
// snapshots previo y posterior.
func (s *PersonaService) Modificar(ctx context.Context, token, nroDoc string, campos map[string]any) (*domain.Persona, error) {
	existente, err := s.repo.FindByDocumento(ctx, token, nroDoc)
	if err != nil {
		return nil, fmt.Errorf("error consultando persona: %w", err)
	}
	if existente == nil {
		return nil, domain.ErrPersonaNoEncontrada
	}

	cambios := map[string]any{}
	for campo, valor := range campos {
		if valor == nil {
			continue
		}
		cambios[campo] = valor
	}
	if len(cambios) == 0 {
		return nil, domain.ErrSinCambios
	}

	respuesta, err := s.repo.Update(ctx, token, nroDoc, cambios)
	if err != nil {
		return nil, fmt.Errorf("error actualizando persona: %w", err)
	}

	actualizada := aplicarCambios(existente, cambios)

	entrada := s.logs.Preparar(domain.OperacionModificar, EmailDeToken(token), nroDoc)
	entrada.Descripcion = "Campos modificados: " + strings.Join(nombresOrdenados(cambios), ", ")
	entrada.DatosAnteriores = existente
	if respuesta != nil {
		entrada.DatosNuevos = respuesta
	} else {
		entrada.DatosNuevos = actualizada
	}
	s.logs.RegistrarMejorEsfuerzo(ctx, token, entrada)

	return actualizada, nil
}

// Eliminar borra una persona por documento. El borrado es inmediato e
// irreversible desde este sistema; eliminar un documento inexistente es
// ErrPersonaNoEncontrada, no un éxito.
func (s *PersonaService) Eliminar(ctx context.Context, token, nroDoc string) error {
	existente, err := s.repo.FindByDocumento(ctx, token, nroDoc)
	if err != nil {
		return fmt.Errorf("error consultando persona: %w", err)
	}
	if existente == nil {
		return domain.ErrPersonaNoEncontrada
	}

	if err := s.repo.Delete(ctx, token, nroDoc); err != nil {
		return fmt.Errorf("error eliminando persona: %w", err)
	}

	entrada := s.logs.Preparar(domain.OperacionEliminar, EmailDeToken(token), nroDoc)
	entrada.Descripcion = "Eliminada persona del sistema"
	entrada.DatosAnteriores = existente
	s.logs.RegistrarMejorEsfuerzo(ctx, token, entrada)

	return nil
}

// aplicarCambios produce el estado posterior de la persona aplicando los
// campos de texto conocidos sobre una copia del estado previo.
func aplicarCambios(previa *domain.Persona, cambios map[string]any) *domain.Persona {
	actualizada := *previa

	for campo, valor := range cambios {
		texto, ok := valor.(string)
		if !ok {
			continue
		}
		switch campo {
		case "primer_nombre":
			actualizada.PrimerNombre = texto
		case "segundo_nombre":
			actualizada.SegundoNombre = texto
		case "apellidos":
			actualizada.Apellidos = texto
		case "fecha_nacimiento":
			actualizada.FechaNacimiento = texto
		case "genero":
			actualizada.Genero = texto
		case "correo":
			actualizada.Correo = texto
		case "celular":
			actualizada.Celular = texto
		case "nro_doc":
			actualizada.NroDoc = texto
		case "tipo_doc":
			actualizada.TipoDoc = texto
		case "foto":
			actualizada.Foto = texto
		}
	}

	return &actualizada
}

func nombresOrdenados(campos map[string]any) []string {
	nombres := make([]string, 0, len(campos))
	for nombre := range campos {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)
	return nombres
}
