package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/rs/zerolog"
)

// GeneradorTexto abstrae el proveedor de lenguaje generativo.
type GeneradorTexto interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

const promptSistema = `Eres un asistente inteligente que responde preguntas sobre
empleados y datos personales de una empresa.
Responde de forma clara, precisa y amable basándote en los datos proporcionados.
Si no tienes información para responder, dilo claramente.`

// RespuestaNoHayDatos es la respuesta fija cuando no hay registros de contexto.
const RespuestaNoHayDatos = "No hay datos disponibles en el sistema"

// RespuestaRAG es el resultado de una consulta en lenguaje natural.
type RespuestaRAG struct {
	Pregunta          string
	Respuesta         string
	ContextoRegistros int
	Modelo            string
}

// RAGService responde preguntas en lenguaje natural sobre las personas
// registradas. "RAG" aquí es literal: el conjunto completo de registros se
// vuelca como contexto en el prompt, sin paso de recuperación ni ranking,
// lo que acota su utilidad a conjuntos pequeños.
type RAGService struct {
	repo      domain.PersonaRepository
	generador GeneradorTexto
	logs      *LogService
	log       zerolog.Logger
}

// NewRAGService crea una nueva instancia del servicio de consulta RAG.
func NewRAGService(repo domain.PersonaRepository, generador GeneradorTexto, logs *LogService, log zerolog.Logger) *RAGService {
	return &RAGService{
		repo:      repo,
		generador: generador,
		logs:      logs,
		log:       log,
	}
}

// Consultar arma el contexto con todas las personas, genera la respuesta con
// el modelo y audita la consulta (CONSULTAR_RAG, sin documento afectado).
// Con cero registros responde de inmediato sin llamar al modelo.
func (s *RAGService) Consultar(ctx context.Context, token, pregunta string) (*RespuestaRAG, error) {
	personas, err := s.repo.ListAll(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo contexto: %w", err)
	}

	if len(personas) == 0 {
		s.log.Warn().Msg("no se encontraron personas para el contexto RAG")
		return &RespuestaRAG{
			Pregunta:  pregunta,
			Respuesta: RespuestaNoHayDatos,
			Modelo:    s.generador.Model(),
		}, nil
	}

	respuesta, err := s.generador.GenerateContent(ctx, s.construirPrompt(pregunta, personas))
	if err != nil {
		return nil, fmt.Errorf("error generando respuesta: %w", err)
	}

	entrada := s.logs.Preparar(domain.OperacionConsultarRAG, EmailDeToken(token), "")
	entrada.PreguntaRAG = "Pregunta: " + pregunta
	entrada.RespuestaRAG = respuesta
	s.logs.RegistrarMejorEsfuerzo(ctx, token, entrada)

	return &RespuestaRAG{
		Pregunta:          pregunta,
		Respuesta:         respuesta,
		ContextoRegistros: len(personas),
		Modelo:            s.generador.Model(),
	}, nil
}

func (s *RAGService) construirPrompt(pregunta string, personas []domain.Persona) string {
	return fmt.Sprintf(`%s

Contexto - Datos disponibles:
%s

Pregunta del usuario: %s

Responde basándote SOLO en los datos proporcionados arriba. (respuesta breve y concisa)`,
		promptSistema, formatearContexto(personas), pregunta)
}

// formatearContexto vuelca los registros como líneas numeradas de texto plano.
func formatearContexto(personas []domain.Persona) string {
	lineas := make([]string, 0, len(personas)+1)
	lineas = append(lineas, fmt.Sprintf("Total de registros: %d\n", len(personas)))

	for i, persona := range personas {
		lineas = append(lineas, fmt.Sprintf(
			"%d. %s %s (Documento: %s) - Fecha de nacimiento: %s - Género: %s - Email: %s",
			i+1,
			persona.PrimerNombre,
			persona.Apellidos,
			persona.NroDoc,
			persona.FechaNacimiento,
			persona.Genero,
			persona.Correo,
		))
	}

	return strings.Join(lineas, "\n")
}
