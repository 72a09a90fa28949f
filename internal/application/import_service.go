package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/EmmanuelUNI/Proyecto-gestion-de-datos-DS2/internal/domain"
	"github.com/rs/zerolog"
)

// ImportService procesa importaciones masivas de personas desde texto
// delimitado con fila de encabezado. Cada fila se valida e inserta de forma
// independiente y en orden; un fallo en una fila se captura en el reporte y
// nunca aborta el resto del archivo.
type ImportService struct {
	repo      domain.PersonaRepository
	validator *Validator
	logs      *LogService
	log       zerolog.Logger
}

// NewImportService crea una nueva instancia del servicio de importación.
func NewImportService(repo domain.PersonaRepository, validator *Validator, logs *LogService, log zerolog.Logger) *ImportService {
	return &ImportService{
		repo:      repo,
		validator: validator,
		logs:      logs,
		log:       log,
	}
}

// ImportarArchivo parsea el contenido como texto delimitado y procesa fila a
// fila. Solo un archivo imposible de parsear es un error de nivel superior;
// los rechazos por fila viven en el reporte. Los índices de fila son 1-based
// y cuentan únicamente filas de datos.
func (s *ImportService) ImportarArchivo(ctx context.Context, token string, delimitador rune, contenido string) (*domain.ImportReport, error) {
	lector := csv.NewReader(strings.NewReader(contenido))
	lector.Comma = delimitador
	lector.FieldsPerRecord = -1
	lector.TrimLeadingSpace = true

	filas, err := lector.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo: %w", err)
	}
	if len(filas) == 0 {
		return nil, fmt.Errorf("el archivo no tiene fila de encabezado")
	}

	encabezado := filas[0]
	for i := range encabezado {
		encabezado[i] = strings.TrimSpace(encabezado[i])
	}

	datos := filas[1:]
	reporte := &domain.ImportReport{
		Total:   len(datos),
		Errores: []domain.ImportError{},
	}

	for indice, fila := range datos {
		numeroFila := indice + 1

		campos := map[string]string{}
		for columna, nombre := range encabezado {
			if columna < len(fila) {
				campos[nombre] = strings.TrimSpace(fila[columna])
			}
		}

		if motivos := s.validator.ValidarPersona(campos); len(motivos) > 0 {
			reporte.Errores = append(reporte.Errores, domain.ImportError{Fila: numeroFila, Motivo: motivos})
			continue
		}

		existente, err := s.repo.FindByDocumento(ctx, token, campos["nro_doc"])
		if err != nil {
			reporte.Errores = append(reporte.Errores, domain.ImportError{Fila: numeroFila, Motivo: []string{err.Error()}})
			continue
		}
		if existente != nil {
			reporte.Errores = append(reporte.Errores, domain.ImportError{Fila: numeroFila, Motivo: []string{"Documento ya existe"}})
			continue
		}

		persona := personaDesdeCampos(campos)
		creada, err := s.repo.Insert(ctx, token, persona)
		if err != nil {
			reporte.Errores = append(reporte.Errores, domain.ImportError{Fila: numeroFila, Motivo: []string{err.Error()}})
			continue
		}

		reporte.Insertadas++

		entrada := s.logs.Preparar(domain.OperacionCrear, EmailDeToken(token), persona.NroDoc)
		entrada.Descripcion = fmt.Sprintf("Creada persona %s %s (importación masiva)", persona.PrimerNombre, persona.Apellidos)
		entrada.DatosNuevos = creada
		s.logs.RegistrarMejorEsfuerzo(ctx, token, entrada)
	}

	return reporte, nil
}

func personaDesdeCampos(campos map[string]string) *domain.Persona {
	return &domain.Persona{
		PrimerNombre:    campos["primer_nombre"],
		SegundoNombre:   campos["segundo_nombre"],
		Apellidos:       campos["apellidos"],
		FechaNacimiento: campos["fecha_nacimiento"],
		Genero:          campos["genero"],
		Correo:          campos["correo"],
		Celular:         campos["celular"],
		NroDoc:          campos["nro_doc"],
		TipoDoc:         campos["tipo_doc"],
		Foto:            campos["foto"],
	}
}
