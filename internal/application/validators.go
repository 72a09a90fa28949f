package application

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// FormatoFecha es el formato canónico de fecha_nacimiento (YYYY-MM-DD).
const FormatoFecha = "2006-01-02"

// MaxFotoBytes es el tamaño máximo de la foto una vez decodificada (2 MiB).
const MaxFotoBytes = 2 * 1024 * 1024

var (
	correoRegexp  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitosRegexp = regexp.MustCompile(`^[0-9]+$`)

	generosValidos   = []string{"Masculino", "Femenino", "No binario", "Prefiero no reportar"}
	tiposDocValidos  = []string{"Tarjeta de identidad", "Cédula"}
	camposRequeridos = []string{
		"primer_nombre", "apellidos", "fecha_nacimiento", "genero",
		"correo", "celular", "nro_doc", "tipo_doc",
	}
)

// Validator valida registros de persona campo a campo. Es puro: no hace I/O
// ni guarda estado entre llamadas.
type Validator struct{}

// NewValidator crea una nueva instancia del validador de personas.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidarPersona evalúa todas las reglas sobre el registro candidato y
// devuelve la lista completa de motivos de rechazo (vacía si es válido).
// Las reglas se evalúan todas, en orden fijo, para que una sola llamada
// reporte todos los problemas a la vez. Las reglas por campo solo aplican
// sobre valores presentes; la ausencia la cubre la regla de requeridos.
func (v *Validator) ValidarPersona(campos map[string]string) []string {
	motivos := []string{}

	for _, campo := range camposRequeridos {
		if strings.TrimSpace(campos[campo]) == "" {
			motivos = append(motivos, fmt.Sprintf("%s es requerido", campo))
		}
	}

	motivos = append(motivos, v.validarNombre(campos["primer_nombre"], "primer_nombre", 30)...)
	motivos = append(motivos, v.validarNombre(campos["segundo_nombre"], "segundo_nombre", 30)...)
	motivos = append(motivos, v.validarNombre(campos["apellidos"], "apellidos", 60)...)

	if fecha := campos["fecha_nacimiento"]; fecha != "" {
		if _, err := time.Parse(FormatoFecha, fecha); err != nil {
			motivos = append(motivos, "Formato de fecha debe ser YYYY-MM-DD")
		}
	}

	if genero := campos["genero"]; genero != "" && !contiene(generosValidos, genero) {
		motivos = append(motivos, "Género debe ser uno de: "+strings.Join(generosValidos, ", "))
	}

	if correo := campos["correo"]; correo != "" && !correoRegexp.MatchString(correo) {
		motivos = append(motivos, "Formato de correo inválido")
	}

	if celular := campos["celular"]; celular != "" {
		if len(celular) != 10 || !digitosRegexp.MatchString(celular) {
			motivos = append(motivos, "Celular debe ser 10 dígitos")
		}
	}

	if nroDoc := campos["nro_doc"]; nroDoc != "" {
		if len(nroDoc) > 10 || !digitosRegexp.MatchString(nroDoc) {
			motivos = append(motivos, "Número de documento inválido (máx 10 dígitos)")
		}
	}

	if tipoDoc := campos["tipo_doc"]; tipoDoc != "" && !contiene(tiposDocValidos, tipoDoc) {
		motivos = append(motivos, "Tipo de documento debe ser: "+strings.Join(tiposDocValidos, ", "))
	}

	if foto := campos["foto"]; foto != "" {
		decodificada, err := base64.StdEncoding.DecodeString(foto)
		switch {
		case err != nil:
			motivos = append(motivos, "Foto no es base64 válido")
		case len(decodificada) > MaxFotoBytes:
			motivos = append(motivos, "Foto excede el tamaño máximo (2 MiB)")
		}
	}

	return motivos
}

// validarNombre rechaza dígitos y excesos de longitud en campos de nombre.
func (v *Validator) validarNombre(valor, campo string, maxChars int) []string {
	if valor == "" {
		return nil
	}

	var motivos []string
	for _, caracter := range valor {
		if unicode.IsDigit(caracter) {
			motivos = append(motivos, fmt.Sprintf("%s no puede contener números", campo))
			break
		}
	}
	if len([]rune(valor)) > maxChars {
		motivos = append(motivos, fmt.Sprintf("%s no puede exceder %d caracteres", campo, maxChars))
	}

	return motivos
}

func contiene(valores []string, valor string) bool {
	for _, candidato := range valores {
		if candidato == valor {
			return true
		}
	}
	return false
}
