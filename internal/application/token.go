package application

import "github.com/golang-jwt/jwt/v5"

// EmailDesconocido es el valor centinela cuando el token no trae email legible.
const EmailDesconocido = "desconocido"

// ExtraerEmail intenta leer el claim "email" del token sin verificar la firma.
// Es estrictamente informativo (se usa para poblar usuario_email en el log de
// auditoría) y NO es una identidad verificada: nunca debe usarse para
// decisiones de autorización. La verificación real la hace ROBLE.
func ExtraerEmail(token string) (string, bool) {
	parseado, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", false
	}

	claims, ok := parseado.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", false
	}

	return email, true
}

// EmailDeToken devuelve el email del token o el centinela "desconocido".
func EmailDeToken(token string) string {
	if email, ok := ExtraerEmail(token); ok {
		return email
	}
	return EmailDesconocido
}
