package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validators return "" when the value is acceptable and a user-facing
// Spanish message otherwise, so form state can bind the result straight
// to a field error.

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ ]+$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{8,9}$`)
)

// ValidateName checks that a name is non-blank and contains only
// letters and spaces, including accented Spanish characters.
func ValidateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "El nombre es obligatorio"
	}
	if !nameRegex.MatchString(name) {
		return "El nombre solo puede contener letras y espacios"
	}
	return ""
}

// ValidateEmail checks that an email is non-blank and well formed.
func ValidateEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return "El correo es obligatorio"
	}
	if !emailRegex.MatchString(email) {
		return "El correo no es válido"
	}
	return ""
}

// ValidatePhone checks a Chilean phone number: digits only, 8 or 9 long.
func ValidatePhone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return "El teléfono es obligatorio"
	}
	if !phoneRegex.MatchString(phone) {
		return "El teléfono debe tener 8 o 9 dígitos"
	}
	return ""
}

// ValidatePassword checks length >= 8, at least one uppercase, one
// lowercase and one digit, and no whitespace anywhere.
func ValidatePassword(password string) string {
	if password == "" {
		return "La contraseña es obligatoria"
	}
	if len([]rune(password)) < 8 {
		return "La contraseña debe tener al menos 8 caracteres"
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return "La contraseña no puede contener espacios"
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return "La contraseña debe incluir una mayúscula"
	}
	if !hasLower {
		return "La contraseña debe incluir una minúscula"
	}
	if !hasDigit {
		return "La contraseña debe incluir un número"
	}
	return ""
}

// ValidateConfirmPassword checks the confirmation matches the password exactly.
func ValidateConfirmPassword(password, confirm string) string {
	if confirm == "" {
		return "Debes confirmar la contraseña"
	}
	if confirm != password {
		return "Las contraseñas no coinciden"
	}
	return ""
}
