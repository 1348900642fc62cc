package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	assert.Empty(t, ValidateName("María José Núñez"))
	assert.Empty(t, ValidateName("Juan Perez"))
	assert.NotEmpty(t, ValidateName(""))
	assert.NotEmpty(t, ValidateName("   "))
	assert.NotEmpty(t, ValidateName("Juan123"))
	assert.NotEmpty(t, ValidateName("Juan_Perez"))
}

func TestValidateEmail(t *testing.T) {
	assert.Empty(t, ValidateEmail("a@b.com"))
	assert.Empty(t, ValidateEmail("maria.jose+pyme@empresa.cl"))
	assert.NotEmpty(t, ValidateEmail(""))
	assert.NotEmpty(t, ValidateEmail("not-an-email"))
	assert.NotEmpty(t, ValidateEmail("falta@dominio"))
}

func TestValidatePhone(t *testing.T) {
	assert.Empty(t, ValidatePhone("987654321")) // 9 digits
	assert.Empty(t, ValidatePhone("22345678"))  // 8 digits
	assert.NotEmpty(t, ValidatePhone(""))
	assert.NotEmpty(t, ValidatePhone("1234567"))     // too short
	assert.NotEmpty(t, ValidatePhone("1234567890"))  // too long
	assert.NotEmpty(t, ValidatePhone("+5698765432")) // non-digit
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Passw0rd"))
	assert.NotEmpty(t, ValidatePassword(""))
	assert.NotEmpty(t, ValidatePassword("short1"))        // length
	assert.NotEmpty(t, ValidatePassword("alllowercase1")) // no uppercase
	assert.NotEmpty(t, ValidatePassword("NoDigitsHere"))  // no digit
	assert.NotEmpty(t, ValidatePassword("Has Space1"))    // embedded whitespace
	assert.NotEmpty(t, ValidatePassword("ALLUPPERCASE1")) // no lowercase
}

func TestValidateConfirmPassword(t *testing.T) {
	assert.Empty(t, ValidateConfirmPassword("Passw0rd", "Passw0rd"))
	assert.NotEmpty(t, ValidateConfirmPassword("Passw0rd", ""))
	assert.NotEmpty(t, ValidateConfirmPassword("Passw0rd", "passw0rd"))
}
