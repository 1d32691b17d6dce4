package val

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

const minPasswordLen = 8

func registerCustomValidations(v *validator.Validate) {
	// registration only fails for an empty tag name
	_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
}

// IsStrongPassword reports whether the password has at least 8 characters
// including an upper-case letter, a lower-case letter, a digit and a
// special character.
func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
