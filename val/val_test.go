// Package val_test contains tests for the val package.
package val_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/val"
)

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role"     validate:"oneof=admin member"`
}

func TestValidateSchema(t *testing.T) {
	t.Run("valid schema passes", func(t *testing.T) {
		err := val.ValidateSchema(signupRequest{
			Email:    "jo@example.com",
			Name:     "Jo",
			Password: "Sup3r-secret",
			Role:     "member",
		})

		require.NoError(t, err)
	})

	t.Run("violations are reported per field using tag names", func(t *testing.T) {
		err := val.ValidateSchema(signupRequest{
			Email:    "not-an-email",
			Name:     "J",
			Password: "weak",
			Role:     "root",
		})

		require.Error(t, err)

		var e errx.ErrorX
		require.ErrorAs(t, err, &e)
		assert.Equal(t, val.CodeValidationFailed, e.Code())

		fields := e.Fields()
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "Must be at least 2 characters", fields["name"])
		assert.Contains(t, fields["password"], "8 characters")
		assert.Contains(t, fields["role"], "admin")
	})

	t.Run("missing required fields", func(t *testing.T) {
		err := val.ValidateSchema(signupRequest{Role: "admin"})

		require.Error(t, err)

		var e errx.ErrorX
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "This field is required", e.Fields()["email"])
	})
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "strong", password: "Sup3r-secret", want: true},
		{name: "too short", password: "S3c-r!t", want: false},
		{name: "no uppercase", password: "sup3r-secret", want: false},
		{name: "no digit", password: "Super-secret", want: false},
		{name: "no special", password: "Sup3rsecret", want: false},
		{name: "empty", password: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, val.IsStrongPassword(tc.password))
		})
	}
}
