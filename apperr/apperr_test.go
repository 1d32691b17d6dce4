package apperr_test

import (
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/apperr"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var e errx.ErrorX
	require.True(t, errors.As(err, &e))
	return e.Code()
}

func typeOf(t *testing.T, err error) errx.Type {
	t.Helper()
	var e errx.ErrorX
	require.True(t, errors.As(err, &e))
	return e.Type()
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantType errx.Type
	}{
		{"domain", apperr.Domain("invalid state"), apperr.CodeDomainError, errx.T_Validation},
		{"domainf", apperr.Domainf("balance is %d", -5), apperr.CodeDomainError, errx.T_Validation},
		{"parsing", apperr.Parsing("malformed payload"), apperr.CodeParsingError, errx.T_Validation},
		{"infrastructure", apperr.Infrastructure("db unreachable"), apperr.CodeInfrastructureError, errx.T_Internal},
		{"application", apperr.Application("handler not registered"), apperr.CodeApplicationError, errx.T_Internal},
		{"applicationf", apperr.Applicationf("missing dep %q", "repo"), apperr.CodeApplicationError, errx.T_Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.wantCode, codeOf(t, tt.err))
			assert.Equal(t, tt.wantType, typeOf(t, tt.err))
		})
	}
}

func TestWrapConstructors(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name     string
		wrap     func(error) error
		wantCode string
	}{
		{"domain", apperr.DomainWrap, apperr.CodeDomainError},
		{"parsing", apperr.ParsingWrap, apperr.CodeParsingError},
		{"infrastructure", apperr.InfrastructureWrap, apperr.CodeInfrastructureError},
		{"application", apperr.ApplicationWrap, apperr.CodeApplicationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wrap(cause)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, codeOf(t, err))
			assert.Contains(t, err.Error(), "connection reset")
		})
	}
}

func TestWrapNilPassesThrough(t *testing.T) {
	assert.NoError(t, apperr.DomainWrap(nil))
	assert.NoError(t, apperr.ParsingWrap(nil))
	assert.NoError(t, apperr.InfrastructureWrap(nil))
	assert.NoError(t, apperr.ApplicationWrap(nil))
}

func TestDomainWrapKeepsExistingDomainError(t *testing.T) {
	orig := apperr.Domain("already domain")
	assert.Equal(t, orig, apperr.DomainWrap(orig))
}

func TestIsDomain(t *testing.T) {
	assert.True(t, apperr.IsDomain(apperr.Domain("x")))
	assert.True(t, apperr.IsDomain(apperr.Parsing("x")))
	assert.False(t, apperr.IsDomain(apperr.Infrastructure("x")))
	assert.False(t, apperr.IsDomain(errors.New("plain")))
	assert.False(t, apperr.IsDomain(nil))
}

func TestIsInfrastructure(t *testing.T) {
	assert.True(t, apperr.IsInfrastructure(apperr.Infrastructure("x")))
	assert.False(t, apperr.IsInfrastructure(apperr.Application("x")))
	assert.False(t, apperr.IsInfrastructure(nil))
}
