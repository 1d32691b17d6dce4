package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/token"
)

func TestNewOpaqueToken(t *testing.T) {
	t1 := token.NewOpaqueToken()
	t2 := token.NewOpaqueToken()

	require.NotEmpty(t, t1)
	require.NotEmpty(t, t2)
	assert.NotEqual(t, t1, t2)
	assert.NotContains(t, t1, "=")
}

func TestServiceToken(t *testing.T) {
	tok := token.ServiceToken("billing", 11)

	assert.Equal(t, tok, token.ServiceToken("billing", 11))
	assert.NotEqual(t, tok, token.ServiceToken("billing", 12))
	assert.NotEqual(t, tok, token.ServiceToken("orders", 11))
}

func TestValidateServiceToken(t *testing.T) {
	tok := token.ServiceToken("billing", 11)

	assert.True(t, token.ValidateServiceToken("billing", 11, tok))
	assert.False(t, token.ValidateServiceToken("billing", 12, tok))
	assert.False(t, token.ValidateServiceToken("billing", 11, "forged"))
}
