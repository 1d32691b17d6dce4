// Package respond_test contains tests for the respond package.
package respond_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/respond"
	"github.com/forja-labs/pkg/respond/msgkey"
)

type product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Without a registered language map, messages fall back to the key itself.

func TestSuccess(t *testing.T) {
	env := respond.Success(t.Context(), product{ID: 1, Name: "mate"})

	assert.True(t, env.OK)
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Equal(t, msgkey.SuccessOperation, env.Message)
	require.NotNil(t, env.Datum)
	assert.Equal(t, product{ID: 1, Name: "mate"}, *env.Datum)
	assert.Nil(t, env.Items)
	assert.Nil(t, env.Count)
}

func TestCreated(t *testing.T) {
	env := respond.Created(t.Context(), product{ID: 2, Name: "yerba"})

	assert.True(t, env.OK)
	assert.Equal(t, http.StatusCreated, env.Code)
	assert.Equal(t, msgkey.SuccessCreated, env.Message)
	require.NotNil(t, env.Datum)
}

func TestSuccessList(t *testing.T) {
	t.Run("with items", func(t *testing.T) {
		env := respond.SuccessList(t.Context(), []product{{ID: 1}, {ID: 2}})

		assert.True(t, env.OK)
		require.NotNil(t, env.Count)
		assert.Equal(t, 2, *env.Count)
		assert.Len(t, env.Items, 2)
	})

	t.Run("nil list becomes an empty list", func(t *testing.T) {
		env := respond.SuccessList[product](t.Context(), nil)

		require.NotNil(t, env.Count)
		assert.Zero(t, *env.Count)
		assert.NotNil(t, env.Items)
		assert.Empty(t, env.Items)
	})
}

func TestSuccessPaginated(t *testing.T) {
	t.Run("page with data", func(t *testing.T) {
		items := []product{{ID: 1}, {ID: 2}}

		env := respond.SuccessPaginated(t.Context(), items, 11, 2, 5)

		assert.True(t, env.OK)
		assert.Equal(t, msgkey.SuccessPaginated, env.Message)
		require.NotNil(t, env.Count)
		assert.Equal(t, 11, *env.Count)
		assert.NotEmpty(t, env.Totals)
	})

	t.Run("empty result keeps the envelope shape", func(t *testing.T) {
		env := respond.SuccessPaginated(t.Context(), []product{}, 0, 1, 5)

		assert.True(t, env.OK)
		assert.Equal(t, msgkey.SuccessNoResults, env.Message)
		require.NotNil(t, env.Count)
		assert.Zero(t, *env.Count)
		assert.Empty(t, env.Totals)
	})
}

func TestNoContent(t *testing.T) {
	env := respond.NoContent[product](t.Context())

	assert.True(t, env.OK)
	assert.Equal(t, http.StatusNoContent, env.Code)
	assert.Nil(t, env.Datum)
	assert.Nil(t, env.Items)
}

func TestError(t *testing.T) {
	env := respond.Error[product](http.StatusNotFound, "record not found")

	assert.False(t, env.OK)
	assert.Equal(t, http.StatusNotFound, env.Code)
	assert.Equal(t, "record not found", env.Message)
	assert.Nil(t, env.Datum)
}

func TestErrorKey(t *testing.T) {
	env := respond.ErrorKey[product](t.Context(), http.StatusForbidden, msgkey.ErrorForbidden)

	assert.False(t, env.OK)
	assert.Equal(t, msgkey.ErrorForbidden, env.Message)
}
