// Package query_test contains tests for the query pipeline.
package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/apperr"
	"github.com/forja-labs/pkg/pipeline/query"
)

type userByIDInput struct {
	ID int64
}

type userByIDOutput struct {
	ID   int64
	Name string
}

// userByID is a stateless query with call counters so phase invocations
// can be asserted.
type userByID struct {
	preCalls     int
	processCalls int
}

func (q *userByID) PreProcess(_ context.Context, c *userByIDInput) error {
	q.preCalls++

	if c == nil {
		return apperr.Domain("input context is required")
	}
	if c.ID <= 0 {
		return apperr.Domain("id must be positive")
	}
	return nil
}

func (q *userByID) Process(_ context.Context, c *userByIDInput) (userByIDOutput, error) {
	q.processCalls++
	return userByIDOutput{ID: c.ID, Name: "Jo"}, nil
}

// userByIDEnriched additionally implements PostProcess to transform the result.
type userByIDEnriched struct {
	userByID
	postCalls int
}

func (q *userByIDEnriched) PostProcess(_ context.Context, _ *userByIDInput, r userByIDOutput) (userByIDOutput, error) {
	q.postCalls++
	r.Name = r.Name + " (verified)"
	return r, nil
}

func TestExecute(t *testing.T) {
	t.Run("returns the processed result", func(t *testing.T) {
		q := &userByID{}

		result, err := query.Execute[*userByIDInput, userByIDOutput](t.Context(), q, &userByIDInput{ID: 7})

		require.NoError(t, err)
		assert.Equal(t, userByIDOutput{ID: 7, Name: "Jo"}, result)
		assert.Equal(t, 1, q.preCalls)
		assert.Equal(t, 1, q.processCalls)
	})

	t.Run("same context yields equal results on repeated calls", func(t *testing.T) {
		q := &userByID{}
		input := &userByIDInput{ID: 7}

		first, err := query.Execute[*userByIDInput, userByIDOutput](t.Context(), q, input)
		require.NoError(t, err)

		second, err := query.Execute[*userByIDInput, userByIDOutput](t.Context(), q, input)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 2, q.processCalls)
	})

	t.Run("nil context fails validation before process runs", func(t *testing.T) {
		q := &userByID{}

		_, err := query.Execute[*userByIDInput, userByIDOutput](t.Context(), q, nil)

		require.Error(t, err)
		assert.True(t, apperr.IsDomain(err))
		assert.Equal(t, 1, q.preCalls)
		assert.Zero(t, q.processCalls)
	})

	t.Run("invalid context error propagates unchanged", func(t *testing.T) {
		q := &userByID{}

		_, err := query.Execute[*userByIDInput, userByIDOutput](t.Context(), q, &userByIDInput{ID: -1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "id must be positive")
		assert.Zero(t, q.processCalls)
	})

	t.Run("post process refines the result when implemented", func(t *testing.T) {
		q := &userByIDEnriched{}

		result, err := query.Execute[*userByIDInput, userByIDOutput](t.Context(), q, &userByIDInput{ID: 7})

		require.NoError(t, err)
		assert.Equal(t, "Jo (verified)", result.Name)
		assert.Equal(t, 1, q.postCalls)
	})

	t.Run("post process is skipped when an earlier step fails", func(t *testing.T) {
		q := &userByIDEnriched{}

		_, err := query.Execute[*userByIDInput, userByIDOutput](t.Context(), q, nil)

		require.Error(t, err)
		assert.Zero(t, q.postCalls)
	})
}

func TestExecuteWith(t *testing.T) {
	var order []string

	mark := func(name string) query.WrapFunc[*userByIDInput, userByIDOutput] {
		return func(next query.ExecFunc[*userByIDInput, userByIDOutput]) query.ExecFunc[*userByIDInput, userByIDOutput] {
			return func(ctx context.Context, q query.Query[*userByIDInput, userByIDOutput], c *userByIDInput) (userByIDOutput, error) {
				order = append(order, name)
				return next(ctx, q, c)
			}
		}
	}

	q := &userByID{}

	result, err := query.ExecuteWith(t.Context(), query.Query[*userByIDInput, userByIDOutput](q), &userByIDInput{ID: 3}, mark("outer"), mark("inner"))

	require.NoError(t, err)
	assert.Equal(t, userByIDOutput{ID: 3, Name: "Jo"}, result)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
