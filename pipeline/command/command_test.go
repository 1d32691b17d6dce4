// Package command_test contains tests for the command pipeline.
package command_test

import (
	"context"
	"sync"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/apperr"
	"github.com/forja-labs/pkg/pipeline/command"
	"github.com/forja-labs/pkg/workpool"
)

type registerUserInput struct {
	Email string
	Name  string
}

type registerUserOutput struct {
	ID    int64
	Email string
}

// registerUser is a deterministic command used across the scenarios. It
// records the order of its phase calls so ordering can be asserted.
type registerUser struct {
	command.Base[registerUserInput, registerUserOutput]

	mu         sync.Mutex
	phaseOrder []string

	failProcess     bool
	failPostProcess bool
	enriched        bool
}

func (c *registerUser) record(phase string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phaseOrder = append(c.phaseOrder, phase)
}

func (c *registerUser) phases() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.phaseOrder...)
}

func (c *registerUser) PreProcess(context.Context) error {
	c.record("pre_process")

	in := c.Context()
	if in.Email == "" {
		return apperr.Domain("email is required")
	}
	if in.Name == "" {
		// structurally incomplete input
		return apperr.Parsing("name is missing from payload")
	}

	c.SetValid(true)
	return nil
}

func (c *registerUser) Process(context.Context) error {
	c.record("process")

	if c.failProcess {
		return apperr.Infrastructure("users insert failed")
	}

	c.SetResult(registerUserOutput{ID: 1, Email: c.Context().Email})
	c.SetExecuted(true)
	return nil
}

func (c *registerUser) PostProcess(context.Context) error {
	c.record("post_process")

	if c.failPostProcess {
		return apperr.Domain("welcome notification rejected")
	}

	c.enriched = true
	return nil
}

// silentInvalid never marks itself valid and never returns an error from
// PreProcess, exercising the validation gate.
type silentInvalid struct {
	command.Base[string, string]
	processCalls int
}

func (c *silentInvalid) PreProcess(context.Context) error { return nil }

func (c *silentInvalid) Process(context.Context) error {
	c.processCalls++
	return nil
}

func newValidInput() registerUserInput {
	return registerUserInput{Email: "jo@example.com", Name: "Jo"}
}

func TestFlagDefaults(t *testing.T) {
	cmd := &registerUser{}

	assert.False(t, cmd.Valid())
	assert.False(t, cmd.Executed())
	assert.False(t, cmd.Async())
	assert.Nil(t, cmd.Executor())
}

func TestExecuteSync(t *testing.T) {
	tests := []struct {
		name            string
		input           registerUserInput
		failProcess     bool
		failPostProcess bool
		wantErr         bool
		wantErrMsg      string
		wantExecuted    bool
		wantPhases      []string
	}{
		{
			name:         "valid context returns result and marks executed",
			input:        newValidInput(),
			wantExecuted: true,
			wantPhases:   []string{"pre_process", "process", "post_process"},
		},
		{
			name:       "invalid context stops before process",
			input:      registerUserInput{Name: "Jo"},
			wantErr:    true,
			wantErrMsg: "email is required",
			wantPhases: []string{"pre_process"},
		},
		{
			name:       "parsing failure is surfaced like a validation failure",
			input:      registerUserInput{Email: "jo@example.com"},
			wantErr:    true,
			wantErrMsg: "name is missing from payload",
			wantPhases: []string{"pre_process"},
		},
		{
			name:        "process failure leaves executed false and skips post process",
			input:       newValidInput(),
			failProcess: true,
			wantErr:     true,
			wantErrMsg:  "users insert failed",
			wantPhases:  []string{"pre_process", "process"},
		},
		{
			name:            "post process failure propagates as domain error",
			input:           newValidInput(),
			failPostProcess: true,
			wantErr:         true,
			wantErrMsg:      "welcome notification rejected",
			wantExecuted:    true,
			wantPhases:      []string{"pre_process", "process", "post_process"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &registerUser{failProcess: tc.failProcess, failPostProcess: tc.failPostProcess}
			cmd.SetContext(tc.input)

			result, err := command.Execute[registerUserInput, registerUserOutput](t.Context(), cmd)

			if tc.wantErr {
				// every phase failure surfaces as the single unified
				// domain error, carrying the original message
				require.Error(t, err)
				var e errx.ErrorX
				require.ErrorAs(t, err, &e)
				assert.Equal(t, apperr.CodeDomainError, e.Code())
				assert.Contains(t, err.Error(), tc.wantErrMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, registerUserOutput{ID: 1, Email: tc.input.Email}, result)
			}

			assert.Equal(t, tc.wantExecuted, cmd.Executed())
			assert.Equal(t, tc.wantPhases, cmd.phases())
		})
	}
}

func TestValidationGateWithoutError(t *testing.T) {
	// PreProcess returning nil without affirming validity must still stop
	// the pipeline with a domain error.
	cmd := &silentInvalid{}
	cmd.SetContext("anything")

	_, err := command.Execute[string, string](t.Context(), cmd)

	require.Error(t, err)
	assert.True(t, apperr.IsDomain(err))
	assert.Zero(t, cmd.processCalls)
	assert.False(t, cmd.Executed())
}

func TestResultIsIdempotent(t *testing.T) {
	cmd := &registerUser{}
	cmd.SetContext(newValidInput())

	result, err := command.Execute[registerUserInput, registerUserOutput](t.Context(), cmd)
	require.NoError(t, err)

	phasesAfterExecute := cmd.phases()

	assert.Equal(t, result, cmd.Result())
	assert.Equal(t, result, cmd.Result())
	assert.Equal(t, phasesAfterExecute, cmd.phases(), "re-reading the result must not re-run phases")
}

func TestExecuteAsync(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 2, QueueCapacity: 8})
	defer pool.Close()

	t.Run("valid context matches the synchronous outcome", func(t *testing.T) {
		syncCmd := &registerUser{}
		syncCmd.SetContext(newValidInput())
		syncResult, syncErr := command.Execute[registerUserInput, registerUserOutput](t.Context(), syncCmd)
		require.NoError(t, syncErr)

		asyncCmd := &registerUser{}
		asyncCmd.SetContext(newValidInput())
		asyncCmd.Bind(pool)
		asyncCmd.SetAsync(true)

		asyncResult, asyncErr := command.Execute[registerUserInput, registerUserOutput](t.Context(), asyncCmd)

		require.NoError(t, asyncErr)
		assert.Equal(t, syncResult, asyncResult)
		assert.True(t, asyncCmd.Executed())
		assert.Equal(t, []string{"pre_process", "process", "post_process"}, asyncCmd.phases())
	})

	t.Run("invalid context surfaces the same error kind as sync", func(t *testing.T) {
		cmd := &registerUser{}
		cmd.SetContext(registerUserInput{Name: "Jo"})
		cmd.Bind(pool)
		cmd.SetAsync(true)

		_, err := command.Execute[registerUserInput, registerUserOutput](t.Context(), cmd)

		require.Error(t, err)
		assert.True(t, apperr.IsDomain(err))
		assert.False(t, cmd.Executed())
	})

	t.Run("async without a bound executor fails", func(t *testing.T) {
		cmd := &registerUser{}
		cmd.SetContext(newValidInput())
		cmd.SetAsync(true)

		_, err := command.Execute[registerUserInput, registerUserOutput](t.Context(), cmd)

		require.Error(t, err)
		var e errx.ErrorX
		require.ErrorAs(t, err, &e)
		assert.Equal(t, apperr.CodeApplicationError, e.Code())
	})

	t.Run("independent commands run concurrently without interference", func(t *testing.T) {
		const n = 16

		results := make([]registerUserOutput, n)
		errs := make([]error, n)

		var wg sync.WaitGroup
		for i := range n {
			wg.Go(func() {
				cmd := &registerUser{}
				cmd.SetContext(newValidInput())
				cmd.Bind(pool)
				cmd.SetAsync(true)
				results[i], errs[i] = command.Execute[registerUserInput, registerUserOutput](t.Context(), cmd)
			})
		}
		wg.Wait()

		for i := range n {
			require.NoError(t, errs[i])
			assert.Equal(t, registerUserOutput{ID: 1, Email: "jo@example.com"}, results[i])
		}
	})
}

func TestExecuteWith(t *testing.T) {
	var order []string

	mark := func(name string) command.WrapFunc[registerUserInput, registerUserOutput] {
		return func(next command.ExecFunc[registerUserInput, registerUserOutput]) command.ExecFunc[registerUserInput, registerUserOutput] {
			return func(ctx context.Context, cmd command.Command[registerUserInput, registerUserOutput]) (registerUserOutput, error) {
				order = append(order, name)
				return next(ctx, cmd)
			}
		}
	}

	cmd := &registerUser{}
	cmd.SetContext(newValidInput())

	result, err := command.ExecuteWith(t.Context(), cmd, mark("outer"), mark("inner"))

	require.NoError(t, err)
	assert.Equal(t, registerUserOutput{ID: 1, Email: "jo@example.com"}, result)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "registerUser", command.NameOf(&registerUser{}))
	assert.Equal(t, "silentInvalid", command.NameOf(silentInvalid{}))
}
