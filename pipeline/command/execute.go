package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/forja-labs/pkg/apperr"
	"github.com/forja-labs/pkg/logger"
	"github.com/forja-labs/pkg/workpool"
)

// ExecFunc runs a command through the pipeline. Execute is the canonical
// implementation; wrappers compose around it.
type ExecFunc[C Context, R Result] func(context.Context, Command[C, R]) (R, error)

// WrapFunc defines a middleware function for wrapping command execution.
type WrapFunc[C Context, R Result] func(ExecFunc[C, R]) ExecFunc[C, R]

// Execute runs cmd through the three-phase sequence and returns its result.
//
// Synchronous mode runs inline: PreProcess, then Process if the instance is
// valid, then PostProcess if the instance is executed. Any phase failure is
// logged once with the command identity and returned as a single domain error
// wrapping the original cause.
//
// Asynchronous mode submits the identical sequence to the bound workpool and
// blocks on its completion handle, so the caller observes the same outcome
// apart from which goroutine performed the work. The wait is indefinite.
func Execute[C Context, R Result](ctx context.Context, cmd Command[C, R]) (R, error) {
	if cmd.Async() {
		return executeAsync(ctx, cmd)
	}
	return executeSync(ctx, cmd)
}

// ExecuteWith runs cmd through Execute wrapped by the given middleware,
// applied so the first wrapper is the outermost.
func ExecuteWith[C Context, R Result](
	ctx context.Context,
	cmd Command[C, R],
	wraps ...WrapFunc[C, R],
) (R, error) {
	exec := ExecFunc[C, R](Execute[C, R])
	for i := len(wraps) - 1; i >= 0; i-- {
		exec = wraps[i](exec)
	}
	return exec(ctx, cmd)
}

func executeSync[C Context, R Result](ctx context.Context, cmd Command[C, R]) (R, error) {
	var zero R

	name := NameOf(cmd)
	log := logger.Named("pipeline.command").WithContext(ctx).With("command_name", name)

	if err := cmd.PreProcess(ctx); err != nil {
		e := apperr.DomainWrap(err)
		log.With("phase", "pre_process").Warnx(e)
		return zero, e
	}

	if !cmd.Valid() {
		e := apperr.Domainf("command %s: context did not pass validation", name)
		log.With("phase", "pre_process").Warnx(e)
		return zero, e
	}

	if err := cmd.Process(ctx); err != nil {
		e := apperr.DomainWrap(err)
		log.With("phase", "process").Errorx(e)
		return zero, e
	}

	if cmd.Executed() {
		if err := cmd.PostProcess(ctx); err != nil {
			e := apperr.DomainWrap(err)
			log.With("phase", "post_process").Errorx(e)
			return zero, e
		}
	}

	return cmd.Result(), nil
}

func executeAsync[C Context, R Result](ctx context.Context, cmd Command[C, R]) (R, error) {
	var zero R

	name := NameOf(cmd)

	pool := cmd.Executor()
	if pool == nil {
		return zero, apperr.Applicationf("command %s: no task executor bound for async execution", name)
	}

	// The worker must outlive the caller's request scope; metadata and trace
	// values stay attached.
	taskCtx := context.WithoutCancel(ctx)

	future, err := workpool.Submit(pool, func() (R, error) {
		return executeSync(taskCtx, cmd)
	})
	if err != nil {
		return zero, apperr.InfrastructureWrap(err)
	}

	result, err := future.Wait()
	if err != nil {
		// Failures inside the sequence are already domain errors. Anything
		// else comes from the completion handle itself (e.g. a panic) and
		// is rewrapped so the caller still sees a single error kind.
		if !apperr.IsDomain(err) {
			e := apperr.DomainWrap(err)
			logger.Named("pipeline.command").
				WithContext(ctx).
				With("command_name", name).
				Errorx(e)
			return zero, e
		}
		return zero, err
	}

	return result, nil
}

// NameOf returns the identity of a command or query for logs and spans,
// derived from its dynamic type name.
func NameOf(op any) string {
	fullType := fmt.Sprintf("%T", op)

	fullType = strings.TrimPrefix(fullType, "*")

	// strip the instantiated type-parameter list, if any
	if i := strings.IndexByte(fullType, '['); i > 0 {
		fullType = fullType[:i]
	}

	parts := strings.Split(fullType, ".")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}

	return fullType
}
