package query

import "context"

// Execute runs q with the given input context.
//
// The steps run unconditionally in order: PreProcess, Process, and
// PostProcess when q implements PostProcessor. PreProcess always completes
// before Process starts, and PostProcess runs only when Process did not
// fail. Errors from any step propagate directly to the caller.
func Execute[C Context, R Result](ctx context.Context, q Query[C, R], c C) (R, error) {
	var zero R

	if err := q.PreProcess(ctx, c); err != nil {
		return zero, err
	}

	result, err := q.Process(ctx, c)
	if err != nil {
		return zero, err
	}

	if pp, ok := q.(PostProcessor[C, R]); ok {
		return pp.PostProcess(ctx, c, result)
	}

	return result, nil
}

// ExecuteWith runs q through Execute wrapped by the given middleware,
// applied so the first wrapper is the outermost.
func ExecuteWith[C Context, R Result](
	ctx context.Context,
	q Query[C, R],
	c C,
	wraps ...WrapFunc[C, R],
) (R, error) {
	exec := ExecFunc[C, R](Execute[C, R])
	for i := len(wraps) - 1; i >= 0; i-- {
		exec = wraps[i](exec)
	}
	return exec(ctx, q, c)
}
