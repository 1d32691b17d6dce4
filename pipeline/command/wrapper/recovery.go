package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"

	"github.com/forja-labs/pkg/logger"
	"github.com/forja-labs/pkg/pipeline/command"
)

// NewRecoveryCommandWrapper returns middleware that converts a panic during
// command execution into an error so one misbehaving command cannot take
// down the process.
func NewRecoveryCommandWrapper[C command.Context, R command.Result](
	log logger.Logger,
) command.WrapFunc[C, R] {
	log = log.Named("pipeline.command.recovery")

	return func(next command.ExecFunc[C, R]) command.ExecFunc[C, R] {
		return func(ctx context.Context, cmd command.Command[C, R]) (result R, err error) {
			defer func() {
				if r := recover(); r != nil {
					stackTrace := make([]byte, 4096) // 4KB
					stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

					log.
						WithContext(ctx).
						With("command_name", command.NameOf(cmd)).
						With("stack_trace", string(stackTrace)).
						With("panic_values", fmt.Sprintf("%v", r)).
						Error("panic recovered in recovery wrapper")

					err = errx.New("panic recovered in recovery wrapper", errx.WithDetails(errx.D{
						"stack_trace":  string(stackTrace),
						"panic_values": fmt.Sprintf("%v", r),
					}))
				}
			}()

			result, err = next(ctx, cmd)
			return result, err
		}
	}
}
