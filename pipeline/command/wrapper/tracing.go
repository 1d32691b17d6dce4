package wrapper

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/forja-labs/pkg/pipeline/command"
)

// NewTracingCommandWrapper returns middleware that opens an OpenTelemetry
// span around command execution. The span is named after the concrete
// command type.
func NewTracingCommandWrapper[C command.Context, R command.Result]() command.WrapFunc[C, R] {
	tracer := otel.Tracer("pipeline/command")

	return func(next command.ExecFunc[C, R]) command.ExecFunc[C, R] {
		return func(ctx context.Context, cmd command.Command[C, R]) (R, error) {
			ctx, span := tracer.Start(ctx, command.NameOf(cmd))
			defer span.End()

			result, err := next(ctx, cmd)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return result, err
		}
	}
}
