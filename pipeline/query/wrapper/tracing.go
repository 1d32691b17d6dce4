package wrapper

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/forja-labs/pkg/pipeline/query"
)

// NewTracingQueryWrapper returns middleware that opens an OpenTelemetry
// span around query execution. The span is named after the concrete
// query type.
func NewTracingQueryWrapper[C query.Context, R query.Result]() query.WrapFunc[C, R] {
	tracer := otel.Tracer("pipeline/query")

	return func(next query.ExecFunc[C, R]) query.ExecFunc[C, R] {
		return func(ctx context.Context, q query.Query[C, R], c C) (R, error) {
			ctx, span := tracer.Start(ctx, spanNameOf(q))
			defer span.End()

			result, err := next(ctx, q, c)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return result, err
		}
	}
}

// spanNameOf returns a span name based on the query type.
func spanNameOf(q any) string {
	fullType := fmt.Sprintf("%T", q)

	fullType = strings.TrimPrefix(fullType, "*")

	parts := strings.Split(fullType, ".")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}

	return fullType
}
