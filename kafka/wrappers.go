package kafka

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/IBM/sarama"
	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/forja-labs/pkg/kafka/otelsarama"
	"github.com/forja-labs/pkg/meta"
)

// handlerWithRecovery is a wrapper around the handler to add recovery support.
func (c *Consumer) handlerWithRecovery(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stackTrace := make([]byte, 4096) // 4KB
				stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

				c.logger.
					Named("recovery").
					WithContext(ctx).
					With("stack_trace", string(stackTrace)).
					With("panic_values", fmt.Sprintf("%v", r)).
					Error("panic recovered in kafka handler")

				err = errx.New("panic recovered in kafka handler", errx.WithDetails(errx.D{
					"stack_trace":  string(stackTrace),
					"panic_values": fmt.Sprintf("%v", r),
				}))
			}
		}()
		return next(ctx, msg)
	}
}

// handlerWithTracing is a wrapper around the handler to add tracing support.
func (c *Consumer) handlerWithTracing(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) (err error) {
		// extract tracing info from headers
		ctx = otel.GetTextMapPropagator().Extract(ctx, otelsarama.NewConsumerMessageCarrier(msg))

		ctx, span := otel.Tracer("").Start(ctx, fmt.Sprintf("kafka.%s.consume", msg.Topic),
			trace.WithAttributes(
				semconv.MessagingSystem("kafka"),
				semconv.MessagingKafkaConsumerGroup(c.cfg.GroupID),
				semconv.MessagingOperationProcess,
				semconv.MessagingMessageID(string(msg.Key)),
			),
			trace.WithSpanKind(trace.SpanKindConsumer),
		)

		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()

		return next(ctx, msg)
	}
}

// handlerWithMetaInjection is a wrapper around the handler to inject meta
// into the context for downstream handlers.
func (c *Consumer) handlerWithMetaInjection(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		// prefer the trace id from the span context
		span := trace.SpanFromContext(ctx)
		traceID := span.SpanContext().TraceID().String()

		if !span.SpanContext().HasTraceID() {
			traceID = uuid.NewString()
		}

		metaData := map[meta.ContextKey]string{
			meta.TraceID:        traceID,
			meta.ServiceName:    meta.GetServiceName(),
			meta.ServiceVersion: meta.GetServiceVersion(),
		}

		ctx = meta.InjectMetaToContext(ctx, metaData)

		return next(ctx, msg)
	}
}

// handlerWithTimeout is a wrapper around the handler to add timeout support.
func (c *Consumer) handlerWithTimeout(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		ctx, cancel := context.WithTimeout(ctx, c.cfg.HandlerTimeout)
		defer cancel()
		return next(ctx, msg)
	}
}

// handlerWithAlerting is a wrapper around the handler to add alerting.
func (c *Consumer) handlerWithAlerting(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		log := c.logger.Named("alerting").WithContext(ctx)

		err := next(ctx, msg)
		if err == nil {
			return nil
		}

		e := errx.AsErrorX(err)

		operation := fmt.Sprintf("consumer topic -> %s", msg.Topic)
		details := make(map[string]string)
		for k, v := range meta.ExtractMetaFromContext(ctx) {
			details[string(k)] = v
		}
		details["error_type"] = e.Trace()

		sendErr := c.alertProvider.SendError(ctx, e.Code(), err.Error(), operation, details)
		if sendErr != nil {
			log.With("send_error", sendErr).Warn("failed to send error alert")
		}

		return err
	}
}

// handlerWithLogging is a wrapper around the handler to add access logging.
func (c *Consumer) handlerWithLogging(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) (err error) {
		log := c.logger.Named("access_logger").WithContext(ctx)

		start := time.Now()

		// extra recovery for catching panics in later stages of the handler
		withRecovery := c.handlerWithRecovery(next)
		err = withRecovery(ctx, msg)

		duration := time.Since(start)

		headers := lo.SliceToMap(msg.Headers, func(h *sarama.RecordHeader) (string, string) {
			return string(h.Key), string(h.Value)
		})

		log = log.With(
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
			"duration", duration.String(),
			"headers", headers,
		)

		logMsg := "consumed incoming kafka message"
		if err != nil {
			log.With("error", getErrObject(err)).Error(logMsg)
		} else {
			log.Info(logMsg)
		}

		return err
	}
}

// handlerWithRetry is a wrapper around the handler to add retry support with
// backoff and jitter.
func (c *Consumer) handlerWithRetry(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		if c.cfg.RetryDisabled {
			return next(ctx, msg)
		}

		log := c.logger.Named("retry").WithContext(ctx)

		return retry.Do(
			func() error {
				return next(ctx, msg)
			},
			retry.Attempts(uint(c.cfg.RetryCount)),
			retry.Delay(c.cfg.RetryDelay),
			retry.MaxJitter(100*time.Millisecond),
			retry.LastErrorOnly(true), // only return the last error
			retry.OnRetry(func(n uint, err error) {
				log.
					With("error", getErrObject(err)).
					With("attempt", n+1).
					With("max_attempts", c.cfg.RetryCount).
					Warn("retrying kafka message")
			}),
			retry.Context(ctx), // responds to context cancellation
		)
	}
}

// handlerWithErrorHandling marks any handler error as internal.
// TODO: route permanently failing messages to a dead letter topic.
func (c *Consumer) handlerWithErrorHandling(next HandleFunc) HandleFunc {
	return func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		return errx.Wrap(next(ctx, msg), errx.WithType(errx.T_Internal))
	}
}

func getErrObject(err error) any {
	e := errx.AsErrorX(err)
	return map[string]any{
		"code":    e.Code(),
		"message": e.Error(),
		"type":    e.Type().String(),
		"trace":   e.Trace(),
		"fields":  e.Fields(),
		"details": e.Details(),
	}
}
