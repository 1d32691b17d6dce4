// Package forward bridges consumed Kafka messages into application handlers:
// it decodes message payloads and hands them to event subscribers or to
// commands running through the command pipeline.
package forward

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/IBM/sarama"
	"github.com/code19m/errx"

	"github.com/forja-labs/pkg/kafka"
	"github.com/forja-labs/pkg/logger"
	"github.com/forja-labs/pkg/mask"
	"github.com/forja-labs/pkg/pipeline/command"
)

// EventSubscriber handles a decoded event of type E.
type EventSubscriber[E any] interface {
	Handle(ctx context.Context, event E) error
}

// ToEventSubscriber adapts an EventSubscriber into a kafka.HandleFunc.
// The message value is decoded as JSON into E, which must be a pointer to
// a struct.
func ToEventSubscriber[E any](sub EventSubscriber[E]) kafka.HandleFunc {
	return func(ctx context.Context, cm *sarama.ConsumerMessage) error {
		event, err := newEvent[E]()
		if err != nil {
			return errx.Wrap(err)
		}

		if err = json.Unmarshal(cm.Value, event); err != nil {
			return errx.Wrap(err)
		}

		log := logger.
			Named("kafka.forward.debug_logger").
			WithContext(ctx).
			With("event", mask.StructToOrdMap(event))

		if err = sub.Handle(ctx, event); err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		log.Debug("handled kafka event")
		return nil
	}
}

// ToCommand adapts a command factory into a kafka.HandleFunc. The message
// value is decoded as JSON into the command's input context C (a pointer to
// a struct) and the command is executed through the command pipeline.
func ToCommand[C any, R any](newCmd func() command.Command[C, R]) kafka.HandleFunc {
	return func(ctx context.Context, cm *sarama.ConsumerMessage) error {
		input, err := newEvent[C]()
		if err != nil {
			return errx.Wrap(err)
		}

		if err = json.Unmarshal(cm.Value, input); err != nil {
			return errx.Wrap(err)
		}

		cmd := newCmd()
		cmd.SetContext(input)

		if _, err = command.Execute(ctx, cmd); err != nil {
			return errx.Wrap(err)
		}

		return nil
	}
}

func newEvent[E any]() (E, error) {
	var req E

	reqType := reflect.TypeOf((*E)(nil)).Elem()
	if reqType.Kind() != reflect.Pointer || reqType.Elem().Kind() != reflect.Struct {
		return req, errx.New("event type must be a pointer to a struct")
	}

	reqVal := reflect.New(reqType.Elem()).Interface().(E) //nolint:errcheck // safe type assertion
	return reqVal, nil
}
