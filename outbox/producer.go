package outbox

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"google.golang.org/protobuf/proto"

	"github.com/forja-labs/pkg/kafka/otelsarama"
)

// Producer enqueues messages into the outbox table inside an open database
// transaction. The worker later forwards them to their destination topics,
// so the message becomes visible exactly when the business transaction
// commits.
type Producer interface {
	// ProduceProtoMessage stores a protobuf-encoded message. idb must be a
	// bun.Tx so the enqueue shares the caller's transaction.
	ProduceProtoMessage(ctx context.Context, idb bun.IDB, topic, key string, msg proto.Message) error

	// ProduceJSONMessage stores a JSON-encoded message under the same
	// transactional contract.
	ProduceJSONMessage(ctx context.Context, idb bun.IDB, topic, key string, payload any) error
}

type producer struct {
	tableName string
}

// NewProducer creates a Producer writing to the outbox table.
func NewProducer() Producer {
	return &producer{tableName: outboxTableName}
}

func (p *producer) ProduceProtoMessage(
	ctx context.Context,
	idb bun.IDB,
	topic, key string,
	msg proto.Message,
) error {
	msgBytes, err := proto.Marshal(msg)
	if err != nil {
		return errx.Wrap(err)
	}
	return p.produce(ctx, idb, topic, key, msgBytes)
}

func (p *producer) ProduceJSONMessage(
	ctx context.Context,
	idb bun.IDB,
	topic, key string,
	payload any,
) error {
	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return errx.Wrap(err)
	}
	return p.produce(ctx, idb, topic, key, msgBytes)
}

func (p *producer) produce(ctx context.Context, idb bun.IDB, topic, key string, payload []byte) error {
	if _, ok := idb.(bun.Tx); !ok {
		return errx.New("idb must be a bun.Tx instance")
	}

	envelope := &messageEnvelope{
		DestinationTopic: topic,
		UUID:             uuid.NewString(),
		Payload:          payload,
		Metadata: map[string]string{
			"partition_key": key,
		},
	}

	// inject tracing headers into message envelope
	injectTracingHeaders(ctx, key, envelope)

	envelopeBytes, err := json.Marshal(envelope)
	if err != nil {
		return errx.Wrap(err)
	}

	outboxData := outboxMsg{
		UUID:     envelope.UUID,
		Payload:  envelopeBytes,
		Metadata: map[string]string{}, // row metadata is not used, routing lives in the envelope
	}

	_, err = idb.NewInsert().
		ModelTableExpr(p.tableName).
		Model(&outboxData).
		Value("transaction_id", "pg_current_xact_id()"). // Current transaction ID
		Exec(ctx)

	return errx.Wrap(err)
}

func injectTracingHeaders(ctx context.Context, key string, envelope *messageEnvelope) {
	tempMsg := &sarama.ProducerMessage{
		Topic: envelope.DestinationTopic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(envelope.Payload),
	}

	propagator := otel.GetTextMapPropagator()
	propagator.Inject(ctx, otelsarama.NewProducerMessageCarrier(tempMsg))

	for _, header := range tempMsg.Headers {
		envelope.Metadata[string(header.Key)] = string(header.Value)
	}
}

// messageEnvelope wraps the stored message and carries its destination topic.
type messageEnvelope struct {
	DestinationTopic string            `json:"destination_topic" bun:"destination_topic"`
	UUID             string            `json:"uuid"              bun:"uuid"`
	Payload          []byte            `json:"payload"           bun:"payload"`
	Metadata         map[string]string `json:"metadata"          bun:"metadata"`
}

// outboxMsg represents a single outbox row to be stored in the database.
type outboxMsg struct {
	UUID     string            `bun:"uuid"`
	Payload  []byte            `bun:"payload"`
	Metadata map[string]string `bun:"metadata"`
}
