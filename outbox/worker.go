// Package outbox implements transactional message publishing.
//
// Messages are enqueued into a database table inside the business
// transaction and a background worker forwards committed rows to their
// destination Kafka topics. A message is therefore published if and only
// if the transaction that produced it committed.
package outbox

import (
	"context"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	wkafka "github.com/ThreeDotsLabs/watermill-kafka/pkg/kafka"
	wsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/forja-labs/pkg/alert"
	"github.com/forja-labs/pkg/logger"
)

// Worker polls the outbox table and forwards committed messages to their
// destination Kafka topics.
type Worker struct {
	forwarder *forwarder.Forwarder
	publisher message.Publisher
}

// NewWorker creates a Worker on top of the given connection pool.
// A nil alertProvider disables alerting.
func NewWorker(
	cfg WorkerConfig,
	pool *pgxpool.Pool,
	log logger.Logger,
	alertProvider alert.Provider,
) (*Worker, error) {
	if alertProvider == nil {
		alertProvider = alert.NoopProvider{}
	}

	// wrappers for watermill compatibility
	loggerAdapter := newLoggerAdapter(log.Named("outbox"))
	db := stdlib.OpenDBFromPool(pool)

	subscriber, err := newSubscriber(cfg, db, loggerAdapter)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	publisher, err := newPublisher(cfg, loggerAdapter)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	fwd, err := forwarder.NewForwarder(
		subscriber,
		publisher,
		loggerAdapter,
		forwarder.Config{
			ForwarderTopic: outboxTableName,
			Middlewares: []message.HandlerMiddleware{
				newAlertMiddleware(alertProvider, loggerAdapter),
			},
		},
	)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Worker{
		forwarder: fwd,
		publisher: publisher,
	}, nil
}

// Start runs the forwarding loop until Stop is called.
func (w *Worker) Start() error {
	return w.forwarder.Run(context.Background())
}

// Stop closes the forwarder and the underlying publisher.
func (w *Worker) Stop() error {
	err := w.forwarder.Close()
	if err != nil {
		return errx.Wrap(err)
	}

	return errx.Wrap(w.publisher.Close())
}

func newSubscriber(cfg WorkerConfig, db wsql.Beginner, logger watermill.LoggerAdapter) (*wsql.Subscriber, error) {
	subscriberCfg := wsql.SubscriberConfig{
		ConsumerGroup:  cfg.ServiceName,
		BackoffManager: wsql.NewDefaultBackoffManager(cfg.PollInterval, cfg.RetryInterval),
		AckDeadline:    nil,
		ResendInterval: cfg.ResendInterval,
		SchemaAdapter: wsql.DefaultPostgreSQLSchema{
			GenerateMessagesTableName: func(string) string {
				return outboxTableName
			},
			SubscribeBatchSize: cfg.BatchSize,
		},
		OffsetsAdapter: wsql.DefaultPostgreSQLOffsetsAdapter{
			GenerateMessagesOffsetsTableName: func(string) string {
				return offsetTableName
			},
		},
		InitializeSchema: true,
	}

	subscriber, err := wsql.NewSubscriber(db, subscriberCfg, logger)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return subscriber, nil
}

func newPublisher(cfg WorkerConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	saramaCfg := wkafka.DefaultSaramaSyncPublisherConfig()
	saramaCfg.ClientID = cfg.ServiceName

	marshaler := wkafka.NewWithPartitioningMarshaler(func(_ string, msg *message.Message) (string, error) {
		partitionKey := msg.Metadata.Get("partition_key")
		if partitionKey == "" {
			return "", errx.New("partition key is empty")
		}
		return partitionKey, nil
	})

	publisher, err := wkafka.NewPublisher(strings.Split(cfg.Brokers, ","), marshaler, saramaCfg, logger)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return publisher, nil
}

func newAlertMiddleware(alertProvider alert.Provider, logger watermill.LoggerAdapter) message.HandlerMiddleware {
	return func(next message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			messages, err := next(msg)
			if err == nil {
				return messages, nil
			}

			sendErr := alertProvider.SendError(context.Background(), "", err.Error(), "outbox_worker", map[string]string{})
			if sendErr != nil {
				logger.Error("failed to send error alert", sendErr, nil)
			}

			return nil, err
		}
	}
}
