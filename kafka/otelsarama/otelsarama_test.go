package otelsarama_test

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"

	"github.com/forja-labs/pkg/kafka/otelsarama"
)

func TestProducerMessageCarrier(t *testing.T) {
	msg := &sarama.ProducerMessage{}
	carrier := otelsarama.NewProducerMessageCarrier(msg)

	assert.Empty(t, carrier.Get("traceparent"))

	carrier.Set("traceparent", "00-abc-def-01")
	assert.Equal(t, "00-abc-def-01", carrier.Get("traceparent"))

	// overwrite keeps a single header
	carrier.Set("traceparent", "00-abc-def-02")
	assert.Equal(t, "00-abc-def-02", carrier.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, carrier.Keys())
}

func TestConsumerMessageCarrier(t *testing.T) {
	msg := &sarama.ConsumerMessage{
		Headers: []*sarama.RecordHeader{
			{Key: []byte("traceparent"), Value: []byte("00-abc-def-01")},
			{Key: []byte("custom"), Value: []byte("v")},
		},
	}
	carrier := otelsarama.NewConsumerMessageCarrier(msg)

	assert.Equal(t, "00-abc-def-01", carrier.Get("traceparent"))
	assert.Equal(t, "v", carrier.Get("custom"))
	assert.Empty(t, carrier.Get("missing"))
	assert.ElementsMatch(t, []string{"traceparent", "custom"}, carrier.Keys())

	carrier.Set("custom", "updated")
	assert.Equal(t, "updated", carrier.Get("custom"))
	assert.Len(t, msg.Headers, 2)
}
