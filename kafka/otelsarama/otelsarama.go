// Package otelsarama adapts sarama message headers to the OpenTelemetry
// propagation.TextMapCarrier interface so trace context can travel through
// Kafka messages.
package otelsarama

import (
	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel/propagation"
)

var (
	_ propagation.TextMapCarrier = ProducerMessageCarrier{}
	_ propagation.TextMapCarrier = ConsumerMessageCarrier{}
)

// ProducerMessageCarrier injects and extracts propagation fields from the
// headers of a message being produced.
type ProducerMessageCarrier struct {
	msg *sarama.ProducerMessage
}

// NewProducerMessageCarrier creates a carrier over a producer message.
func NewProducerMessageCarrier(msg *sarama.ProducerMessage) ProducerMessageCarrier {
	return ProducerMessageCarrier{msg: msg}
}

// Get returns the value of the header with the given key, or "".
func (c ProducerMessageCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set stores a key-value pair, replacing an existing header with the same key.
func (c ProducerMessageCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if string(h.Key) == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, sarama.RecordHeader{
		Key:   []byte(key),
		Value: []byte(value),
	})
}

// Keys lists the keys of all headers on the message.
func (c ProducerMessageCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, string(h.Key))
	}
	return keys
}

// ConsumerMessageCarrier extracts propagation fields from the headers of a
// consumed message.
type ConsumerMessageCarrier struct {
	msg *sarama.ConsumerMessage
}

// NewConsumerMessageCarrier creates a carrier over a consumed message.
func NewConsumerMessageCarrier(msg *sarama.ConsumerMessage) ConsumerMessageCarrier {
	return ConsumerMessageCarrier{msg: msg}
}

// Get returns the value of the header with the given key, or "".
func (c ConsumerMessageCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h != nil && string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set stores a key-value pair, replacing an existing header with the same key.
func (c ConsumerMessageCarrier) Set(key, value string) {
	for _, h := range c.msg.Headers {
		if h != nil && string(h.Key) == key {
			h.Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, &sarama.RecordHeader{
		Key:   []byte(key),
		Value: []byte(value),
	})
}

// Keys lists the keys of all headers on the message.
func (c ConsumerMessageCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		if h != nil {
			keys = append(keys, string(h.Key))
		}
	}
	return keys
}
