package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when a feature is not supported by the selected broker.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume messages.
//
// Implementations wrap NSQ, NATS, Kafka or Google Pub/Sub.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject/queue).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) error
}

// Consumer consumes messages from a source (topic/subject/subscription).
type Consumer interface {
	// Consume blocks consuming messages from the source until ctx is done.
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message.
//
// When auto-ack is enabled a nil return acks the message and a non-nil return
// nacks it for redelivery. Handlers that ack/nack explicitly win.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning.
	Key []byte

	// Headers carry message metadata. Brokers without native header support
	// fold them into their attribute model.
	Headers []Header
}

// Header is a key/value pair used for message headers.
type Header struct {
	// Key is the header name.
	Key string
	// Value is the header value.
	Value []byte
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Headers returns message headers.
	Headers() []Header
	// ID returns the broker message ID, when the broker assigns one.
	ID() string
	// Topic returns the topic/subject the message arrived on.
	Topic() string
	// Timestamp returns the broker or receive timestamp.
	Timestamp() time.Time

	// Ack acknowledges successful processing.
	Ack(ctx context.Context) error
	// Nack requests a redelivery.
	Nack(ctx context.Context) error
}
