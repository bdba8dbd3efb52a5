package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

var (
	// ErrPubSubProjectIDRequired is returned when a ProjectID is required but missing.
	ErrPubSubProjectIDRequired = errors.New("messaging: pubsub project id is required")
	// ErrPubSubClientRequired is returned when the Pub/Sub client is nil or closed.
	ErrPubSubClientRequired = errors.New("messaging: pubsub client is required")
	// ErrPubSubTopicRequired is returned when the publish topic is empty.
	ErrPubSubTopicRequired = errors.New("messaging: pubsub topic is required")
	// ErrPubSubSubscriptionRequired is returned when the subscription name is empty.
	ErrPubSubSubscriptionRequired = errors.New("messaging: pubsub subscription is required")
	// ErrPubSubHandlerRequired is returned when Consume is called with a nil handler.
	ErrPubSubHandlerRequired = errors.New("messaging: pubsub handler is required")
)

// PubSubConfig configures the Google Pub/Sub implementation.
type PubSubConfig struct {
	// ProjectID is the Google Cloud project ID.
	ProjectID string

	// Client provides an existing Pub/Sub client.
	Client *pubsub.Client
	// ClientOptions are used when creating a new client.
	ClientOptions []option.ClientOption
}

// PubSub is a messaging implementation backed by Google Pub/Sub.
type PubSub struct {
	client *pubsub.Client

	mu     sync.Mutex
	closed bool

	publishers map[string]*pubsub.Publisher
}

// NewPubSub constructs a PubSub messaging client.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.Client != nil {
		return &PubSub{client: cfg.Client, publishers: map[string]*pubsub.Publisher{}}, nil
	}
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub new client: %w", err)
	}

	return &PubSub{client: c, publishers: map[string]*pubsub.Publisher{}}, nil
}

// Close stops publishers and closes the Pub/Sub client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := make([]*pubsub.Publisher, 0, len(p.publishers))
	for _, pub := range p.publishers {
		pubs = append(pubs, pub)
	}
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}

	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Publish sends a message to a Pub/Sub topic. Headers map onto message attributes.
func (p *PubSub) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrPubSubTopicRequired
	}
	if err := p.ensureOpen(); err != nil {
		return err
	}

	var attrs map[string]string
	if len(msg.Headers) > 0 {
		attrs = make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			if h.Key == "" {
				continue
			}
			attrs[h.Key] = string(h.Value)
		}
	}

	res := p.getPublisher(destination).Publish(ctx, &pubsub.Message{
		Data:       msg.Body,
		Attributes: attrs,
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}

	return nil
}

// Consume starts consuming messages from a Pub/Sub subscription.
//
// When WithSubscription is set, source names the topic and the option names
// the subscription; otherwise source is the subscription itself.
func (p *PubSub) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrPubSubSubscriptionRequired
	}
	if handler == nil {
		return ErrPubSubHandlerRequired
	}
	if err := p.ensureOpen(); err != nil {
		return err
	}

	co := newConsumeOptions(opts...)
	topic := ""
	subscription := source
	if co.subscription != "" {
		topic = source
		subscription = co.subscription
	}

	sub := p.client.Subscriber(subscription)
	if co.concurrency > 0 {
		sub.ReceiveSettings.NumGoroutines = co.concurrency
	}

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		wrapped := &pubSubMessage{topic: topic, msg: m}
		herr := callHandlerWithRecover(ctx, "pubsub", func() error {
			return handler(ctx, wrapped)
		})

		if wrapped.responded.Load() || !co.autoAck {
			return
		}

		if herr == nil {
			//nolint:errcheck // ack is in-memory for pubsub
			_ = wrapped.Ack(ctx)
			return
		}
		//nolint:errcheck // nack is in-memory for pubsub
		_ = wrapped.Nack(ctx)
	})
}

func (p *PubSub) getPublisher(topicNameOrID string) *pubsub.Publisher {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.publishers == nil {
		p.publishers = map[string]*pubsub.Publisher{}
	}
	if pub, ok := p.publishers[topicNameOrID]; ok {
		return pub
	}
	pub := p.client.Publisher(topicNameOrID)
	p.publishers[topicNameOrID] = pub
	return pub
}

func (p *PubSub) ensureOpen() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return ErrPubSubClientRequired
	}
	if p.closed {
		return io.ErrClosedPipe
	}
	return nil
}

type pubSubMessage struct {
	topic string
	msg   *pubsub.Message

	responded atomic.Bool
}

func (m *pubSubMessage) Body() []byte { return m.msg.Data }

func (m *pubSubMessage) Headers() []Header {
	if len(m.msg.Attributes) == 0 {
		return nil
	}
	out := make([]Header, 0, len(m.msg.Attributes))
	for k, v := range m.msg.Attributes {
		out = append(out, Header{Key: k, Value: []byte(v)})
	}
	return out
}

func (m *pubSubMessage) ID() string           { return m.msg.ID }
func (m *pubSubMessage) Topic() string        { return m.topic }
func (m *pubSubMessage) Timestamp() time.Time { return m.msg.PublishTime }

func (m *pubSubMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Ack()
	return nil
}

func (m *pubSubMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Nack()
	return nil
}
