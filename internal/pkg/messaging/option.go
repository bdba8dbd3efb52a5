package messaging

type consumeOptions struct {
	// concurrency is the number of handler goroutines running in parallel.
	concurrency int

	// autoAck makes the client ack/nack based on the handler result.
	autoAck bool

	// group is the Kafka consumer group.
	group string

	// channel is the NSQ channel name.
	channel string

	// queueGroup is the NATS queue group.
	queueGroup string

	// subscription is the Google Pub/Sub subscription name.
	subscription string
}

// ConsumeOption configures consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	var co consumeOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&co)
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup sets the consumer group name (Kafka).
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithChannel sets the channel name (NSQ).
func WithChannel(channel string) ConsumeOption {
	return func(o *consumeOptions) { o.channel = channel }
}

// WithQueueGroup sets the queue group name (NATS).
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithSubscription sets the subscription name (Google Pub/Sub).
func WithSubscription(subscription string) ConsumeOption {
	return func(o *consumeOptions) { o.subscription = subscription }
}

// WithAutoAck controls whether the client should ack/nack automatically after the handler returns.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}
