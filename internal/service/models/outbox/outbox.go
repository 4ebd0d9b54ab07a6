package outbox

import (
	"time"
)

// Message is an event recorded in the same transaction as the state change
// it describes, and published to RabbitMQ asynchronously by the outbox
// worker.
type Message struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
