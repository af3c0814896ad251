package queue

import (
	"fmt"

	"go.uber.org/zap"
)

// Subjects published by the session engine. Downstream consumers
// (billing exports, dashboards) subscribe to these.
const (
	SubjectSessionStarted   = "session.started"
	SubjectSessionCompleted = "session.completed"
	SubjectPaymentSettled   = "payment.settled"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Connected() bool
	Close() error
}

// New builds a queue adapter for the configured driver.
func New(driver, url string, log *zap.Logger) (MessageQueue, error) {
	switch driver {
	case "nats":
		return NewNATSQueue(url, log)
	case "rabbitmq":
		return NewRabbitMQQueue(url, log)
	default:
		return nil, fmt.Errorf("unknown queue driver %q", driver)
	}
}
