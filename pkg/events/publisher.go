package events

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// Publisher pushes domain events onto NATS
type Publisher struct {
	nc *nats.Conn
}

func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("promptswipe-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{nc: nc}, nil
}

func (p *Publisher) PublishNotificationCreated(evt NotificationCreated) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectNotificationCreated, data)
}

func (p *Publisher) Close() {
	p.nc.Drain()
}
