// Package messaging provides the outbound message publisher used for playlist
// export requests.
package messaging

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
)

// Publisher sends a payload to a topic. The export worker consumes these
// messages out of process.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// NATSPublisher implements Publisher over a Watermill NATS connection.
type NATSPublisher struct {
	publisher message.Publisher
}

func NewNATSPublisher(url string, logger watermill.LoggerAdapter) (*NATSPublisher, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled: true,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}

	return &NATSPublisher{publisher: pub}, nil
}

func (p *NATSPublisher) Publish(topic string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.publisher.Publish(topic, msg)
}

func (p *NATSPublisher) Close() error {
	return p.publisher.Close()
}
