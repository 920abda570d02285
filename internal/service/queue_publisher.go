// Package service holds infrastructure used by the handlers beyond the
// database, currently the broker publisher for seat request events.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/queue"
)

// Publisher publishes seat request events to queue.SeatRequestQueue. Each
// publish dials its own connection; the volume is a handful of messages
// per admin action.
type Publisher struct {
	URL     string
	Enabled bool
	Timeout time.Duration
	logger  *logrus.Entry
}

func NewPublisher(url string, enabled bool, logger *logrus.Entry) *Publisher {
	return &Publisher{
		URL:     url,
		Enabled: enabled,
		Timeout: 5 * time.Second,
		logger:  logger.WithField(log.FldComponent, "publisher").WithField(log.FldQueue, queue.SeatRequestQueue),
	}
}

// Notify publishes ev and logs failures. It never returns an error so the
// HTTP request that triggered it is unaffected by broker outages.
func (p *Publisher) Notify(ctx context.Context, ev queue.SeatRequestEvent) {
	if p == nil || !p.Enabled {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.Timeout)
	defer cancel()
	if err := p.Publish(ctx, ev); err != nil {
		p.logger.WithError(err).WithField(log.FldID, ev.RequestID).WithField("type", ev.Type).
			Warn("Failed to publish seat request event")
	}
}

// dialTimeout bounds connect and handshake by Timeout or the context
// deadline, whichever is sooner.
func (p *Publisher) dialTimeout(ctx context.Context) time.Duration {
	d := p.Timeout
	if d <= 0 {
		d = 5 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	if d <= 0 {
		// DefaultDial treats zero as no timeout.
		d = time.Millisecond
	}
	return d
}

// Publish sends ev as a persistent JSON message, declaring the durable
// queue first.
func (p *Publisher) Publish(ctx context.Context, ev queue.SeatRequestEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "dial broker")
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout(ctx))})
	if err != nil {
		return errors.Wrap(err, "dial broker")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "open channel")
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.SeatRequestQueue, // name
		true,                   // durable
		false,                  // autoDelete
		false,                  // exclusive
		false,                  // noWait
		nil,                    // args
	); err != nil {
		return errors.Wrap(err, "declare queue")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.SeatRequestQueue, false, false, pub); err != nil {
		return errors.Wrap(err, "publish")
	}
	p.logger.WithField(log.FldID, ev.RequestID).WithField("type", ev.Type).Debug("Seat request event published")
	return nil
}
