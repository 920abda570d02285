package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/log"
)

// DefaultLogPath is where the consumer appends one line per event.
const DefaultLogPath = "logs/seat_requests.log"

// Consumer listens to SeatRequestQueue and appends each event to a log
// file in a single-line, human-friendly format.
type Consumer struct {
	URL     string
	LogPath string
	logger  *logrus.Entry
}

func NewConsumer(url, logPath string, logger *logrus.Entry) *Consumer {
	if logPath == "" {
		logPath = DefaultLogPath
	}
	return &Consumer{
		URL:     url,
		LogPath: logPath,
		logger:  logger.WithField(log.FldComponent, "consumer").WithField(log.FldQueue, SeatRequestQueue),
	}
}

// Run dials the broker, declares the durable queue and consumes until ctx
// is cancelled, reconnecting with exponential backoff. It returns
// ctx.Err() on shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.logger.WithError(err).Warnf("Failed to dial broker; retrying in %s", backoff)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.WithError(err).Warn("Consume loop ended; reconnecting")
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "channel open")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.WithError(err).Warn("Set QoS failed")
	}
	if _, err := ch.QueueDeclare(SeatRequestQueue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "queue declare")
	}
	msgs, err := ch.Consume(SeatRequestQueue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "queue consume")
	}
	c.logger.Info("Consuming seat request events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, open := <-msgs:
			if !open {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				c.logger.WithError(err).Error("Handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends it to the log file.
func (c *Consumer) Handle(body []byte) error {
	var ev SeatRequestEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return errors.Wrap(err, "mkdir logs")
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	defer f.Close()
	if err := WriteLine(f, ev); err != nil {
		return errors.Wrap(err, "write log")
	}
	return nil
}

// WriteLine renders ev as a single log line.
func WriteLine(w io.Writer, ev SeatRequestEvent) error {
	event := "-"
	if ev.EventID != nil {
		event = fmt.Sprintf("%d", *ev.EventID)
	}
	_, err := fmt.Fprintf(w, "[%s] %s | request_id=%d | event_id=%s | event=%q | customer=%q | email=%s | status=%s | seats=[%s]\n",
		ev.OccurredAt, ev.Type, ev.RequestID, event, ev.EventTitle, ev.CustomerName, ev.CustomerEmail,
		ev.Status, strings.Join(ev.Seats, ","))
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
