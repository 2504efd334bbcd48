package statesync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

func declareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare %s: %w", queue, err)
	}
	return nil
}

type AMQPPublisher struct {
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

// NewAMQPPublisher opens a channel in confirm mode. Publish reports success only once
// the broker has confirmed the message.
func NewAMQPPublisher(conn *amqp.Connection, queue string, timeout time.Duration) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		_ = ch.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	return &AMQPPublisher{ch: ch, queue: queue, timeout: timeout}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, change room.StatusChange) error {
	body, err := Encode(change)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	headers := amqp.Table{}
	injectHeaders(pubCtx, headers)

	confirmation, err := p.ch.PublishWithDeferredConfirmWithContext(
		pubCtx,
		"",      // default exchange
		p.queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Headers:      headers,
			Body:         body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "publish room status change")
	}

	acked, err := confirmation.WaitContext(pubCtx)
	if err != nil {
		return errs.Wrap(err, "wait for publisher confirm")
	}
	if !acked {
		return errs.New("broker rejected room status change")
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}

type AMQPConsumer struct {
	ch         *amqp.Channel
	queue      string
	retryDelay time.Duration
	logger     *slog.Logger
}

func NewAMQPConsumer(conn *amqp.Connection, queue string, prefetch int, retryDelay time.Duration, logger *slog.Logger) (*AMQPConsumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		_ = ch.Close()
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("set prefetch: %w", err)
	}

	return &AMQPConsumer{
		ch:         ch,
		queue:      queue,
		retryDelay: retryDelay,
		logger:     logger,
	}, nil
}

// Run consumes with manual acknowledgement until ctx is done or the broker closes the
// delivery channel.
func (c *AMQPConsumer) Run(ctx context.Context, handle Handler) error {
	tag := "room-service-" + uuid.NewString()
	deliveries, err := c.ch.Consume(
		c.queue,
		tag,
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("state sync consumer started", slog.String("queue", c.queue), slog.String("tag", tag))

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel(tag, false)
			c.logger.Info("state sync consumer stopped", slog.String("queue", c.queue))
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errs.New("state sync delivery channel closed")
			}
			c.handle(ctx, d, handle)
		}
	}
}

func (c *AMQPConsumer) handle(ctx context.Context, d amqp.Delivery, handle Handler) {
	change, err := Decode(d.Body)
	if err != nil {
		c.logger.Warn("dropping undecodable state sync message",
			slog.String("message_id", d.MessageId),
			slog.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}

	msgCtx := extractHeaders(ctx, d.Headers)
	if err := handle(msgCtx, change); err != nil {
		if errs.Is(err, errs.ErrValidation) {
			c.logger.Warn("dropping invalid state sync message",
				slog.Int64("room_id", change.RoomID),
				slog.String("error", err.Error()))
			_ = d.Nack(false, false)
			return
		}

		c.logger.Warn("state sync apply failed, requeueing",
			slog.Int64("room_id", change.RoomID),
			slog.String("status", change.Status.String()),
			slog.Bool("redelivered", d.Redelivered),
			slog.String("error", err.Error()))
		wait(ctx, c.retryDelay)
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
}

func (c *AMQPConsumer) Close() error {
	return c.ch.Close()
}

func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
