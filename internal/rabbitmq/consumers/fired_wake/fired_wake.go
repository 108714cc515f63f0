package firedwake

import (
	"context"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
	firereminder "somenotes/internal/core/services/fire_reminder"
	"somenotes/internal/rabbitmq"
	"somenotes/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[firereminder.Input, firereminder.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[firereminder.Input, firereminder.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			wake := &schema.Wake{}
			if err := wake.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal wake message.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			c.log.Info(context.Background(), "Got fired wake.", logging.Entry("wake", wake))
			_, err := c.service.Run(
				context.Background(),
				firereminder.Input{
					NoteID:  note.ID(wake.NoteID),
					Seq:     wake.Seq,
					FireAt:  wake.FireAt,
					Payload: wake.Payload,
				},
			)
			if err != nil {
				// Keep the wake for redelivery, the registration is still
				// live and the failure is likely transient.
				c.log.Error(
					context.Background(),
					"Could not handle fired wake, service returned an error.",
					logging.Entry("wake", wake),
					logging.Entry("err", err),
				)
				c.Nack(delivery)
				continue
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) Nack(delivery amqp091.Delivery) {
	if err := delivery.Nack(false, true); err != nil {
		c.log.Error(context.Background(), "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
