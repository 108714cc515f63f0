// Package waketimer publishes wake messages that come back at fire time.
//
// Exact mode routes through an x-delayed-message exchange with an x-delay
// header. When the broker lacks the plugin the timer runs degraded: the
// message goes to a waiting queue with a per-message TTL and dead-letters
// into the ready queue. TTL expiry is checked at the queue head only, so a
// long-lived wake ahead of a short one delays it. Timing becomes best
// effort and every arm reports Degraded.
package waketimer

import (
	"context"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/reminder"
	"somenotes/internal/rabbitmq"
	"somenotes/internal/rabbitmq/schema"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	exchange string
	// readyQueue doubles as the routing key on the delayed exchange.
	readyQueue string
	waitQueue  string
	degraded   bool
	now        func() time.Time
}

func NewRabbitMQ(
	log logging.Logger,
	channel *rabbitmq.Channel,
	exchange string,
	readyQueue string,
	waitQueue string,
	degraded bool,
	now func() time.Time,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{
		log:        log,
		channel:    channel,
		exchange:   exchange,
		readyQueue: readyQueue,
		waitQueue:  waitQueue,
		degraded:   degraded,
		now:        now,
	}
}

func (t *RabbitMQ) ArmWake(ctx context.Context, w reminder.Wake) (bool, error) {
	message := &schema.Wake{
		NoteID:  int64(w.NoteID),
		Seq:     w.Seq,
		FireAt:  w.FireAt,
		Payload: w.Payload,
	}
	body, err := message.Marshal()
	if err != nil {
		logging.Error(ctx, t.log, err)
		return t.degraded, err
	}

	delay := t.delayMillis(w.FireAt)
	if t.degraded {
		err = t.channel.PublishWithContext(ctx, "", t.waitQueue, false, false, amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Expiration:   strconv.FormatInt(delay, 10),
			Body:         body,
		})
	} else {
		err = t.channel.PublishWithContext(ctx, t.exchange, t.readyQueue, false, false, amqp091.Publishing{
			Headers:      amqp091.Table{"x-delay": delay},
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	}
	if err != nil {
		logging.Error(ctx, t.log, err, logging.Entry("noteID", w.NoteID))
		return t.degraded, err
	}

	t.log.Info(
		ctx,
		"Wake message published.",
		logging.Entry("noteID", w.NoteID),
		logging.Entry("seq", w.Seq),
		logging.Entry("delayMillis", delay),
		logging.Entry("degraded", t.degraded),
	)
	return t.degraded, nil
}

func (t *RabbitMQ) delayMillis(fireAt time.Time) int64 {
	delay := fireAt.Sub(t.now()).Milliseconds()
	if delay < 0 {
		return 0
	}
	return delay
}
