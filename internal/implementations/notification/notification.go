// Package notification delivers user-visible alerts. The currently visible
// alert per note lives in a Redis hash so any process can replace or
// withdraw it, and an SSE stream pushes shown/withdrawn events to attached
// clients.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/domain/notification"

	"github.com/go-redis/redis/v9"
	"github.com/r3labs/sse/v2"
)

const (
	// AlertsStreamID is the SSE stream alert events are published to.
	AlertsStreamID = "alerts"

	alertTitle = "Note Reminder"
	// The collapsed line view keeps at most this many runes of the payload.
	lineRuneLimit = 100
)

type RedisSSEDispatcher struct {
	log         logging.Logger
	redisClient *redis.Client
	sseServer   *sse.Server
}

func NewRedisSSE(
	log logging.Logger,
	redisClient *redis.Client,
	sseServer *sse.Server,
) *RedisSSEDispatcher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	sseServer.CreateStream(AlertsStreamID)
	return &RedisSSEDispatcher{log: log, redisClient: redisClient, sseServer: sseServer}
}

type alertEvent struct {
	NoteID int64  `json:"note_id"`
	Title  string `json:"title,omitempty"`
	Line   string `json:"line,omitempty"`
	Body   string `json:"body,omitempty"`
}

func (d *RedisSSEDispatcher) Deliver(ctx context.Context, noteID note.ID, payload string) error {
	alert := notification.Alert{
		NoteID: noteID,
		Title:  alertTitle,
		Line:   truncateRunes(payload, lineRuneLimit),
		Body:   payload,
	}

	err := d.redisClient.HSet(
		ctx,
		alertKey(noteID),
		"title", alert.Title,
		"line", alert.Line,
		"body", alert.Body,
	).Err()
	if err != nil {
		logging.Error(ctx, d.log, err, logging.Entry("noteID", noteID))
		return err
	}

	d.publish("shown", alertEvent{
		NoteID: int64(alert.NoteID),
		Title:  alert.Title,
		Line:   alert.Line,
		Body:   alert.Body,
	})
	d.log.Info(ctx, "Alert shown.", logging.Entry("noteID", noteID))
	return nil
}

func (d *RedisSSEDispatcher) Withdraw(ctx context.Context, noteID note.ID) error {
	removed, err := d.redisClient.Del(ctx, alertKey(noteID)).Result()
	if err != nil {
		logging.Error(ctx, d.log, err, logging.Entry("noteID", noteID))
		return err
	}
	if removed == 0 {
		return nil
	}

	d.publish("withdrawn", alertEvent{NoteID: int64(noteID)})
	d.log.Info(ctx, "Alert withdrawn.", logging.Entry("noteID", noteID))
	return nil
}

func (d *RedisSSEDispatcher) publish(eventType string, event alertEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logging.Error(context.Background(), d.log, err)
		return
	}
	d.sseServer.Publish(AlertsStreamID, &sse.Event{Event: []byte(eventType), Data: data})
}

func alertKey(noteID note.ID) string {
	return fmt.Sprintf("alert:%d", noteID)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
