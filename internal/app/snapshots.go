package app

import (
	"context"
	"encoding/json"
	"somenotes/internal/app/deps"
	"somenotes/internal/core/domain/livequery"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/http/handlers/response"

	"github.com/r3labs/sse/v2"
)

// StartSnapshotForwarding bridges the in-process live-query streams to the
// SSE server so HTTP clients get every fresh snapshot. Latest-value-wins
// semantics carry over: a snapshot superseded before its handler finishes
// encoding is never published.
func StartSnapshotForwarding(ctx context.Context, d *deps.Deps) {
	forward(ctx, d, d.AllNotes, deps.NotesStreamID)
	forward(ctx, d, d.ReminderNotes, deps.RemindersStreamID)
}

func forward(ctx context.Context, d *deps.Deps, stream *livequery.Stream[[]note.Note], streamID string) {
	sub := stream.Subscribe()
	go func() {
		defer sub.Close()
		sub.Collect(ctx, func(handlerCtx context.Context, notes []note.Note) {
			data, err := json.Marshal(response.NotesFromDomainType(notes))
			if err != nil {
				logging.Error(handlerCtx, d.Logger, err)
				return
			}
			select {
			case <-handlerCtx.Done():
			default:
				d.SseServer.Publish(streamID, &sse.Event{Event: []byte("snapshot"), Data: data})
			}
		})
	}()
}
