// Package events serves the SSE endpoint. Clients pick a stream with the
// stream query parameter: note snapshots, reminder snapshots or alerts.
package events

import (
	"net/http"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/http/handlers/response"

	"github.com/r3labs/sse/v2"
)

type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
	streamIDs map[string]struct{}
}

func New(log logging.Logger, sseServer *sse.Server, streamIDs ...string) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	known := make(map[string]struct{}, len(streamIDs))
	for _, streamID := range streamIDs {
		known[streamID] = struct{}{}
	}
	return &Handler{log: log, sseServer: sseServer, streamIDs: known}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	streamID := r.URL.Query().Get("stream")
	if _, ok := h.streamIDs[streamID]; !ok {
		h.log.Info(r.Context(), "Unknown event stream requested.", logging.Entry("stream", streamID))
		response.RenderError(rw, "unknown event stream", http.StatusNotFound)
		return
	}

	h.log.Info(r.Context(), "Subscribed to events.", logging.Entry("stream", streamID))
	h.sseServer.ServeHTTP(rw, r)
}
