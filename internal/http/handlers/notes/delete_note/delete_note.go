package deletenote

import (
	"errors"
	"net/http"
	"strconv"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
	service "somenotes/internal/core/services/delete_note"
	"somenotes/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid note id", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), service.Input{NoteID: note.ID(noteID)})
	if err != nil {
		switch {
		case errors.Is(err, note.ErrNoteDoesNotExist):
			response.RenderNotFound(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}
