package getnote

import (
	"net/http"
	"strconv"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
	service "somenotes/internal/core/services/get_note"
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

type Result struct {
	Note response.Note `json:"note"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid note id", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{NoteID: note.ID(noteID)})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	if !result.Note.IsPresent {
		response.RenderNotFound(rw)
		return
	}

	n := response.Note{}
	n.FromDomainType(result.Note.Value)
	response.Render(rw, Result{Note: n}, http.StatusOK)
}
