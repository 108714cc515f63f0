package listnotesonday

import (
	"net/http"
	"strconv"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/services"
	service "somenotes/internal/core/services/list_reminder_notes"
	"somenotes/internal/core/views/calendar"
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
	Notes []response.Note `json:"notes"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	day, err := strconv.ParseInt(chi.URLParam(r, "day"), 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid day", http.StatusBadRequest)
		return
	}
	if calendar.LocalMidnight(day) != day {
		response.RenderError(rw, "day must be a local midnight timestamp", http.StatusUnprocessableEntity)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	notes := calendar.NotesOnDay(result.Notes, day)
	response.Render(rw, Result{Notes: response.NotesFromDomainType(notes)}, http.StatusOK)
}
