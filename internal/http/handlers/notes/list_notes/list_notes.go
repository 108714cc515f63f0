package listnotes

import (
	"net/http"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/services"
	service "somenotes/internal/core/services/list_notes"
	"somenotes/internal/http/handlers/response"
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
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{Notes: response.NotesFromDomainType(result.Notes)}, http.StatusOK)
}
