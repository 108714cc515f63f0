package updatenote

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	c "somenotes/internal/core/domain/common"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
	service "somenotes/internal/core/services/update_note"
	"somenotes/internal/http/handlers/response"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	Content    string `json:"content"`
	ReminderAt *int64 `json:"reminder_at"`
}

type Result struct {
	Note     response.Note `json:"note"`
	Warnings []string      `json:"warnings"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Content, validation.Required, validation.Length(1, 10_000)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid note id", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	var reminderAt c.Optional[time.Time]
	if input.ReminderAt != nil {
		reminderAt = c.NewOptional(time.UnixMilli(*input.ReminderAt).UTC(), true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			NoteID:     note.ID(noteID),
			Content:    input.Content,
			ReminderAt: reminderAt,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, note.ErrNoteDoesNotExist):
			response.RenderNotFound(rw)
		case isExpectedError(err):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	n := response.Note{}
	n.FromDomainType(result.Note)
	response.Render(
		rw,
		Result{
			Note:     n,
			Warnings: response.SchedulingWarnings(result.SchedulingDegraded, result.SchedulingError),
		},
		http.StatusOK,
	)
}

func isExpectedError(err error) bool {
	return (errors.Is(err, note.ErrContentEmpty) ||
		errors.Is(err, note.ErrReminderNotInFuture))
}
