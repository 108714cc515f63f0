package createnote

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "somenotes/internal/core/domain/common"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/note"
	"somenotes/internal/core/services"
	service "somenotes/internal/core/services/create_note"
	"somenotes/internal/http/handlers/response"
	"time"

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
			Content:    input.Content,
			ReminderAt: reminderAt,
		},
	)
	if err != nil {
		switch {
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
		http.StatusCreated,
	)
}

func isExpectedError(err error) bool {
	return (errors.Is(err, note.ErrContentEmpty) ||
		errors.Is(err, note.ErrReminderNotInFuture))
}
