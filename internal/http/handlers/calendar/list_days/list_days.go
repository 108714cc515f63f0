package listdays

import (
	"net/http"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/services"
	service "somenotes/internal/core/services/list_reminder_notes"
	"somenotes/internal/core/views/calendar"
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

type Day struct {
	Day           int64  `json:"day"`
	Label         string `json:"label"`
	ReminderCount int    `json:"reminder_count"`
}

type Result struct {
	Days []Day `json:"days"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	buckets := calendar.DayBuckets(result.Notes)
	days := make([]Day, 0, len(buckets))
	for _, bucket := range buckets {
		days = append(days, Day{
			Day:           bucket.Day,
			Label:         bucket.Label,
			ReminderCount: bucket.ReminderCount,
		})
	}
	response.Render(rw, Result{Days: days}, http.StatusOK)
}
