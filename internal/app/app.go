package app

import (
	"net/http"
	"somenotes/internal/app/deps"
	"somenotes/internal/app/services"
	listdays "somenotes/internal/http/handlers/calendar/list_days"
	listnotesonday "somenotes/internal/http/handlers/calendar/list_notes_on_day"
	"somenotes/internal/http/handlers/events"
	createnote "somenotes/internal/http/handlers/notes/create_note"
	deletenote "somenotes/internal/http/handlers/notes/delete_note"
	getnote "somenotes/internal/http/handlers/notes/get_note"
	listnotes "somenotes/internal/http/handlers/notes/list_notes"
	listremindernotes "somenotes/internal/http/handlers/notes/list_reminder_notes"
	updatenote "somenotes/internal/http/handlers/notes/update_note"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	notesRouter := chi.NewRouter()
	notesRouter.Method(http.MethodPost, "/", createnote.New(s.CreateNote))
	notesRouter.Method(http.MethodGet, "/", listnotes.New(s.ListNotes))
	notesRouter.Method(http.MethodGet, "/reminders", listremindernotes.New(s.ListReminderNotes))
	notesRouter.Method(http.MethodGet, "/{noteID:[0-9]+}", getnote.New(s.GetNote))
	notesRouter.Method(http.MethodPut, "/{noteID:[0-9]+}", updatenote.New(s.UpdateNote))
	notesRouter.Method(http.MethodDelete, "/{noteID:[0-9]+}", deletenote.New(s.DeleteNote))

	calendarRouter := chi.NewRouter()
	calendarRouter.Method(http.MethodGet, "/days", listdays.New(s.ListReminderNotes))
	calendarRouter.Method(http.MethodGet, "/days/{day:[0-9]+}/notes", listnotesonday.New(s.ListReminderNotes))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/notes", notesRouter)
	router.Mount("/calendar", calendarRouter)
	router.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, deps.StreamIDs()...),
	)

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.HTTPAddress,
	}
}
