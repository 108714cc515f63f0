package services

import (
	"somenotes/internal/app/deps"
	"somenotes/internal/core/services"
	createnote "somenotes/internal/core/services/create_note"
	deletenote "somenotes/internal/core/services/delete_note"
	firereminder "somenotes/internal/core/services/fire_reminder"
	getnote "somenotes/internal/core/services/get_note"
	listnotes "somenotes/internal/core/services/list_notes"
	listremindernotes "somenotes/internal/core/services/list_reminder_notes"
	reconcilereminders "somenotes/internal/core/services/reconcile_reminders"
	refreshsnapshots "somenotes/internal/core/services/refresh_snapshots"
	updatenote "somenotes/internal/core/services/update_note"
)

type Services struct {
	CreateNote        services.Service[createnote.Input, createnote.Result]
	UpdateNote        services.Service[updatenote.Input, updatenote.Result]
	DeleteNote        services.Service[deletenote.Input, deletenote.Result]
	GetNote           services.Service[getnote.Input, getnote.Result]
	ListNotes         services.Service[listnotes.Input, listnotes.Result]
	ListReminderNotes services.Service[listremindernotes.Input, listremindernotes.Result]

	FireReminder       services.Service[firereminder.Input, firereminder.Result]
	ReconcileReminders services.Service[reconcilereminders.Input, reconcilereminders.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	// Every mutating service is wrapped so fresh snapshots reach the live
	// streams right after a successful commit.
	s.CreateNote = refreshsnapshots.WithSnapshotRefresh(
		deps.Logger,
		deps.NoteRepository,
		deps.AllNotes,
		deps.ReminderNotes,
		createnote.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ReminderScheduler,
			deps.Now,
		),
	)
	s.UpdateNote = refreshsnapshots.WithSnapshotRefresh(
		deps.Logger,
		deps.NoteRepository,
		deps.AllNotes,
		deps.ReminderNotes,
		updatenote.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ReminderScheduler,
			deps.Dispatcher,
			deps.Now,
		),
	)
	s.DeleteNote = refreshsnapshots.WithSnapshotRefresh(
		deps.Logger,
		deps.NoteRepository,
		deps.AllNotes,
		deps.ReminderNotes,
		deletenote.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ReminderScheduler,
			deps.Dispatcher,
		),
	)
	s.GetNote = getnote.New(deps.Logger, deps.NoteRepository)
	s.ListNotes = listnotes.New(deps.Logger, deps.NoteRepository)
	s.ListReminderNotes = listremindernotes.New(deps.Logger, deps.NoteRepository)

	// Firing touches registrations and alerts only, note snapshots do not
	// change, so no refresh wrapper here.
	s.FireReminder = firereminder.New(
		deps.Logger,
		deps.RegistrationRepository,
		deps.Dispatcher,
	)
	s.ReconcileReminders = reconcilereminders.New(
		deps.Logger,
		deps.NoteRepository,
		deps.RegistrationRepository,
		deps.ReminderScheduler,
		deps.Now,
	)

	return s
}
