package note

type OrderBy int

const (
	OrderByUpdatedAtDesc OrderBy = iota
	OrderByReminderAtAsc
)
