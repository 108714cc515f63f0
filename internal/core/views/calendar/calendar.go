// Package calendar derives local-day groupings from the reminder-bearing
// note set. Buckets are recomputed from snapshots, never stored.
package calendar

import (
	"context"
	e "somenotes/internal/core/domain/errors"
	"somenotes/internal/core/domain/livequery"
	"somenotes/internal/core/domain/logging"
	"somenotes/internal/core/domain/note"
	"sort"
	"sync"

	"github.com/golang-module/carbon/v2"
)

const dayMillis int64 = 24 * 60 * 60 * 1000

// DayBucket is one local calendar day holding at least one reminder.
// Day is the local-midnight timestamp in epoch milliseconds.
type DayBucket struct {
	Day           int64
	Label         string
	ReminderCount int
}

// LocalMidnight truncates an epoch-milliseconds timestamp to the start of
// its local calendar day.
func LocalMidnight(ts int64) int64 {
	return carbon.CreateFromTimestampMilli(ts).StartOfDay().TimestampMilli()
}

// DayBuckets groups the reminders of the given notes by local day,
// de-duplicated and sorted ascending.
func DayBuckets(notes []note.Note) []DayBucket {
	counts := make(map[int64]int)
	for _, n := range notes {
		if !n.ReminderAt.IsPresent {
			continue
		}
		day := LocalMidnight(n.ReminderAt.Value.UnixMilli())
		counts[day]++
	}

	buckets := make([]DayBucket, 0, len(counts))
	for day, count := range counts {
		buckets = append(buckets, DayBucket{
			Day:           day,
			Label:         carbon.CreateFromTimestampMilli(day).Format("M d, Y"),
			ReminderCount: count,
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Day < buckets[j].Day })
	return buckets
}

// NotesOnDay filters to reminders within [day, day+24h). The lower bound is
// inclusive, the upper exclusive.
func NotesOnDay(notes []note.Note, day int64) []note.Note {
	filtered := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if !n.ReminderAt.IsPresent {
			continue
		}
		ts := n.ReminderAt.Value.UnixMilli()
		if ts >= day && ts < day+dayMillis {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// View is one consumer's live window over the note set: either the full
// updatedAt-ordered feed or the reminders of a single selected day. At most
// one live subscription is active per View, selecting a day or clearing the
// filter supersedes the previous one.
type View struct {
	log           logging.Logger
	allNotes      *livequery.Stream[[]note.Note]
	reminderNotes *livequery.Stream[[]note.Note]

	cancel context.CancelFunc
	lock   sync.Mutex
}

func NewView(
	log logging.Logger,
	allNotes *livequery.Stream[[]note.Note],
	reminderNotes *livequery.Stream[[]note.Note],
) *View {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if allNotes == nil {
		panic(e.NewNilArgumentError("allNotes"))
	}
	if reminderNotes == nil {
		panic(e.NewNilArgumentError("reminderNotes"))
	}
	return &View{log: log, allNotes: allNotes, reminderNotes: reminderNotes}
}

// SelectDay starts a live collection of the notes whose reminder falls on
// the given local day, pushing every fresh filtered snapshot to submit.
func (v *View) SelectDay(ctx context.Context, day int64, submit func(notes []note.Note)) {
	v.start(ctx, v.reminderNotes, func(notes []note.Note) []note.Note {
		return NotesOnDay(notes, day)
	}, submit)
}

// ClearFilter falls back to the full note feed.
func (v *View) ClearFilter(ctx context.Context, submit func(notes []note.Note)) {
	v.start(ctx, v.allNotes, func(notes []note.Note) []note.Note { return notes }, submit)
}

// Stop ends the active collection, if any.
func (v *View) Stop() {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *View) start(
	ctx context.Context,
	stream *livequery.Stream[[]note.Note],
	filter func([]note.Note) []note.Note,
	submit func([]note.Note),
) {
	v.lock.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	collectCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.lock.Unlock()

	sub := stream.Subscribe()
	go func() {
		defer sub.Close()
		sub.Collect(collectCtx, func(handlerCtx context.Context, notes []note.Note) {
			filtered := filter(notes)
			select {
			case <-handlerCtx.Done():
				// Superseded mid-handling, drop the stale result.
			default:
				submit(filtered)
			}
		})
	}()
}
