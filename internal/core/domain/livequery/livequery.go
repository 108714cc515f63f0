// Package livequery implements push-updated query snapshots with
// latest-value-wins delivery: a new snapshot replaces an undelivered pending
// one and cancels the in-flight handler of the previous one. Snapshots are
// never queued.
package livequery

import (
	"context"
	"sync"
)

type Stream[T any] struct {
	subscriptions map[*Subscription[T]]struct{}
	last          T
	hasLast       bool
	lock          sync.Mutex
}

func NewStream[T any]() *Stream[T] {
	return &Stream[T]{subscriptions: make(map[*Subscription[T]]struct{})}
}

// Publish replaces the pending snapshot of every subscription with the new
// one. It never blocks on slow subscribers.
func (s *Stream[T]) Publish(snapshot T) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.last = snapshot
	s.hasLast = true
	for sub := range s.subscriptions {
		sub.offer(snapshot)
	}
}

// Subscribe registers a new subscription. If a snapshot has already been
// published the subscription starts with it pending.
func (s *Stream[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		stream: s,
		slot:   make(chan T, 1),
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.subscriptions[sub] = struct{}{}
	if s.hasLast {
		sub.offer(s.last)
	}
	return sub
}

type Subscription[T any] struct {
	stream *Stream[T]
	slot   chan T
	closed bool
}

// offer is called with the stream lock held.
func (sub *Subscription[T]) offer(snapshot T) {
	if sub.closed {
		return
	}
	for {
		select {
		case sub.slot <- snapshot:
			return
		default:
			// Drop the stale pending snapshot and retry.
			select {
			case <-sub.slot:
			default:
			}
		}
	}
}

func (sub *Subscription[T]) Close() {
	sub.stream.lock.Lock()
	defer sub.stream.lock.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	delete(sub.stream.subscriptions, sub)
	close(sub.slot)
}

// Collect invokes handler for every delivered snapshot until ctx is done or
// the subscription is closed. When a new snapshot arrives while the previous
// handler is still running, that handler's context is cancelled and the new
// handler starts, it is not awaited. Handlers must honor their context.
func (sub *Subscription[T]) Collect(ctx context.Context, handler func(ctx context.Context, snapshot T)) {
	var cancel context.CancelFunc
	defer func() {
		if cancel != nil {
			cancel()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-sub.slot:
			if !ok {
				return
			}
			if cancel != nil {
				cancel()
			}
			handlerCtx, handlerCancel := context.WithCancel(ctx)
			cancel = handlerCancel
			go handler(handlerCtx, snapshot)
		}
	}
}
