package store

import (
	"context"
	"sync"
	"time"

	"github.com/pkordes/travel-planner/internal/domain"
)

// saver is a single-writer queue for collection snapshots.
//
// At most one save is in flight. A snapshot scheduled while another is being
// written waits in a one-slot mailbox; a newer snapshot replaces it there, so
// the last snapshot scheduled is always the last one written.
type saver struct {
	save    func(ctx context.Context, items []domain.Itinerary) error
	timeout time.Duration
	onDone  func(d time.Duration, err error)

	mu         sync.Mutex
	pending    []domain.Itinerary
	hasPending bool
	issued     uint64 // sequence number of the newest scheduled snapshot
	pendingSeq uint64
	done       uint64 // every snapshot up to this sequence is written or superseded
	changed    chan struct{}
	closed     bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

func newSaver(save func(context.Context, []domain.Itinerary) error, timeout time.Duration, onDone func(time.Duration, error)) *saver {
	s := &saver{
		save:    save,
		timeout: timeout,
		onDone:  onDone,
		changed: make(chan struct{}),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// schedule queues items for writing, superseding any snapshot not yet started.
// It never blocks on I/O. Snapshots scheduled after close are dropped.
func (s *saver) schedule(items []domain.Itinerary) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.issued++
	s.pending = items
	s.pendingSeq = s.issued
	s.hasPending = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *saver) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.quit:
			s.drain()
			return
		}
	}
}

// drain writes the mailbox until it is empty.
func (s *saver) drain() {
	for {
		s.mu.Lock()
		if !s.hasPending {
			s.mu.Unlock()
			return
		}
		items, seq := s.pending, s.pendingSeq
		s.pending, s.hasPending = nil, false
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		start := time.Now()
		err := s.save(ctx, items)
		cancel()
		s.onDone(time.Since(start), err)

		s.mu.Lock()
		s.done = seq
		close(s.changed)
		s.changed = make(chan struct{})
		s.mu.Unlock()
	}
}

// flush blocks until every snapshot scheduled before the call has been
// written or superseded, or ctx ends.
func (s *saver) flush(ctx context.Context) error {
	s.mu.Lock()
	target := s.issued
	for s.done < target {
		ch := s.changed
		s.mu.Unlock()
		select {
		case <-ch:
		case <-s.stopped:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
	}
	s.mu.Unlock()
	return nil
}

// close writes whatever is still queued, then stops the writer goroutine.
func (s *saver) close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.quit)
	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
