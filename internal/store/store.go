// Package store owns the authoritative in-memory itinerary collection.
//
// A Store starts out showing its seed collection, issues one load from the
// persistence adapter when started (retrying storage errors), and from the
// moment that load succeeds mirrors every mutation to storage through a
// single-writer save queue. If the load never succeeds nothing is saved.
// Mutations never wait for I/O and never fail because storage did.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// Recorder receives store telemetry. The metrics package provides the
// Prometheus implementation; a nil Recorder in Options disables telemetry.
type Recorder interface {
	ObserveMutation(op string, result domain.MutationResult)
	ObserveSave(d time.Duration, err error)
	SetItineraries(n int)
	SetLoaded(loaded bool)
	SetSubscribers(n int)
}

// Options configures a Store. Zero values select sensible defaults.
type Options struct {
	// Seed is shown before the load resolves and kept when nothing was
	// persisted. Nil means Seed().
	Seed []domain.Itinerary

	Logger  *slog.Logger
	Metrics Recorder

	// LoadTimeout bounds the initial load, retries included. Defaults to 30s.
	LoadTimeout time.Duration
	// LoadRetries is how many times a failing load is retried before the
	// store gives up and keeps saves off. Defaults to 3.
	LoadRetries uint64
	// LoadRetryBase is the first retry delay; later ones double. Defaults to 200ms.
	LoadRetryBase time.Duration
	// SaveTimeout bounds each save. Defaults to 30s.
	SaveTimeout time.Duration
}

// Status is a point-in-time view of the store's health.
type Status struct {
	Loaded bool
	Count  int
	// LoadError is set when the initial load failed for good. The stored
	// state is unknown then, so nothing is saved for the rest of the run.
	LoadError     error
	LastSaveError error
	LastSaveAt    time.Time
}

// Store is the process-wide itinerary collection. Construct one with New in
// main and pass it to every consumer; there is no package-level instance.
type Store struct {
	repo repo.ItineraryRepo
	log  *slog.Logger
	rec  Recorder
	opts Options

	startOnce sync.Once
	loadedCh  chan struct{}
	saver     *saver

	mu      sync.Mutex
	items   []domain.Itinerary
	loaded  bool
	loadErr error      // saves stay off while set
	journal []mutation // applied before the load resolved, replayed on top of it
	subs    map[int]chan []domain.Itinerary
	nextSub int

	lastSaveErr error
	lastSaveAt  time.Time
}

// mutation is a pure transformation of the collection.
type mutation func([]domain.Itinerary) ([]domain.Itinerary, domain.MutationResult)

// New constructs a Store over r. Call Start to issue the initial load.
func New(r repo.ItineraryRepo, opts Options) *Store {
	if opts.Seed == nil {
		opts.Seed = Seed()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = noopRecorder{}
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = 30 * time.Second
	}
	if opts.LoadRetries == 0 {
		opts.LoadRetries = 3
	}
	if opts.LoadRetryBase <= 0 {
		opts.LoadRetryBase = 200 * time.Millisecond
	}

	s := &Store{
		repo:     r,
		log:      opts.Logger,
		rec:      opts.Metrics,
		opts:     opts,
		loadedCh: make(chan struct{}),
		items:    domain.CloneAll(opts.Seed),
		subs:     make(map[int]chan []domain.Itinerary),
	}
	s.saver = newSaver(r.Save, opts.SaveTimeout, s.saveDone)
	s.rec.SetItineraries(len(s.items))
	s.rec.SetLoaded(false)
	return s
}

// Start issues the initial load in the background. Only the first call has
// any effect; the load cannot be cancelled once issued.
func (s *Store) Start() {
	s.startOnce.Do(func() {
		go s.load()
	})
}

func (s *Store) load() {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.LoadTimeout)
	defer cancel()

	items, found, err := s.loadWithRetry(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.rec.SetLoaded(true)
	if err != nil {
		// Writing now would replace whatever is really stored with the seed.
		s.loadErr = err
		s.journal = nil
		s.log.Error("itinerary load failed; keeping seed collection and not saving", "error", err)
		close(s.loadedCh)
		return
	}

	replayed := len(s.journal) > 0
	if found {
		current := items
		for _, m := range s.journal {
			current, _ = m(current)
		}
		s.items = current
	}
	s.journal = nil

	s.log.Info("itineraries loaded", "found", found, "count", len(s.items), "replayed", replayed)
	s.rec.SetItineraries(len(s.items))
	s.publishLocked()

	// Edits made before the load are not durable yet.
	if replayed {
		s.saver.schedule(domain.CloneAll(s.items))
	}
	close(s.loadedCh)
}

// loadWithRetry retries storage errors with exponential backoff. An absent
// or unparsable value is not an error and is returned at once.
func (s *Store) loadWithRetry(ctx context.Context) ([]domain.Itinerary, bool, error) {
	b := retry.NewExponential(s.opts.LoadRetryBase)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithMaxRetries(s.opts.LoadRetries, b)

	var (
		items   []domain.Itinerary
		found   bool
		attempt int
	)
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		var err error
		items, found, err = s.repo.Load(ctx)
		if err != nil {
			s.log.Warn("itinerary load attempt failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("store.Store.load: %w", err)
	}
	return items, found, nil
}

// Loaded reports whether the initial load has resolved.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// WaitLoaded blocks until the initial load resolves or ctx ends.
func (s *Store) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.loadedCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("store.Store.WaitLoaded: %w", ctx.Err())
	}
}

// List returns a deep copy of the collection, most recent first.
func (s *Store) List() []domain.Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneAll(s.items)
}

// Get returns a copy of the first itinerary with id.
// Returns domain.ErrNotFound if there is none.
func (s *Store) Get(id string) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i].Clone(), nil
	}
	return domain.Itinerary{}, fmt.Errorf("store.Store.Get: %w", domain.ErrNotFound)
}

// Add prepends it to the collection. Ids are not checked for uniqueness;
// the caller mints them. Always Applied.
func (s *Store) Add(it domain.Itinerary) domain.MutationResult {
	it = it.Clone()
	return s.mutate("add", func(items []domain.Itinerary) ([]domain.Itinerary, domain.MutationResult) {
		out := make([]domain.Itinerary, 0, len(items)+1)
		out = append(out, it.Clone())
		return append(out, items...), domain.Applied
	})
}

// Update merges patch into the first itinerary with id. A missing id is
// not an error: the result is NoOp and nothing changes.
func (s *Store) Update(id string, patch domain.ItineraryPatch) domain.MutationResult {
	return s.mutate("update", func(items []domain.Itinerary) ([]domain.Itinerary, domain.MutationResult) {
		i := indexOf(items, id)
		if i < 0 {
			return items, domain.NoOp
		}
		out := append([]domain.Itinerary(nil), items...)
		out[i] = patch.ApplyTo(items[i])
		return out, domain.Applied
	})
}

// Delete removes the first itinerary with id. Deleting a missing id is a
// NoOp, so repeated deletes are harmless.
func (s *Store) Delete(id string) domain.MutationResult {
	return s.mutate("delete", func(items []domain.Itinerary) ([]domain.Itinerary, domain.MutationResult) {
		i := indexOf(items, id)
		if i < 0 {
			return items, domain.NoOp
		}
		out := make([]domain.Itinerary, 0, len(items)-1)
		out = append(out, items[:i]...)
		return append(out, items[i+1:]...), domain.Applied
	})
}

// mutate applies m to the live collection and, once loaded, queues a save.
// Mutations before the load are journaled so they survive the loaded data
// replacing the seed. After a failed load they stay in memory only.
func (s *Store) mutate(op string, m mutation) domain.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, result := m(s.items)
	s.rec.ObserveMutation(op, result)
	if result == domain.NoOp {
		return result
	}
	s.items = next
	s.rec.SetItineraries(len(next))
	s.publishLocked()

	if !s.loaded {
		s.journal = append(s.journal, m)
		return result
	}
	if s.loadErr != nil {
		return result
	}
	s.saver.schedule(domain.CloneAll(next))
	return result
}

// Subscribe returns a channel that receives the current collection right
// away and again after every change. A slow reader skips intermediate
// snapshots but always ends up with the latest. Call cancel to stop.
func (s *Store) Subscribe() (<-chan []domain.Itinerary, func()) {
	ch := make(chan []domain.Itinerary, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- domain.CloneAll(s.items)
	s.rec.SetSubscribers(len(s.subs))
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.rec.SetSubscribers(len(s.subs))
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

// publishLocked hands every subscriber its own copy of the collection,
// replacing any snapshot it has not read yet. s.mu must be held.
func (s *Store) publishLocked() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- domain.CloneAll(s.items)
	}
}

// Flush waits until every save queued so far has been written.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.saver.flush(ctx); err != nil {
		return fmt.Errorf("store.Store.Flush: %w", err)
	}
	return nil
}

// Close writes any queued snapshot and stops the save queue. Mutations after
// Close still update memory but are no longer persisted.
func (s *Store) Close(ctx context.Context) error {
	if err := s.saver.close(ctx); err != nil {
		return fmt.Errorf("store.Store.Close: %w", err)
	}
	return nil
}

// Status reports whether the store is loaded and how the last save went.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Loaded:        s.loaded,
		Count:         len(s.items),
		LoadError:     s.loadErr,
		LastSaveError: s.lastSaveErr,
		LastSaveAt:    s.lastSaveAt,
	}
}

// saveDone runs on the writer goroutine after each save attempt.
func (s *Store) saveDone(d time.Duration, err error) {
	s.rec.ObserveSave(d, err)
	if err != nil {
		s.log.Error("itinerary save failed; in-memory state is unaffected",
			"error", err, "duration_ms", d.Milliseconds())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSaveErr = err
	if err == nil {
		s.lastSaveAt = time.Now()
	}
}

func indexOf(items []domain.Itinerary, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

type noopRecorder struct{}

func (noopRecorder) ObserveMutation(string, domain.MutationResult) {}
func (noopRecorder) ObserveSave(time.Duration, error)              {}
func (noopRecorder) SetItineraries(int)                            {}
func (noopRecorder) SetLoaded(bool)                                {}
func (noopRecorder) SetSubscribers(int)                            {}
