// Package autosave implements a debounced-save state machine for admin
// edits: drafts submitted in quick succession coalesce into a single write
// of the latest draft once a quiet window elapses. Each record moves through
// clean -> dirty -> saving -> clean|error, independent of any UI lifetime.
package autosave

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the save state of a single record.
type State int

const (
	// StateClean means the stored record matches the last submitted draft.
	StateClean State = iota
	// StateDirty means a draft is waiting out the quiet window.
	StateDirty
	// StateSaving means a flush is in progress.
	StateSaving
	// StateError means the last flush failed; the draft is retained and the
	// next Submit or Flush retries.
	StateError
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	}
	return "unknown"
}

// SaveFunc persists a draft for a record id.
type SaveFunc[T any] func(id string, draft T) error

type record[T any] struct {
	state State
	draft T
	gen   uint64
	timer *time.Timer
}

// Saver debounces writes per record id. Safe for concurrent use.
type Saver[T any] struct {
	mu      sync.Mutex
	window  time.Duration
	save    SaveFunc[T]
	log     *logrus.Logger
	records map[string]*record[T]
	closed  bool
}

// New creates a Saver that flushes a record's latest draft once no new draft
// has arrived for the given window.
func New[T any](window time.Duration, save SaveFunc[T], log *logrus.Logger) *Saver[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Saver[T]{
		window:  window,
		save:    save,
		log:     log,
		records: make(map[string]*record[T]),
	}
}

// Submit registers the latest draft for a record and restarts its quiet
// window. Earlier unflushed drafts for the same record are superseded.
func (s *Saver[T]) Submit(id string, draft T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	r := s.records[id]
	if r == nil {
		r = &record[T]{}
		s.records[id] = r
	}
	r.draft = draft
	r.gen++
	r.state = StateDirty
	if r.timer != nil {
		r.timer.Stop()
	}
	gen := r.gen
	r.timer = time.AfterFunc(s.window, func() { s.flush(id, gen) })
}

// flush writes the draft captured at generation gen. A newer draft (gen
// mismatch) means another timer owns the record now.
func (s *Saver[T]) flush(id string, gen uint64) {
	s.mu.Lock()
	r := s.records[id]
	if r == nil || r.gen != gen || r.state != StateDirty {
		s.mu.Unlock()
		return
	}
	r.state = StateSaving
	draft := r.draft
	s.mu.Unlock()

	err := s.save(id, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if r.gen != gen {
		// A newer draft arrived mid-save; its own timer takes over.
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Warn("autosave: flush failed")
		r.state = StateError
		return
	}
	r.state = StateClean
}

// Flush forces an immediate synchronous write of the record's pending draft,
// bypassing the quiet window. Records in the error state retry their
// retained draft. A clean or unknown record is a no-op.
func (s *Saver[T]) Flush(id string) error {
	s.mu.Lock()
	r := s.records[id]
	if r == nil || (r.state != StateDirty && r.state != StateError) {
		s.mu.Unlock()
		return nil
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.state = StateSaving
	draft := r.draft
	gen := r.gen
	s.mu.Unlock()

	err := s.save(id, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if r.gen != gen {
		return err
	}
	if err != nil {
		r.state = StateError
		return err
	}
	r.state = StateClean
	return nil
}

// State reports the record's save state. Unknown records are clean.
func (s *Saver[T]) State(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.records[id]; r != nil {
		return r.state
	}
	return StateClean
}

// Close flushes every pending draft and stops accepting new submissions.
// Returns the first flush error encountered.
func (s *Saver[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	var pending []string
	for id, r := range s.records {
		if r.timer != nil {
			r.timer.Stop()
		}
		if r.state == StateDirty || r.state == StateError {
			pending = append(pending, id)
		}
	}
	s.mu.Unlock()

	var firstErr error
	for _, id := range pending {
		if err := s.Flush(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
