package search

import (
	"fmt"
	"sync"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Callback is invoked with the completed handle when its operation finishes.
type Callback func(*Search)

type pendingEntry struct {
	callback Callback
	search   *Search
}

// Registry correlates issued search operations with their asynchronous
// completion notifications. One registry serves one session with the remote
// service; it supports concurrent registration by issuing goroutines and
// concurrent remove-and-fetch by the completion dispatch, with at-most-one
// delivery per key.
type Registry struct {
	mu      sync.Mutex
	pending map[uuid.UUID]pendingEntry
	logger  *log.Logger
}

// NewRegistry creates a Registry. A nil logger falls back to a default
// stderr logger.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Registry{
		pending: make(map[uuid.UUID]pendingEntry),
		logger:  logger,
	}
}

// register inserts the (callback, handle) pair under key. A key collision
// indicates broken key randomness or reuse and is reported as
// [shared.ErrKeyCollision].
func (r *Registry) register(key uuid.UUID, cb Callback, s *Search) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pending[key]; exists {
		return fmt.Errorf("%w: %s", shared.ErrKeyCollision, key)
	}
	r.pending[key] = pendingEntry{callback: cb, search: s}
	return nil
}

// remove drops the entry for key, if any. Used to roll back registration when
// issuing the remote request fails.
func (r *Registry) remove(key uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, key)
}

// Pending reports the number of operations still awaiting completion.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Registry) keys() []string {
	keys := make([]string, 0, len(r.pending))
	for k := range r.pending {
		keys = append(keys, k.String())
	}
	return keys
}

// Dispatch is the completion entry point the backend invokes when a search
// operation finishes. It removes the registry entry for key, fires the
// handle's completion signal, and then invokes the user callback with the
// handle.
//
// Malformed or duplicate notifications are logged and absorbed: a zero key
// or a key with no registry entry has no effect. Errors or panics raised by
// the user callback itself are the caller's responsibility.
func (r *Registry) Dispatch(key uuid.UUID, res catalog.Resource) {
	if key == uuid.Nil {
		r.logger.Warn("search completion received without a correlation key")
		return
	}

	r.mu.Lock()
	entry, ok := r.pending[key]
	if ok {
		delete(r.pending, key)
	} else {
		keys := r.keys()
		r.mu.Unlock()
		r.logger.Warn("search completion for unknown correlation key", "key", key, "pending", keys)
		return
	}
	r.mu.Unlock()

	loaded := res != nil && res.IsLoaded()
	r.logger.Debug("search completed", "key", key, "loaded", loaded)

	// complete stores the resource and then signals, so a goroutine woken
	// from Load and the callback both observe a completed state even when
	// dispatch wins the race with construction.
	entry.search.complete(res)
	if entry.callback != nil {
		entry.callback(entry.search)
	}
}
