/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/memstore/internal/logger"
)

// Store is an in-memory collection of entities keyed by a string identifier,
// with change notification.
//
// Store does no locking. Every operation runs to completion on the caller's
// goroutine, handlers included, so a store must be confined to one goroutine
// or guarded by the caller.
type Store[T any, M any] struct {
	cfg     Config[T, M]
	state   *State[T]
	subs    *subscriptions[T]
	methods M
	hasM    bool
	logger  *zap.Logger
}

// New creates an empty store. It fails if the configuration has no name or no
// identifier selector, or if the extension methods factory returns an error.
func New[T any, M any](cfg Config[T, M], opts ...Option) (*Store[T, M], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o, err := applyOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("store %q: %w", cfg.Name, err)
	}
	if o.logger == nil {
		o.logger = logger.Default()
	}

	s := &Store[T, M]{
		cfg:    cfg,
		state:  newState[T](),
		subs:   newSubscriptions[T](o.newID),
		logger: o.logger.With(zap.String("store", cfg.Name)),
	}

	if cfg.Methods != nil {
		m, err := cfg.Methods(MethodsContext[T, M]{
			State:  s.state,
			Self:   s,
			Config: cfg,
		})
		if err != nil {
			return nil, fmt.Errorf("store %q: building methods: %w", cfg.Name, err)
		}
		s.methods = m
		s.hasM = true
	}

	return s, nil
}

// Name returns the configured store name.
func (s *Store[T, M]) Name() string {
	return s.cfg.Name
}

// Config returns the configuration the store was created with.
func (s *Store[T, M]) Config() Config[T, M] {
	return s.cfg
}

// Logger returns the store's diagnostic logger.
func (s *Store[T, M]) Logger() *zap.Logger {
	return s.logger
}

// Methods returns the extension methods built at construction, or the zero M
// when no factory was configured.
func (s *Store[T, M]) Methods() M {
	return s.methods
}

// HasMethods reports whether an extension methods factory was configured.
func (s *Store[T, M]) HasMethods() bool {
	return s.hasM
}

// Len returns the number of entities in the store.
func (s *Store[T, M]) Len() int {
	return s.state.Len()
}

// Find returns every entity matching query.
func (s *Store[T, M]) Find(query func(T) bool) []T {
	out := make([]T, 0)
	s.state.Range(func(_ string, e T) bool {
		if query(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// FindOne returns the first entity matching query.
func (s *Store[T, M]) FindOne(query func(T) bool) (T, bool) {
	var (
		found T
		ok    bool
	)
	s.state.Range(func(_ string, e T) bool {
		if query(e) {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok
}

// FindAll returns every entity.
func (s *Store[T, M]) FindAll() []T {
	out := make([]T, 0, s.state.Len())
	s.state.Range(func(_ string, e T) bool {
		out = append(out, e)
		return true
	})
	return out
}

// FindAllByID returns the entities stored under ids, in the order of ids.
// Unknown ids are skipped.
func (s *Store[T, M]) FindAllByID(ids ...string) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.state.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// FindByID returns the entity stored under id.
func (s *Store[T, M]) FindByID(id string) (T, bool) {
	return s.state.Get(id)
}

// Set adds or replaces entities, one at a time and in order. An entity
// rejected by the validation function, or without an identifier, is skipped
// without affecting the others. Each stored entity fires an add event, or an
// update event when it replaced an entity with the same identifier.
func (s *Store[T, M]) Set(entities ...T) {
	for _, e := range entities {
		if s.cfg.Validation != nil && !s.cfg.Validation(e, s.cfg, s) {
			s.logger.Debug("entity rejected by validation")
			continue
		}

		id := s.cfg.IDKey(e)
		if id == "" {
			s.logger.Debug("entity rejected: empty identifier")
			continue
		}

		if s.state.Put(id, e) {
			s.notify(EventUpdate, e)
		} else {
			s.notify(EventAdd, e)
		}
	}
}

// Remove deletes the entities stored under ids and fires a remove event
// carrying each deleted entity. Unknown ids are ignored.
func (s *Store[T, M]) Remove(ids ...string) {
	for _, id := range ids {
		if e, ok := s.state.Delete(id); ok {
			s.notify(EventRemove, e)
		}
	}
}

// Clear deletes every entity. Unlike Remove it fires no events.
// Subscriptions are kept.
func (s *Store[T, M]) Clear() {
	s.state.reset()
}

// Subscribe registers h for every subsequent add, update and remove event and
// returns a function that unregisters it. Calling that function more than once
// is harmless.
func (s *Store[T, M]) Subscribe(h Handler[T]) (unsubscribe func()) {
	id := s.subs.add(h)
	return func() {
		s.subs.remove(id)
	}
}
