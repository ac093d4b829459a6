/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"go.uber.org/zap"

	"github.com/suparena/memstore/errors"
)

// EventType names the change a notification describes.
type EventType string

const (
	EventAdd    EventType = "add"
	EventUpdate EventType = "update"
	EventRemove EventType = "remove"
)

// Handler receives store events. It runs synchronously inside Set or Remove.
// A returned error or a panic is logged and otherwise ignored.
type Handler[T any] func(event EventType, entity T) error

// subscriptions is the handler registry of one store, in registration order.
type subscriptions[T any] struct {
	newID    func() string
	handlers map[string]Handler[T]
	order    []string
}

func newSubscriptions[T any](newID func() string) *subscriptions[T] {
	return &subscriptions[T]{
		newID:    newID,
		handlers: make(map[string]Handler[T]),
	}
}

func (ss *subscriptions[T]) add(h Handler[T]) string {
	id := ss.newID()
	ss.handlers[id] = h
	ss.order = append(ss.order, id)
	return id
}

func (ss *subscriptions[T]) remove(id string) {
	if _, ok := ss.handlers[id]; !ok {
		return
	}
	delete(ss.handlers, id)
	order := make([]string, 0, len(ss.order))
	for _, k := range ss.order {
		if k != id {
			order = append(order, k)
		}
	}
	ss.order = order
}

// notify delivers one event to every handler registered when delivery starts.
// Handlers unsubscribed by an earlier handler in the same delivery are skipped.
func (s *Store[T, M]) notify(event EventType, entity T) {
	ids := s.subs.order
	for _, id := range ids {
		h, ok := s.subs.handlers[id]
		if !ok {
			continue
		}
		if err := invokeHandlerSafe(h, event, entity); err != nil {
			s.logger.Error("event handler failed",
				zap.Error(errors.NewHandlerError(s.cfg.Name, id, string(event), err)),
				zap.String("subscription", id),
				zap.String("event", string(event)),
				zap.String("entity", s.cfg.IDKey(entity)),
			)
		}
	}
}

// invokeHandlerSafe calls h, turning a panic into an error.
func invokeHandlerSafe[T any](h Handler[T], event EventType, entity T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPanicError(r)
		}
	}()
	if h == nil {
		return nil
	}
	return h(event, entity)
}
