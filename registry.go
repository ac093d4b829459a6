/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/memstore/errors"
)

// typedStores holds the stores of one entity/methods type pair, by name.
type typedStores[T any, M any] struct {
	mu     sync.RWMutex
	stores map[string]*Store[T, M]
}

func newTypedStores[T any, M any]() *typedStores[T, M] {
	return &typedStores[T, M]{
		stores: make(map[string]*Store[T, M]),
	}
}

func (ts *typedStores[T, M]) register(s *Store[T, M]) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[s.Name()]; exists {
		return errors.NewAlreadyExistsError(kindOf[T](), s.Name())
	}
	ts.stores[s.Name()] = s
	return nil
}

func (ts *typedStores[T, M]) get(name string) (*Store[T, M], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	s, exists := ts.stores[name]
	if !exists {
		return nil, errors.NewNotFoundError(kindOf[T](), name)
	}
	return s, nil
}

func (ts *typedStores[T, M]) remove(name string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[name]; !exists {
		return errors.NewNotFoundError(kindOf[T](), name)
	}
	delete(ts.stores, name)
	return nil
}

func (ts *typedStores[T, M]) names() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	names := make([]string, 0, len(ts.stores))
	for k := range ts.stores {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Registry keeps named stores of any entity type. It is safe for concurrent
// use; the stores it hands out are not.
type Registry struct {
	mu     sync.Mutex
	byType map[[2]reflect.Type]any
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[[2]reflect.Type]any),
	}
}

func storesFor[T any, M any](r *Registry) *typedStores[T, M] {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]reflect.Type{reflect.TypeOf((*T)(nil)).Elem(), reflect.TypeOf((*M)(nil)).Elem()}
	if ts, exists := r.byType[key]; exists {
		return ts.(*typedStores[T, M])
	}

	ts := newTypedStores[T, M]()
	r.byType[key] = ts
	return ts
}

// Register adds s under its name. Stores of different types may share a name.
func Register[T any, M any](r *Registry, s *Store[T, M]) error {
	return storesFor[T, M](r).register(s)
}

// Lookup returns the store of type T/M registered under name.
func Lookup[T any, M any](r *Registry, name string) (*Store[T, M], error) {
	return storesFor[T, M](r).get(name)
}

// Unregister removes the store of type T/M registered under name.
func Unregister[T any, M any](r *Registry, name string) error {
	return storesFor[T, M](r).remove(name)
}

// Names lists, sorted, the names of the stores of type T/M.
func Names[T any, M any](r *Registry) []string {
	return storesFor[T, M](r).names()
}

func kindOf[T any]() string {
	return fmt.Sprintf("store[%s]", reflect.TypeOf((*T)(nil)).Elem())
}
