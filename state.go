/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

// State is the identifier to entity mapping owned by a Store.
//
// Iteration follows insertion order: replacing an entity keeps its position,
// removing and re-adding it moves it to the end.
//
// A Store hands its State to the extension methods factory exactly once, as
// part of MethodsContext. Put and Delete write to the live mapping directly and
// therefore skip validation and event notification.
type State[T any] struct {
	items map[string]T
	keys  []string
}

func newState[T any]() *State[T] {
	return &State[T]{items: make(map[string]T)}
}

// Get returns the entity stored under id.
func (st *State[T]) Get(id string) (T, bool) {
	e, ok := st.items[id]
	return e, ok
}

// Has reports whether an entity is stored under id.
func (st *State[T]) Has(id string) bool {
	_, ok := st.items[id]
	return ok
}

// Len returns the number of stored entities.
func (st *State[T]) Len() int {
	return len(st.items)
}

// Keys returns a copy of the stored identifiers in iteration order.
func (st *State[T]) Keys() []string {
	out := make([]string, len(st.keys))
	copy(out, st.keys)
	return out
}

// Range calls fn for every entity in iteration order until fn returns false.
// Mutating the state from fn is allowed; Range works on a snapshot of the keys
// and skips entries deleted during the walk.
func (st *State[T]) Range(fn func(id string, entity T) bool) {
	keys := st.keys
	for _, id := range keys {
		e, ok := st.items[id]
		if !ok {
			continue
		}
		if !fn(id, e) {
			return
		}
	}
}

// Put stores entity under id and reports whether a previous value was replaced.
func (st *State[T]) Put(id string, entity T) (replaced bool) {
	if _, replaced = st.items[id]; !replaced {
		st.keys = append(st.keys, id)
	}
	st.items[id] = entity
	return replaced
}

// Delete removes the entity under id and returns it.
func (st *State[T]) Delete(id string) (T, bool) {
	e, ok := st.items[id]
	if !ok {
		return e, false
	}
	delete(st.items, id)
	for i, k := range st.keys {
		if k == id {
			// copy instead of append so a Range in progress keeps its snapshot
			keys := make([]string, 0, len(st.keys)-1)
			keys = append(keys, st.keys[:i]...)
			st.keys = append(keys, st.keys[i+1:]...)
			break
		}
	}
	return e, true
}

func (st *State[T]) reset() {
	st.items = make(map[string]T)
	st.keys = nil
}
