/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory datasource.Source for testing
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/storagemodels"
)

// Source is an in-memory datasource.Source[T]. Items stream in the order they
// were added, one page per PageSize items.
type Source[T any] struct {
	mu         sync.RWMutex
	keyFunc    func(T) string
	keys       []string
	data       map[string]T
	getError   error
	streamErr  error
	itemErrors map[int64]error
	getCalls   int
}

// New creates a mock Source keyed by keyFunc.
func New[T any](keyFunc func(T) string) *Source[T] {
	return &Source[T]{
		keyFunc:    keyFunc,
		data:       make(map[string]T),
		itemErrors: make(map[int64]error),
	}
}

// WithGetError makes GetOne return err
func (m *Source[T]) WithGetError(err error) *Source[T] {
	m.getError = err
	return m
}

// WithStreamError makes Stream end with a fatal err after the items
func (m *Source[T]) WithStreamError(err error) *Source[T] {
	m.streamErr = err
	return m
}

// WithItemError replaces the item at index with an item-level err
func (m *Source[T]) WithItemError(index int64, err error) *Source[T] {
	m.itemErrors[index] = err
	return m
}

// Add stores entities, replacing any with the same key.
func (m *Source[T]) Add(entities ...T) *Source[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entities {
		key := m.keyFunc(e)
		if _, exists := m.data[key]; !exists {
			m.keys = append(m.keys, key)
		}
		m.data[key] = e
	}
	return m
}

// GetCalls returns how many times GetOne was called.
func (m *Source[T]) GetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getCalls
}

// GetOne retrieves an entity by key
func (m *Source[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Stream sends all entities in insertion order. Params are ignored except Limit.
func (m *Source[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)
	resultChan := make(chan storagemodels.StreamResult[T], options.BufferSize)

	m.mu.RLock()
	items := make([]T, 0, len(m.keys))
	for _, k := range m.keys {
		items = append(items, m.data[k])
	}
	m.mu.RUnlock()

	if params != nil && params.Limit != nil && *params.Limit > 0 && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}

	go func() {
		defer close(resultChan)

		start := time.Now()
		pageSize := int64(options.PageSize)
		if pageSize <= 0 {
			pageSize = 1
		}

		for i, v := range items {
			index := int64(i)
			result := storagemodels.StreamResult[T]{
				Item: v,
				Meta: storagemodels.StreamMeta{
					Index:      index,
					PageNumber: int(index/pageSize) + 1,
					Timestamp:  time.Now(),
				},
			}
			if err, ok := m.itemErrors[index]; ok {
				var zero T
				result.Item = zero
				result.Error = err
			}
			select {
			case <-ctx.Done():
				return
			case resultChan <- result:
			}
		}

		if m.streamErr != nil {
			select {
			case <-ctx.Done():
			case resultChan <- storagemodels.StreamResult[T]{Error: m.streamErr, Fatal: true}:
			}
			return
		}

		if options.ProgressHandler != nil {
			options.ProgressHandler(storagemodels.StreamProgress{
				ItemsProcessed: int64(len(items)),
				PagesProcessed: (len(items) + int(pageSize) - 1) / int(pageSize),
				StartTime:      start,
				Done:           true,
			})
		}
	}()

	return resultChan
}
