/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/storagemodels"
)

// Source reads entities of type T from an external system.
type Source[T any] interface {
	// GetOne returns the entity stored under key. A missing entity is
	// reported as (nil, nil) or as a NotFoundError.
	GetOne(ctx context.Context, key string) (*T, error)

	// Stream sends every entity selected by params and closes the channel.
	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
}

// Sink is the part of a memstore.Store that warm-up needs.
type Sink[T any] interface {
	Set(entities ...T)
	FindByID(id string) (T, bool)
	Logger() *zap.Logger
}

// WarmStats summarizes a Warm run.
type WarmStats struct {
	// Received counts entities handed to Set; validation may still have rejected some.
	Received int
	// Failed counts item-level errors that were skipped.
	Failed int
}

// Warm streams every entity selected by params from src into dst. Entities
// go through dst.Set, so validation and event notification apply. Item-level
// errors are logged and counted; a fatal stream error or a cancelled context
// stops the run and is returned together with the stats so far.
func Warm[T any](ctx context.Context, dst Sink[T], src Source[T], params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) (WarmStats, error) {
	var stats WarmStats
	results := src.Stream(ctx, params, opts...)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case r, ok := <-results:
			if !ok {
				dst.Logger().Debug("warm-up finished",
					zap.Int("received", stats.Received),
					zap.Int("failed", stats.Failed),
				)
				return stats, nil
			}
			if r.Fatal {
				return stats, fmt.Errorf("warm-up stream failed: %w", r.Error)
			}
			if r.Error != nil {
				stats.Failed++
				dst.Logger().Warn("skipping unreadable item",
					zap.Int64("index", r.Meta.Index),
					zap.Int("page", r.Meta.PageNumber),
					zap.Error(r.Error),
				)
				continue
			}
			dst.Set(r.Item)
			stats.Received++
		}
	}
}

// Fetch loads the ids that dst does not hold yet from src, one GetOne each,
// and sets the ones found. It returns how many entities were handed to Set.
// Misses are skipped; any other error stops the fetch before anything is set.
func Fetch[T any](ctx context.Context, dst Sink[T], src Source[T], ids ...string) (int, error) {
	found := make([]T, 0, len(ids))
	for _, id := range ids {
		if _, ok := dst.FindByID(id); ok {
			continue
		}
		e, err := src.GetOne(ctx, id)
		if errors.IsNotFound(err) || (err == nil && e == nil) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("fetching %q: %w", id, err)
		}
		found = append(found, *e)
	}

	dst.Set(found...)
	return len(found), nil
}
