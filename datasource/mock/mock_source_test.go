/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/memstore/datasource/testmodels"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/storagemodels"
)

func collect[T any](ch <-chan storagemodels.StreamResult[T]) []storagemodels.StreamResult[T] {
	var out []storagemodels.StreamResult[T]
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestSourceGetOne(t *testing.T) {
	ctx := context.Background()
	src := New(testmodels.RatingSystemID).Add(testmodels.RatingSystem{ID: "TTOakville", Name: "Oakville"})

	got, err := src.GetOne(ctx, "TTOakville")
	require.NoError(t, err)
	assert.Equal(t, "Oakville", got.Name)

	_, err = src.GetOne(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	src.WithGetError(stderrors.New("unavailable"))
	_, err = src.GetOne(ctx, "TTOakville")
	assert.EqualError(t, err, "unavailable")
	assert.Equal(t, 3, src.GetCalls())
}

func TestSourceStream(t *testing.T) {
	ctx := context.Background()

	t.Run("InsertionOrder", func(t *testing.T) {
		src := New(testmodels.RatingSystemID).Add(
			testmodels.RatingSystem{ID: "b"},
			testmodels.RatingSystem{ID: "a"},
			testmodels.RatingSystem{ID: "b", Name: "replaced"},
		)

		var progress storagemodels.StreamProgress
		results := collect(src.Stream(ctx, nil,
			storagemodels.WithPageSize(1),
			storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) { progress = p }),
		))

		require.Len(t, results, 2)
		assert.Equal(t, "b", results[0].Item.ID)
		assert.Equal(t, "replaced", results[0].Item.Name)
		assert.Equal(t, 2, results[1].Meta.PageNumber)
		assert.True(t, progress.Done)
		assert.Equal(t, int64(2), progress.ItemsProcessed)
	})

	t.Run("Limit", func(t *testing.T) {
		src := New(testmodels.RatingSystemID).Add(
			testmodels.RatingSystem{ID: "1"},
			testmodels.RatingSystem{ID: "2"},
			testmodels.RatingSystem{ID: "3"},
		)
		results := collect(src.Stream(ctx, &storagemodels.QueryParams{Limit: aws.Int32(2)}))
		assert.Len(t, results, 2)
	})

	t.Run("Errors", func(t *testing.T) {
		src := New(testmodels.RatingSystemID).
			Add(testmodels.RatingSystem{ID: "1"}, testmodels.RatingSystem{ID: "2"}).
			WithItemError(0, stderrors.New("corrupt")).
			WithStreamError(stderrors.New("throttled"))

		results := collect(src.Stream(ctx, nil))
		require.Len(t, results, 3)
		assert.EqualError(t, results[0].Error, "corrupt")
		assert.False(t, results[0].Fatal)
		assert.NoError(t, results[1].Error)
		assert.True(t, results[2].Fatal)
	})
}
