//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/suparena/memstore"
	"github.com/suparena/memstore/datasource"
	"github.com/suparena/memstore/datasource/ddb"
	"github.com/suparena/memstore/datasource/testmodels"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/storagemodels"
)

// setupSource connects to the table named by MEMSTORE_DDB_TABLE. The table
// must hold RatingSystem items keyed by ID; it is only read.
func setupSource(t *testing.T) *ddb.Source[testmodels.RatingSystem] {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv("MEMSTORE_DDB_TABLE") == "" {
		t.Skip("MEMSTORE_DDB_TABLE not set, skipping integration test")
	}

	cfg, err := ddb.LoadConfig(os.Getenv("MEMSTORE_DDB_CONFIG"))
	require.NoError(t, err)

	client, err := ddb.NewClient(context.Background(), cfg)
	require.NoError(t, err)

	return ddb.New[testmodels.RatingSystem](client, cfg)
}

func TestIntegrationWarm(t *testing.T) {
	src := setupSource(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := memstore.New(memstore.Config[testmodels.RatingSystem, memstore.NoMethods]{
		Name:  "ratingSystems",
		IDKey: testmodels.RatingSystemID,
	}, memstore.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	var pages int
	stats, err := datasource.Warm[testmodels.RatingSystem](ctx, store, src, nil,
		storagemodels.WithPageSize(25),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			pages = p.PagesProcessed
		}),
	)
	require.NoError(t, err)
	t.Logf("warmed %d entities over %d pages (%d unreadable)", store.Len(), pages, stats.Failed)

	for _, rs := range store.Find(func(testmodels.RatingSystem) bool { return true })[:min(store.Len(), 5)] {
		got, err := src.GetOne(ctx, rs.ID)
		require.NoError(t, err)
		assert.Equal(t, rs.Name, got.Name)
	}
}

func TestIntegrationGetOneMissing(t *testing.T) {
	src := setupSource(t)

	_, err := src.GetOne(context.Background(), fmt.Sprintf("missing-%d", time.Now().UnixNano()))
	assert.True(t, errors.IsNotFound(err))
}
