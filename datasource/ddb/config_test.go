/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/memstore/errors"
)

// inTempDir runs the test from an empty directory so no stray .env is loaded.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadConfig(t *testing.T) {
	t.Run("FromYAML", func(t *testing.T) {
		dir := inTempDir(t)
		path := filepath.Join(dir, "ddb.yaml")
		writeFile(t, path, "region: us-west-2\ntable: ratings\nendpoint: http://localhost:8000\n")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "us-west-2", cfg.Region)
		assert.Equal(t, "ratings", cfg.Table)
		assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
		assert.Equal(t, DefaultKeyAttribute, cfg.KeyAttribute)
	})

	t.Run("EnvironmentOverridesYAML", func(t *testing.T) {
		dir := inTempDir(t)
		path := filepath.Join(dir, "ddb.yaml")
		writeFile(t, path, "table: ratings\nkeyAttribute: PK\n")
		t.Setenv("MEMSTORE_DDB_TABLE", "players")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "players", cfg.Table)
		assert.Equal(t, "PK", cfg.KeyAttribute)
	})

	t.Run("DotEnv", func(t *testing.T) {
		dir := inTempDir(t)
		writeFile(t, filepath.Join(dir, ".env"), "MEMSTORE_DDB_TABLE=clubs\n")
		t.Cleanup(func() { _ = os.Unsetenv("MEMSTORE_DDB_TABLE") })

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "clubs", cfg.Table)
	})

	t.Run("MissingTable", func(t *testing.T) {
		inTempDir(t)
		t.Setenv("MEMSTORE_DDB_TABLE", "")

		_, err := LoadConfig("")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("MissingFile", func(t *testing.T) {
		dir := inTempDir(t)

		_, err := LoadConfig(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		dir := inTempDir(t)
		path := filepath.Join(dir, "ddb.yaml")
		writeFile(t, path, "table: [unclosed\n")

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Table: "ratings"}.Validate())
	assert.NoError(t, Config{Table: "ratings", AccessKey: "a", SecretKey: "s"}.Validate())
	assert.True(t, errors.IsValidationError(Config{}.Validate()))
	assert.True(t, errors.IsValidationError(Config{Table: "ratings", AccessKey: "a"}.Validate()))
}
