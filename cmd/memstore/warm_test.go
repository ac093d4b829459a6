/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/suparena/memstore/datasource/ddb"
)

// tableAPI is a single-page DynamoDB table. Scans skip the hidden items,
// which are only reachable through GetItem.
type tableAPI struct {
	items  []map[string]types.AttributeValue
	hidden []map[string]types.AttributeValue
}

func (f *tableAPI) GetItem(_ context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	for _, item := range append(f.items, f.hidden...) {
		if assert.ObjectsAreEqual(in.Key["ID"], item["ID"]) {
			return &sdk.GetItemOutput{Item: item}, nil
		}
	}
	return &sdk.GetItemOutput{}, nil
}

func (f *tableAPI) Query(context.Context, *sdk.QueryInput, ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	return &sdk.QueryOutput{}, nil
}

func (f *tableAPI) Scan(_ context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	items := f.items
	if in.Limit != nil && int(*in.Limit) < len(items) {
		items = items[:*in.Limit]
	}
	return &sdk.ScanOutput{Items: items}, nil
}

func marshalItems(t *testing.T, items ...map[string]any) []map[string]types.AttributeValue {
	t.Helper()
	out := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		require.NoError(t, err)
		out = append(out, av)
	}
	return out
}

// executeWarm runs the CLI against api from an empty working directory and
// returns captured stdout.
func executeWarm(t *testing.T, api ddb.API, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	configPath := filepath.Join(dir, "ddb.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("region: us-east-1\ntable: clubs\n"), 0o600))

	orig := newAPI
	newAPI = func(context.Context, ddb.Config) (ddb.API, error) { return api, nil }
	t.Cleanup(func() { newAPI = orig })

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"warm", "-c", configPath, "--log-level", "error"}, args...))

	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWarmCommand(t *testing.T) {
	api := &tableAPI{
		items: marshalItems(t,
			map[string]any{"ID": "club-1", "Name": "Oakville"},
			map[string]any{"ID": "club-2", "Name": "Burlington"},
			map[string]any{"Name": "no id"},
		),
		hidden: marshalItems(t,
			map[string]any{"ID": "club-3", "Name": "Milton"},
		),
	}

	t.Run("Summary", func(t *testing.T) {
		out, err := executeWarm(t, api)
		require.NoError(t, err)

		assert.Contains(t, out, "Table clubs warmed")
		assert.Contains(t, out, "Entities:   2")
		assert.Contains(t, out, "Received:   3")
		assert.Contains(t, out, "Unreadable: 0")
	})

	t.Run("Limit", func(t *testing.T) {
		out, err := executeWarm(t, api, "--limit", "1")
		require.NoError(t, err)

		assert.Contains(t, out, "Entities:   1")
	})

	t.Run("Find", func(t *testing.T) {
		out, err := executeWarm(t, api, "--find", "club-2,club-3,club-9")
		require.NoError(t, err)

		assert.Contains(t, out, "Not found:  1")

		yamlStart := bytes.Index([]byte(out), []byte("- "))
		require.GreaterOrEqual(t, yamlStart, 0)
		var found []map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out[yamlStart:]), &found))
		require.Len(t, found, 2)
		assert.Equal(t, "Burlington", found[0]["Name"])
		assert.Equal(t, "Milton", found[1]["Name"])
	})

	t.Run("IDAttribute", func(t *testing.T) {
		out, err := executeWarm(t, api, "--id-attr", "Name")
		require.NoError(t, err)

		assert.Contains(t, out, "Entities:   3")
	})

	t.Run("MissingConfig", func(t *testing.T) {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"warm", "-c", filepath.Join(t.TempDir(), "absent.yaml")})

		assert.Error(t, root.Execute())
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "version: ")
	assert.Contains(t, out.String(), "goVersion: go")
}
