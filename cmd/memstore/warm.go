/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/suparena/memstore"
	"github.com/suparena/memstore/datasource"
	"github.com/suparena/memstore/datasource/ddb"
	"github.com/suparena/memstore/internal/logger"
	"github.com/suparena/memstore/storagemodels"
)

// record is a schemaless table item.
type record = map[string]any

// newAPI connects to DynamoDB. Tests replace it with a fake.
var newAPI = func(ctx context.Context, cfg ddb.Config) (ddb.API, error) {
	client, err := ddb.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type warmFlags struct {
	configFile string
	idAttr     string
	find       []string
	limit      int32
}

func newWarmCmd() *cobra.Command {
	var flags warmFlags

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Load a table into an in-memory store",
		Long: `Scan a DynamoDB table into an in-memory store and print how many entities
it holds. With --find, the named entities are printed as YAML; ids missing
after the scan are fetched individually.

Example:
  memstore warm -c ddb.yaml
  memstore warm -c ddb.yaml --id-attr PK --find club-1,club-2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			log, err := logger.New(level, "console")
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			return runWarm(cmd, log, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "path to the DynamoDB config file")
	cmd.Flags().StringVar(&flags.idAttr, "id-attr", "", "attribute holding the entity id (default: the table key attribute)")
	cmd.Flags().StringSliceVar(&flags.find, "find", nil, "ids of entities to print")
	cmd.Flags().Int32Var(&flags.limit, "limit", 0, "maximum number of items to scan, 0 for all")
	return cmd
}

func runWarm(cmd *cobra.Command, log *zap.Logger, flags warmFlags) error {
	ctx := cmd.Context()

	cfg, err := ddb.LoadConfig(flags.configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	idAttr := flags.idAttr
	if idAttr == "" {
		idAttr = cfg.KeyAttribute
	}

	api, err := newAPI(ctx, cfg)
	if err != nil {
		return err
	}

	store, err := memstore.New(memstore.Config[record, memstore.NoMethods]{
		Name:  cfg.Table,
		IDKey: attributeID(idAttr),
	}, memstore.WithLogger(log))
	if err != nil {
		return err
	}
	src := ddb.New[record](api, cfg)

	var params *storagemodels.QueryParams
	if flags.limit > 0 {
		limit := flags.limit
		params = &storagemodels.QueryParams{Limit: &limit}
	}

	stats, err := datasource.Warm[record](ctx, store, src, params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Table %s warmed\n", cfg.Table)
	fmt.Fprintf(out, "  Entities:   %d\n", store.Len())
	fmt.Fprintf(out, "  Received:   %d\n", stats.Received)
	fmt.Fprintf(out, "  Unreadable: %d\n", stats.Failed)

	if len(flags.find) == 0 {
		return nil
	}

	fetched, err := datasource.Fetch[record](ctx, store, src, flags.find...)
	if err != nil {
		return err
	}
	if fetched > 0 {
		log.Debug("fetched entities missing after warm-up", zap.Int("count", fetched))
	}

	found := store.FindAllByID(flags.find...)
	if missing := len(flags.find) - len(found); missing > 0 {
		fmt.Fprintf(out, "  Not found:  %d\n", missing)
	}

	enc := yaml.NewEncoder(out)
	if err := enc.Encode(found); err != nil {
		return fmt.Errorf("encoding entities: %w", err)
	}
	return enc.Close()
}

// attributeID keys records by the value of attr. Records without it get an
// empty id and are rejected by the store.
func attributeID(attr string) memstore.IDFunc[record] {
	return func(r record) string {
		switch v := r[attr].(type) {
		case nil:
			return ""
		case string:
			return v
		default:
			return fmt.Sprint(v)
		}
	}
}
