/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package main is the entry point for the memstore diagnostic CLI.
//
// Usage:
//
//	memstore warm -c ddb.yaml                 # Warm a store from DynamoDB and report the count
//	memstore warm -c ddb.yaml --find a,b      # Also print entities a and b
//	memstore version                          # Show version info
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "memstore",
		Short: "Inspect memstore warm-up against a data source",
		Long: `memstore loads entities from a DynamoDB table into an in-memory store
the same way a service does at startup, and reports what it holds.

Connection settings come from a YAML file, a .env file in the working
directory and MEMSTORE_DDB_* environment variables, in increasing precedence.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(newVersionCmd(), newWarmCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// Cobra already printed the error
		os.Exit(1)
	}
}
