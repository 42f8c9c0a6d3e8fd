// Package main provides the entry point for the attest CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "attest",
		Short:   "A crowd-sourced directory of claims with trust-weighted vote resolution",
		Version: version,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newTargetsCmd(),
		newFactsCmd(),
		newVoteCmd(),
		newCredentialsCmd(),
		newAuditCmd(),
		newResolveCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
