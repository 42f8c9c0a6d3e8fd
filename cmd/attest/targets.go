package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkrendel/attest/internal/application/handlers"
)

func newTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Manage targets",
		Long:  "Targets are the subjects claims are made about.",
	}

	cmd.AddCommand(newTargetsAddCmd(), newTargetsListCmd())

	return cmd
}

func newTargetsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				target, err := handler.HandleCreateTarget(ctx, args[0])
				if err != nil {
					return fmt.Errorf("creating target: %w", err)
				}
				fmt.Printf("Created target %s (%s)\n", target.Name, target.ID)
				return nil
			})
		},
	}
}

func newTargetsListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				result, err := handler.HandleListTargets(ctx, limit, offset)
				if err != nil {
					return fmt.Errorf("listing targets: %w", err)
				}

				if len(result.Targets) == 0 {
					fmt.Println("No targets found.")
					return nil
				}

				fmt.Printf("Targets (%d total):\n\n", result.Total)
				for _, target := range result.Targets {
					fmt.Printf("  %-38s %s\n", target.ID, target.Name)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of targets to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of targets to skip")

	return cmd
}
