package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkrendel/attest/internal/application/handlers"
	"github.com/tkrendel/attest/internal/domain/entities"
)

func newResolveCmd() *cobra.Command {
	var (
		targetID string
		field    string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Recompute fact scores and statuses",
		Long: `Recomputes scores and statuses from vote histories. By default every
(target, field) group is recomputed; pass --target and --field to
recompute a single group.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if (targetID == "") != (field == "") {
				return fmt.Errorf("--target and --field must be used together")
			}

			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				if targetID != "" {
					if err := handler.HandleResolveGroup(ctx, targetID, entities.FieldName(field)); err != nil {
						return fmt.Errorf("resolving group: %w", err)
					}
					fmt.Printf("Resolved %s/%s\n", targetID, field)
					return nil
				}

				count, err := handler.HandleResolveAll(ctx)
				if err != nil {
					return fmt.Errorf("resolving groups: %w", err)
				}
				fmt.Printf("Resolved %d groups\n", count)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&targetID, "target", "", "Target to resolve")
	cmd.Flags().StringVar(&field, "field", "", "Field to resolve")

	return cmd
}
