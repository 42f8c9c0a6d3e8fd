package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkrendel/attest/internal/application/handlers"
	"github.com/tkrendel/attest/internal/domain/entities"
)

func newFactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Propose and inspect facts",
		Long: `Facts are candidate values for a target's editable fields.

Valid fields: ` + fieldList() + `.`,
	}

	cmd.AddCommand(newFactsAddCmd(), newFactsShowCmd())

	return cmd
}

func newFactsAddCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "add <target-id> <field> <value>",
		Short: "Propose a value for a target's field",
		Long: `Proposes a value for one field of a target. The proposal records an
implicit added vote by the proposer and re-resolves the field's claims.
Re-proposing an existing value is a no-op.

Examples:
  attest facts add 7f1c… city Lima
  attest facts add 7f1c… company "Initech" --code my-secret-code`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				fact, err := handler.HandleCreateFact(ctx, args[0], entities.FieldName(args[1]), args[2], code)
				if err != nil {
					return fmt.Errorf("creating fact: %w", err)
				}
				fmt.Printf("Fact #%d: %s = %q [%s, score %.1f]\n", fact.ID, fact.Field, fact.Value, fact.Status, fact.Score)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Contributor credential code (omit to propose anonymously)")

	return cmd
}

func newFactsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <target-id>",
		Short: "Show a target's facts grouped by field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				result, err := handler.HandleShowTarget(ctx, args[0])
				if err != nil {
					return fmt.Errorf("showing target: %w", err)
				}

				fmt.Printf("%s (%s)\n", result.Target.Name, result.Target.ID)
				if len(result.Groups) == 0 {
					fmt.Println("  No facts.")
					return nil
				}
				for _, group := range result.Groups {
					fmt.Printf("\n  %s:\n", group.Field)
					for _, fact := range group.Facts {
						fmt.Printf("    #%-5d %-40q %-10s %.1f\n", fact.ID, fact.Value, fact.Status, fact.Score)
					}
				}
				return nil
			})
		},
	}
}

func fieldList() string {
	s := ""
	for i, f := range entities.FieldNames {
		if i > 0 {
			s += ", "
		}
		s += string(f)
	}
	return s
}
