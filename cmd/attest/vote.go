package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tkrendel/attest/internal/application/handlers"
	"github.com/tkrendel/attest/internal/domain/entities"
)

// voteKinds maps the CLI vote names to vote kinds castable at the boundary.
var voteKinds = map[string]entities.VoteKind{
	"up":     entities.VoteUpvoted,
	"down":   entities.VoteDownvoted,
	"delete": entities.VoteDeleteRequested,
}

func newVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Cast and retract votes on facts",
	}

	cmd.AddCommand(newVoteCastCmd(), newVoteRetractCmd())

	return cmd
}

func newVoteCastCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "cast <fact-id> <up|down|delete>",
		Short: "Cast a vote on a fact",
		Long: `Casts a vote on a fact and re-resolves the affected field's claims.

Casting the same vote twice is a no-op. Casting up after down (or vice
versa) replaces the earlier vote.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			factID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fact id %q", args[0])
			}
			kind, ok := voteKinds[args[1]]
			if !ok {
				return fmt.Errorf("invalid vote %q, use up|down|delete", args[1])
			}

			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				vote, err := handler.HandleCastVote(ctx, factID, kind, code)
				if err != nil {
					return fmt.Errorf("casting vote: %w", err)
				}
				fmt.Printf("Recorded %s vote #%d on fact #%d\n", vote.Kind, vote.ID, vote.FactID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Contributor credential code (omit to vote anonymously)")

	return cmd
}

func newVoteRetractCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "retract <fact-id> <up|down|delete>",
		Short: "Retract a previously cast vote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			factID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fact id %q", args[0])
			}
			kind, ok := voteKinds[args[1]]
			if !ok {
				return fmt.Errorf("invalid vote %q, use up|down|delete", args[1])
			}

			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				if err := handler.HandleRemoveVote(ctx, factID, kind, code); err != nil {
					return fmt.Errorf("retracting vote: %w", err)
				}
				fmt.Printf("Retracted %s vote on fact #%d\n", kind, factID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Contributor credential code (required)")

	return cmd
}
