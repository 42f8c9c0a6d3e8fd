package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkrendel/attest/internal/application/handlers"
	"github.com/tkrendel/attest/internal/domain/entities"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage contributor credentials",
		Long: `Credentials classify contributors. Votes cast with a valid credential
carry its trust weight; revoked credentials keep their weight only for
votes cast before the revocation.`,
	}

	cmd.AddCommand(newCredentialsSetCmd(), newCredentialsRevokeCmd())

	return cmd
}

func newCredentialsSetCmd() *cobra.Command {
	var (
		status string
		trust  float64
		owner  string
	)

	cmd := &cobra.Command{
		Use:   "set <code>",
		Short: "Record a credential classification",
		Long: `Records the classification of a credential as delivered by an external
identity check. Unseen codes are created on the fly.

Examples:
  attest credentials set my-secret-code --status valid
  attest credentials set my-secret-code --status valid --trust 2.0 --owner <target-id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				cred, err := handler.HandleSyncCredential(ctx, args[0], entities.CredentialStatus(status), trust, owner)
				if err != nil {
					return fmt.Errorf("setting credential: %w", err)
				}
				fmt.Printf("Credential %s: %s, trust %.1f\n", cred.Code, cred.Status, cred.TrustWeight)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(entities.CredentialValid), "Credential status (valid|revoked|nonexistent)")
	cmd.Flags().Float64Var(&trust, "trust", entities.DefaultTrustWeight, "Trust weight")
	cmd.Flags().StringVar(&owner, "owner", "", "Target this credential belongs to (for self-edits)")

	return cmd
}

func newCredentialsRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <code>",
		Short: "Revoke a credential as of now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDirectoryHandler(func(handler *handlers.DirectoryHandler) error {
				cred, err := handler.HandleRevokeCredential(ctx, args[0])
				if err != nil {
					return fmt.Errorf("revoking credential: %w", err)
				}
				fmt.Printf("Revoked credential %s at %s\n", cred.Code, cred.RevokedAt.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}
