package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkrendel/attest/internal/application/handlers"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check and repair vote integrity",
		Long: `The auditor scans every fact's vote history for structural violations:
duplicate or mismatched added votes, self up/down votes, delete requests
by non-authors, and up/down flip-flops.

'check' only reports; 'convert' repairs what it safely can.`,
	}

	cmd.AddCommand(newAuditCheckCmd(), newAuditConvertCmd())

	return cmd
}

func newAuditCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report vote integrity violations without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withAuditHandler(func(handler *handlers.AuditHandler) error {
				report, err := handler.HandleCheck(ctx)
				if err != nil {
					return fmt.Errorf("checking votes: %w", err)
				}

				for _, v := range report.Violations {
					fmt.Println(v.Message)
				}
				fmt.Printf("Total violations: %d\n", len(report.Violations))
				fmt.Printf("Facts without violations: %d/%d\n", report.CleanFacts, report.TotalFacts)
				return nil
			})
		},
	}
}

func newAuditConvertCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Repair vote integrity violations",
		Long: `Repairs what can be repaired safely: drops self up/down votes, rewrites
non-author delete requests into downvotes, and keeps only each author's
most recent up/down vote. Added votes are never touched.

This rewrites history; back up the database first. Run 'attest resolve'
afterwards to recompute statuses from the repaired histories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !yes {
				fmt.Print("Have you created a backup? [y/N] ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if strings.TrimSpace(line) != "y" {
					fmt.Println("Create it then!")
					return nil
				}
			}

			return withAuditHandler(func(handler *handlers.AuditHandler) error {
				applied, err := handler.HandleConvert(ctx)
				if err != nil {
					return fmt.Errorf("converting votes: %w", err)
				}

				for _, repair := range applied {
					fmt.Printf("%s vote #%d: %s\n", repair.Action.Op, repair.Action.VoteID, repair.Action.Reason)
				}
				fmt.Printf("Total actions taken: %d\n", len(applied))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the backup confirmation prompt")

	return cmd
}
