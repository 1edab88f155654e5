// Export and import commands for JSONL snapshots.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the full hierarchy to JSONL files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.Export(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported snapshot to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Load a JSONL snapshot through the validators",
	Long: `Insert every record from a snapshot directory in one transaction,
parents before children. If any record violates a constraint, nothing
is imported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.Import(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported snapshot from %s\n", args[0])
		return nil
	},
}
