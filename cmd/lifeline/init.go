package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the lifeline storage",
	Long:  `Create the data directory, apply the schema, and seed the duration rule table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		rules, err := backend.Rules()
		if err != nil {
			return err
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized lifeline storage in %s (%d duration rules)\n", dataDir, len(rules))
		return nil
	},
}
