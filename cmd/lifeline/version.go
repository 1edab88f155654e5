package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lifeline/pkg/lifeline"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lifeline version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lifeline v%s\n", lifeline.Version)
	},
}
