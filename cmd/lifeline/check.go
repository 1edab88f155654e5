// The check command runs the constraint self-test against the live store.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the constraint self-test",
	Long: `Exercise the positive and negative constraint scenarios against the
live store using throwaway fixtures. The store is left unchanged. Exits
non-zero when any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		report, err := backend.SelfTest()
		if err != nil {
			return err
		}

		if flagJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			for _, check := range report.Checks {
				status := "ok"
				if !check.Passed {
					status = "FAIL"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s", status, check.Name)
				if check.Detail != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  (%s)", check.Detail)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
		}

		if !report.Passed {
			return fmt.Errorf("self-test failed: %d of %d checks", countFailed(report.Checks), len(report.Checks))
		}
		if !flagJSON {
			fmt.Fprintln(cmd.OutOrStdout(), "all checks passed")
		}
		return nil
	},
}

func countFailed(checks []types.SelfTestCheck) int {
	n := 0
	for _, c := range checks {
		if !c.Passed {
			n++
		}
	}
	return n
}
