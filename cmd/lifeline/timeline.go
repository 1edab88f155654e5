// Timeline subcommands: create, get, list, delete.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

var timelineCreateFlags struct {
	id       string
	user     string
	startAge float64
	endAge   float64
	goal     string
	layers   int
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Manage timelines",
}

var timelineCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		t, err := backend.InsertTimeline(&types.Timeline{
			TimelineID: timelineCreateFlags.id,
			UserName:   timelineCreateFlags.user,
			StartAge:   timelineCreateFlags.startAge,
			EndAge:     timelineCreateFlags.endAge,
			EndGoal:    timelineCreateFlags.goal,
			NumLayers:  timelineCreateFlags.layers,
		})
		if err != nil {
			return err
		}
		return printEntity(cmd, t, func() string { return formatTimeline(t) })
	},
}

var timelineGetCmd = &cobra.Command{
	Use:   "get <timeline-id>",
	Short: "Show a timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		t, err := backend.GetTimeline(args[0])
		if err != nil {
			return err
		}
		return printEntity(cmd, t, func() string { return formatTimeline(t) })
	},
}

var timelineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all timelines",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		timelines, err := backend.ListTimelines()
		if err != nil {
			return err
		}
		return printEntity(cmd, timelines, func() string {
			lines := make([]string, 0, len(timelines))
			for _, t := range timelines {
				lines = append(lines, formatTimeline(t))
			}
			if len(lines) == 0 {
				return "no timelines"
			}
			return strings.Join(lines, "\n")
		})
	},
}

var timelineDeleteCmd = &cobra.Command{
	Use:   "delete <timeline-id>",
	Short: "Delete a timeline and all of its layers and blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.DeleteTimeline(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted timeline %s\n", args[0])
		return nil
	},
}

func init() {
	timelineCreateCmd.Flags().StringVar(&timelineCreateFlags.id, "id", "", "timeline ID (generated when empty)")
	timelineCreateCmd.Flags().StringVar(&timelineCreateFlags.user, "user", "", "user name")
	timelineCreateCmd.Flags().Float64Var(&timelineCreateFlags.startAge, "start", 0, "start age")
	timelineCreateCmd.Flags().Float64Var(&timelineCreateFlags.endAge, "end", 0, "end age")
	timelineCreateCmd.Flags().StringVar(&timelineCreateFlags.goal, "goal", "", "end goal")
	timelineCreateCmd.Flags().IntVar(&timelineCreateFlags.layers, "layers", 0, "intended number of layers")

	timelineCmd.AddCommand(timelineCreateCmd)
	timelineCmd.AddCommand(timelineGetCmd)
	timelineCmd.AddCommand(timelineListCmd)
	timelineCmd.AddCommand(timelineDeleteCmd)
}
