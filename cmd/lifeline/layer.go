// Layer subcommands: add, list, delete.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

var layerAddFlags struct {
	id       string
	timeline string
	number   int
	title    string
	startAge float64
	endAge   float64
}

var layerCmd = &cobra.Command{
	Use:   "layer",
	Short: "Manage layers",
}

var layerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a layer to a timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		l, err := backend.InsertLayer(&types.Layer{
			LayerID:     layerAddFlags.id,
			TimelineID:  layerAddFlags.timeline,
			LayerNumber: layerAddFlags.number,
			Title:       layerAddFlags.title,
			StartAge:    layerAddFlags.startAge,
			EndAge:      layerAddFlags.endAge,
		})
		if err != nil {
			return err
		}
		return printEntity(cmd, l, func() string { return formatLayer(l) })
	},
}

var layerListCmd = &cobra.Command{
	Use:   "list <timeline-id>",
	Short: "List a timeline's layers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		layers, err := backend.ListLayers(args[0])
		if err != nil {
			return err
		}
		return printEntity(cmd, layers, func() string {
			lines := make([]string, 0, len(layers))
			for _, l := range layers {
				lines = append(lines, formatLayer(l))
			}
			if len(lines) == 0 {
				return "no layers"
			}
			return strings.Join(lines, "\n")
		})
	},
}

var layerDeleteCmd = &cobra.Command{
	Use:   "delete <layer-id>",
	Short: "Delete a layer and its blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.DeleteLayer(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted layer %s\n", args[0])
		return nil
	},
}

func init() {
	layerAddCmd.Flags().StringVar(&layerAddFlags.id, "id", "", "layer ID (generated when empty)")
	layerAddCmd.Flags().StringVar(&layerAddFlags.timeline, "timeline", "", "owning timeline ID")
	layerAddCmd.Flags().IntVar(&layerAddFlags.number, "number", 0, "layer ordinal (1 = coarsest)")
	layerAddCmd.Flags().StringVar(&layerAddFlags.title, "title", "", "layer title")
	layerAddCmd.Flags().Float64Var(&layerAddFlags.startAge, "start", 0, "start age")
	layerAddCmd.Flags().Float64Var(&layerAddFlags.endAge, "end", 0, "end age")
	layerAddCmd.MarkFlagRequired("timeline")

	layerCmd.AddCommand(layerAddCmd)
	layerCmd.AddCommand(layerListCmd)
	layerCmd.AddCommand(layerDeleteCmd)
}
