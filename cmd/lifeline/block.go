// Block subcommands: add, list, delete.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

var blockAddFlags struct {
	id       string
	layer    string
	number   int
	title    string
	startAge float64
	endAge   float64
	duration float64
}

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage blocks",
}

var blockAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a block to a layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		duration := blockAddFlags.duration
		if !cmd.Flags().Changed("duration") {
			duration = blockAddFlags.endAge - blockAddFlags.startAge
		}

		blk, err := backend.InsertBlock(&types.Block{
			BlockID:       blockAddFlags.id,
			LayerID:       blockAddFlags.layer,
			LayerNumber:   blockAddFlags.number,
			Title:         blockAddFlags.title,
			StartAge:      blockAddFlags.startAge,
			EndAge:        blockAddFlags.endAge,
			DurationYears: duration,
		})
		if err != nil {
			return err
		}
		return printEntity(cmd, blk, func() string { return formatBlock(blk) })
	},
}

var blockListCmd = &cobra.Command{
	Use:   "list <layer-id>",
	Short: "List a layer's blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		blocks, err := backend.ListBlocks(args[0])
		if err != nil {
			return err
		}
		return printEntity(cmd, blocks, func() string {
			lines := make([]string, 0, len(blocks))
			for _, blk := range blocks {
				lines = append(lines, formatBlock(blk))
			}
			if len(lines) == 0 {
				return "no blocks"
			}
			return strings.Join(lines, "\n")
		})
	},
}

var blockDeleteCmd = &cobra.Command{
	Use:   "delete <block-id>",
	Short: "Delete a block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.DeleteBlock(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted block %s\n", args[0])
		return nil
	},
}

func init() {
	blockAddCmd.Flags().StringVar(&blockAddFlags.id, "id", "", "block ID (generated when empty)")
	blockAddCmd.Flags().StringVar(&blockAddFlags.layer, "layer", "", "owning layer ID")
	blockAddCmd.Flags().IntVar(&blockAddFlags.number, "number", 0, "layer ordinal the block sits on")
	blockAddCmd.Flags().StringVar(&blockAddFlags.title, "title", "", "block title")
	blockAddCmd.Flags().Float64Var(&blockAddFlags.startAge, "start", 0, "start age")
	blockAddCmd.Flags().Float64Var(&blockAddFlags.endAge, "end", 0, "end age")
	blockAddCmd.Flags().Float64Var(&blockAddFlags.duration, "duration", 0, "duration in years (default: end - start)")
	blockAddCmd.MarkFlagRequired("layer")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockListCmd)
	blockCmd.AddCommand(blockDeleteCmd)
}
