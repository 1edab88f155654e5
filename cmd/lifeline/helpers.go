// Shared helpers for lifeline CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lifeline/internal/sqlite"
	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend,
// and attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:                types.BackendSQLite,
		DataDir:                dataDir,
		MinimumDurationByLayer: configRuleOverrides,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// printEntity writes an entity to stdout, as indented JSON when --json is
// set, otherwise via the provided plain formatter.
func printEntity(cmd *cobra.Command, entity any, plain func() string) error {
	if flagJSON {
		data, err := json.MarshalIndent(entity, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), plain())
	return nil
}

// formatTimeline renders a timeline for plain output.
func formatTimeline(t *types.Timeline) string {
	return fmt.Sprintf("%s  %s  ages %g-%g  layers=%d  goal=%q",
		t.TimelineID, t.UserName, t.StartAge, t.EndAge, t.NumLayers, t.EndGoal)
}

// formatLayer renders a layer for plain output.
func formatLayer(l *types.Layer) string {
	return fmt.Sprintf("%s  layer %d  ages %g-%g  %q",
		l.LayerID, l.LayerNumber, l.StartAge, l.EndAge, l.Title)
}

// formatBlock renders a block for plain output.
func formatBlock(b *types.Block) string {
	return fmt.Sprintf("%s  layer %d  ages %g-%g  %g years  %q",
		b.BlockID, b.LayerNumber, b.StartAge, b.EndAge, b.DurationYears, b.Title)
}
