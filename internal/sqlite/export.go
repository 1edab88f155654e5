// This file implements JSONL snapshot export and import. Export writes
// one JSONL file per entity table; Import replays the records through the
// validated insert path inside a single transaction, so a snapshot that
// violates the constraints is rejected whole.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// Snapshot file names written into the export directory.
const (
	TimelinesJSONL = "timelines.jsonl"
	LayersJSONL    = "layers.jsonl"
	BlocksJSONL    = "blocks.jsonl"
)

// Export writes all timelines, layers, and blocks to JSONL files in dir,
// one file per table, each written atomically.
func (b *Backend) Export(dir string) error {
	timelines, err := b.ListTimelines()
	if err != nil {
		return err
	}
	timelineRecords, err := marshalRecords(len(timelines), func(i int) any { return timelines[i] })
	if err != nil {
		return fmt.Errorf("marshaling timelines: %w", err)
	}
	if err := writeJSONL(filepath.Join(dir, TimelinesJSONL), timelineRecords); err != nil {
		return fmt.Errorf("writing %s: %w", TimelinesJSONL, err)
	}

	var layers []*types.Layer
	var blocks []*types.Block
	for _, t := range timelines {
		tls, err := b.ListLayers(t.TimelineID)
		if err != nil {
			return err
		}
		for _, l := range tls {
			layers = append(layers, l)
			lbs, err := b.ListBlocks(l.LayerID)
			if err != nil {
				return err
			}
			blocks = append(blocks, lbs...)
		}
	}

	layerRecords, err := marshalRecords(len(layers), func(i int) any { return layers[i] })
	if err != nil {
		return fmt.Errorf("marshaling layers: %w", err)
	}
	if err := writeJSONL(filepath.Join(dir, LayersJSONL), layerRecords); err != nil {
		return fmt.Errorf("writing %s: %w", LayersJSONL, err)
	}

	blockRecords, err := marshalRecords(len(blocks), func(i int) any { return blocks[i] })
	if err != nil {
		return fmt.Errorf("marshaling blocks: %w", err)
	}
	if err := writeJSONL(filepath.Join(dir, BlocksJSONL), blockRecords); err != nil {
		return fmt.Errorf("writing %s: %w", BlocksJSONL, err)
	}

	return nil
}

// Import reads JSONL snapshot files from dir and inserts every record
// through the validators in one transaction: parents before children,
// nothing persisted if any record is rejected. Malformed lines are
// skipped by the reader.
func (b *Backend) Import(dir string) error {
	timelineRecords, err := readJSONL(filepath.Join(dir, TimelinesJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", TimelinesJSONL, err)
	}
	layerRecords, err := readJSONL(filepath.Join(dir, LayersJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", LayersJSONL, err)
	}
	blockRecords, err := readJSONL(filepath.Join(dir, BlocksJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", BlocksJSONL, err)
	}

	rules, err := b.Rules()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return b.RunInTransaction(func(tx *sql.Tx) error {
		for _, rec := range timelineRecords {
			var t types.Timeline
			if err := json.Unmarshal(rec, &t); err != nil {
				return fmt.Errorf("decoding timeline record: %w", err)
			}
			if t.TimelineID == "" {
				t.TimelineID = generateUUID()
			}
			fillTimes(&t.CreatedAt, &t.UpdatedAt, now)
			if err := validateTimeline(&t); err != nil {
				return fmt.Errorf("timeline %s: %w", t.TimelineID, err)
			}
			if err := insertTimelineTx(tx, &t); err != nil {
				return err
			}
		}
		for _, rec := range layerRecords {
			var l types.Layer
			if err := json.Unmarshal(rec, &l); err != nil {
				return fmt.Errorf("decoding layer record: %w", err)
			}
			if l.LayerID == "" {
				l.LayerID = generateUUID()
			}
			fillTimes(&l.CreatedAt, &l.UpdatedAt, now)
			if err := validateLayer(tx, &l); err != nil {
				return fmt.Errorf("layer %s: %w", l.LayerID, err)
			}
			if err := insertLayerTx(tx, &l); err != nil {
				return err
			}
		}
		for _, rec := range blockRecords {
			var blk types.Block
			if err := json.Unmarshal(rec, &blk); err != nil {
				return fmt.Errorf("decoding block record: %w", err)
			}
			if blk.BlockID == "" {
				blk.BlockID = generateUUID()
			}
			fillTimes(&blk.CreatedAt, &blk.UpdatedAt, now)
			if err := validateBlock(tx, rules, &blk); err != nil {
				return fmt.Errorf("block %s: %w", blk.BlockID, err)
			}
			if err := insertBlockTx(tx, &blk); err != nil {
				return err
			}
		}
		return nil
	})
}

// marshalRecords converts n entities to raw JSON records.
func marshalRecords(n int, at func(int) any) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		data, err := json.Marshal(at(i))
		if err != nil {
			return nil, err
		}
		records = append(records, data)
	}
	return records, nil
}

// fillTimes backfills zero timestamps on imported records.
func fillTimes(createdAt, updatedAt *time.Time, now time.Time) {
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}
