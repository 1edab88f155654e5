// Tests for block persistence: the duration rules, denormalized ordinal
// agreement, and containment within the owning layer.
package sqlite

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// insertFixtureHierarchy creates a timeline with one tier-1 layer spanning
// ages 14-18 and returns the layer.
func insertFixtureHierarchy(t *testing.T, b *Backend) *types.Layer {
	t.Helper()
	insertFixtureTimeline(t, b)
	layer, err := b.InsertLayer(&types.Layer{
		TimelineID: "t1", LayerNumber: 1, Title: "l1", StartAge: 14, EndAge: 18,
	})
	if err != nil {
		t.Fatalf("InsertLayer: %v", err)
	}
	return layer
}

func TestInsertBlock(t *testing.T) {
	b := newTestBackend(t)
	layer := insertFixtureHierarchy(t, b)

	block, err := b.InsertBlock(&types.Block{
		LayerID:       layer.LayerID,
		LayerNumber:   1,
		Title:         "high school",
		StartAge:      14,
		EndAge:        18,
		DurationYears: 4.0,
	})
	if err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}

	got, err := b.GetBlock(block.BlockID)
	if err != nil {
		t.Fatalf("GetBlock: %v", err)
	}
	if got.DurationYears != 4.0 || got.LayerNumber != 1 || got.Title != "high school" {
		t.Errorf("retrieved block does not match: %+v", got)
	}
}

func TestInsertBlock_Rejections(t *testing.T) {
	b := newTestBackend(t)
	layer := insertFixtureHierarchy(t, b)

	// A second layer on an unruled tier, to exercise the fail-closed path.
	unruled, err := b.InsertLayer(&types.Layer{
		TimelineID: "t1", LayerNumber: 9, StartAge: 14, EndAge: 18,
	})
	if err != nil {
		t.Fatalf("InsertLayer: %v", err)
	}

	tests := []struct {
		name    string
		block   *types.Block
		wantErr error
	}{
		{
			name: "below tier minimum",
			block: &types.Block{
				LayerID: layer.LayerID, LayerNumber: 1,
				StartAge: 14, EndAge: 16, DurationYears: 2.0,
			},
			wantErr: types.ErrDurationTooShort,
		},
		{
			name: "inconsistent stored duration",
			block: &types.Block{
				LayerID: layer.LayerID, LayerNumber: 1,
				StartAge: 14, EndAge: 18, DurationYears: 5.0,
			},
			wantErr: types.ErrInconsistentDuration,
		},
		{
			name: "inverted range",
			block: &types.Block{
				LayerID: layer.LayerID, LayerNumber: 1,
				StartAge: 18, EndAge: 14, DurationYears: -4.0,
			},
			wantErr: types.ErrInvalidRange,
		},
		{
			name: "ordinal disagrees with owning layer",
			block: &types.Block{
				LayerID: layer.LayerID, LayerNumber: 2,
				StartAge: 14, EndAge: 18, DurationYears: 4.0,
			},
			wantErr: types.ErrLayerNumberMismatch,
		},
		{
			name: "no rule for tier fails closed",
			block: &types.Block{
				LayerID: unruled.LayerID, LayerNumber: 9,
				StartAge: 14, EndAge: 18, DurationYears: 4.0,
			},
			wantErr: types.ErrUnknownLayerNumber,
		},
		{
			name: "missing owning layer",
			block: &types.Block{
				LayerID: "nope", LayerNumber: 1,
				StartAge: 14, EndAge: 18, DurationYears: 4.0,
			},
			wantErr: types.ErrNotFound,
		},
		{
			name: "exceeds owning layer range",
			block: &types.Block{
				LayerID: layer.LayerID, LayerNumber: 1,
				StartAge: 13, EndAge: 18, DurationYears: 5.0,
			},
			wantErr: types.ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.block.BlockID = "reject-" + tt.name
			_, err := b.InsertBlock(tt.block)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			// No partial row may survive the rejection.
			if _, err := b.GetBlock(tt.block.BlockID); !errors.Is(err, types.ErrNotFound) {
				t.Errorf("rejected block left a row: %v", err)
			}
		})
	}
}

func TestInsertBlock_RejectionPreservesSiblings(t *testing.T) {
	b := newTestBackend(t)
	layer := insertFixtureHierarchy(t, b)

	sibling, err := b.InsertBlock(&types.Block{
		LayerID: layer.LayerID, LayerNumber: 1, StartAge: 14, EndAge: 18, DurationYears: 4.0,
	})
	if err != nil {
		t.Fatalf("InsertBlock sibling: %v", err)
	}

	_, err = b.InsertBlock(&types.Block{
		LayerID: layer.LayerID, LayerNumber: 1, StartAge: 14, EndAge: 16, DurationYears: 2.0,
	})
	if !errors.Is(err, types.ErrDurationTooShort) {
		t.Fatalf("expected ErrDurationTooShort, got %v", err)
	}

	// The committed sibling is untouched.
	if _, err := b.GetBlock(sibling.BlockID); err != nil {
		t.Errorf("sibling corrupted by rejected insert: %v", err)
	}
	blocks, err := b.ListBlocks(layer.LayerID)
	if err != nil {
		t.Fatalf("ListBlocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Errorf("expected 1 block, got %d", len(blocks))
	}
}

func TestInsertBlock_DurationTolerance(t *testing.T) {
	b := newTestBackend(t)
	layer := insertFixtureHierarchy(t, b)

	// A sub-tolerance disagreement between the stored duration and the
	// computed one is accepted.
	_, err := b.InsertBlock(&types.Block{
		LayerID: layer.LayerID, LayerNumber: 1,
		StartAge: 14, EndAge: 18, DurationYears: 4.0 + 1e-10,
	})
	if err != nil {
		t.Fatalf("InsertBlock within tolerance: %v", err)
	}
}

func TestDeleteBlock(t *testing.T) {
	b := newTestBackend(t)
	layer := insertFixtureHierarchy(t, b)

	block, err := b.InsertBlock(&types.Block{
		LayerID: layer.LayerID, LayerNumber: 1, StartAge: 14, EndAge: 18, DurationYears: 4.0,
	})
	if err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}

	if err := b.DeleteBlock(block.BlockID); err != nil {
		t.Fatalf("DeleteBlock: %v", err)
	}
	if _, err := b.GetBlock(block.BlockID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("block survived delete: %v", err)
	}
	if err := b.DeleteBlock(block.BlockID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
