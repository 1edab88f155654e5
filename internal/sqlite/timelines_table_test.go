// Tests for timeline persistence: validated inserts, updates, listing,
// and cascade deletes.
package sqlite

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

func TestInsertTimeline(t *testing.T) {
	b := newTestBackend(t)

	inserted, err := b.InsertTimeline(&types.Timeline{
		TimelineID: "t1",
		UserName:   "A",
		StartAge:   14,
		EndAge:     18,
		EndGoal:    "g",
		NumLayers:  2,
	})
	if err != nil {
		t.Fatalf("InsertTimeline: %v", err)
	}
	if inserted.TimelineID != "t1" {
		t.Errorf("caller-supplied ID replaced: got %q", inserted.TimelineID)
	}

	got, err := b.GetTimeline("t1")
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if got.UserName != "A" || got.StartAge != 14 || got.EndAge != 18 || got.EndGoal != "g" || got.NumLayers != 2 {
		t.Errorf("retrieved row does not match: %+v", got)
	}
}

func TestInsertTimeline_GeneratesID(t *testing.T) {
	b := newTestBackend(t)

	inserted, err := b.InsertTimeline(&types.Timeline{UserName: "A", StartAge: 0, EndAge: 90})
	if err != nil {
		t.Fatalf("InsertTimeline: %v", err)
	}
	if inserted.TimelineID == "" {
		t.Fatal("expected generated ID")
	}
	if _, err := b.GetTimeline(inserted.TimelineID); err != nil {
		t.Errorf("generated ID not retrievable: %v", err)
	}
}

func TestInsertTimeline_InvalidRange(t *testing.T) {
	b := newTestBackend(t)

	tests := []struct {
		name     string
		startAge float64
		endAge   float64
	}{
		{"inverted", 18, 14},
		{"empty", 18, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.InsertTimeline(&types.Timeline{
				TimelineID: "bad-" + tt.name,
				StartAge:   tt.startAge,
				EndAge:     tt.endAge,
			})
			if !errors.Is(err, types.ErrInvalidRange) {
				t.Fatalf("expected ErrInvalidRange, got %v", err)
			}
			// No row may survive the rejection.
			if _, err := b.GetTimeline("bad-" + tt.name); !errors.Is(err, types.ErrNotFound) {
				t.Errorf("rejected timeline left a row: %v", err)
			}
		})
	}
}

func TestUpdateTimeline(t *testing.T) {
	b := newTestBackend(t)

	inserted, err := b.InsertTimeline(&types.Timeline{
		TimelineID: "t1", UserName: "A", StartAge: 14, EndAge: 18,
	})
	if err != nil {
		t.Fatalf("InsertTimeline: %v", err)
	}

	inserted.EndGoal = "updated goal"
	inserted.EndAge = 20
	if _, err := b.UpdateTimeline(inserted); err != nil {
		t.Fatalf("UpdateTimeline: %v", err)
	}

	got, err := b.GetTimeline("t1")
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if got.EndGoal != "updated goal" || got.EndAge != 20 {
		t.Errorf("update not persisted: %+v", got)
	}

	// An invalid update is rejected and leaves the row unchanged.
	got.StartAge = 25
	if _, err := b.UpdateTimeline(got); !errors.Is(err, types.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	unchanged, err := b.GetTimeline("t1")
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if unchanged.StartAge != 14 {
		t.Errorf("rejected update mutated the row: %+v", unchanged)
	}

	// Updating a missing timeline reports ErrNotFound.
	if _, err := b.UpdateTimeline(&types.Timeline{TimelineID: "nope", StartAge: 1, EndAge: 2}); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTimeline_Cascades(t *testing.T) {
	b := newTestBackend(t)

	if _, err := b.InsertTimeline(&types.Timeline{TimelineID: "t1", UserName: "A", StartAge: 14, EndAge: 18}); err != nil {
		t.Fatalf("InsertTimeline: %v", err)
	}
	layer, err := b.InsertLayer(&types.Layer{
		TimelineID: "t1", LayerNumber: 1, Title: "l", StartAge: 14, EndAge: 18,
	})
	if err != nil {
		t.Fatalf("InsertLayer: %v", err)
	}
	block, err := b.InsertBlock(&types.Block{
		LayerID: layer.LayerID, LayerNumber: 1, StartAge: 14, EndAge: 18, DurationYears: 4.0,
	})
	if err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}

	if err := b.DeleteTimeline("t1"); err != nil {
		t.Fatalf("DeleteTimeline: %v", err)
	}

	// All descendants must be gone.
	if _, err := b.GetTimeline("t1"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("timeline survived delete: %v", err)
	}
	if _, err := b.GetLayer(layer.LayerID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("layer survived cascade: %v", err)
	}
	if _, err := b.GetBlock(block.BlockID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("block survived cascade: %v", err)
	}

	// Deleting again reports ErrNotFound.
	if err := b.DeleteTimeline("t1"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListTimelines(t *testing.T) {
	b := newTestBackend(t)

	got, err := b.ListTimelines()
	if err != nil {
		t.Fatalf("ListTimelines: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d rows", len(got))
	}

	for _, id := range []string{"t1", "t2", "t3"} {
		if _, err := b.InsertTimeline(&types.Timeline{TimelineID: id, UserName: id, StartAge: 0, EndAge: 90}); err != nil {
			t.Fatalf("InsertTimeline %s: %v", id, err)
		}
	}

	got, err = b.ListTimelines()
	if err != nil {
		t.Fatalf("ListTimelines: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 timelines, got %d", len(got))
	}
}
