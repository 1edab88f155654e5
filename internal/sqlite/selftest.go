// This file implements the constraint self-test: an operational health
// check that exercises the positive and negative validation scenarios
// against the live store with throwaway fixtures.
package sqlite

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// SelfTest runs the constraint scenarios and reports per-check outcomes.
// Fixture rows use uuid-suffixed IDs and are removed in a final cleanup
// even when checks fail, so repeated runs leave the store unchanged and
// report the same result absent external changes.
func (b *Backend) SelfTest() (*types.SelfTestReport, error) {
	if _, err := b.handle(); err != nil {
		return nil, err
	}

	report := &types.SelfTestReport{Passed: true}
	fixtureID := "selftest-" + generateUUID()

	defer func() {
		// Cleanup is best-effort; a failed check may have left the
		// fixture timeline behind.
		if err := b.DeleteTimeline(fixtureID); err != nil && !errors.Is(err, types.ErrNotFound) {
			report.Record("cleanup fixtures", false, err.Error())
		}
	}()

	// Valid timeline persists and is retrievable.
	timeline := &types.Timeline{
		TimelineID: fixtureID,
		UserName:   "selftest",
		StartAge:   14,
		EndAge:     18,
		EndGoal:    "constraint self-test",
		NumLayers:  2,
	}
	if _, err := b.InsertTimeline(timeline); err != nil {
		report.Record("insert valid timeline", false, err.Error())
		return report, nil
	}
	if _, err := b.GetTimeline(fixtureID); err != nil {
		report.Record("insert valid timeline", false, "inserted row not retrievable: "+err.Error())
		return report, nil
	}
	report.Record("insert valid timeline", true, "")

	// Inverted range is rejected and leaves no row.
	inverted := &types.Timeline{
		TimelineID: "selftest-inverted-" + generateUUID(),
		UserName:   "selftest",
		StartAge:   18,
		EndAge:     14,
	}
	_, err := b.InsertTimeline(inverted)
	report.Record("reject inverted timeline range",
		errors.Is(err, types.ErrInvalidRange) && b.absent("timeline", inverted.TimelineID),
		detailFor(err))

	// Tier-1 layer and a block meeting the minimum both persist.
	layer := &types.Layer{
		TimelineID:  fixtureID,
		LayerNumber: 1,
		Title:       "selftest layer",
		StartAge:    14,
		EndAge:      18,
	}
	if _, err := b.InsertLayer(layer); err != nil {
		report.Record("insert layer and block", false, err.Error())
		return report, nil
	}
	block := &types.Block{
		LayerID:       layer.LayerID,
		LayerNumber:   1,
		Title:         "selftest block",
		StartAge:      14,
		EndAge:        18,
		DurationYears: 4.0,
	}
	_, err = b.InsertBlock(block)
	report.Record("insert layer and block", err == nil, detailFor(err))

	// A block below the tier minimum is rejected and leaves no row.
	short := &types.Block{
		BlockID:       "selftest-short-" + generateUUID(),
		LayerID:       layer.LayerID,
		LayerNumber:   1,
		StartAge:      14,
		EndAge:        16,
		DurationYears: 2.0,
	}
	_, err = b.InsertBlock(short)
	report.Record("reject block below tier minimum",
		errors.Is(err, types.ErrDurationTooShort) && b.absent("block", short.BlockID),
		detailFor(err))

	// A layer inserted together with an invalid block persists neither.
	atomicLayer := &types.Layer{
		LayerID:     "selftest-atomic-" + generateUUID(),
		TimelineID:  fixtureID,
		LayerNumber: 1,
		StartAge:    14,
		EndAge:      18,
	}
	badBlock := &types.Block{
		LayerNumber:   1,
		StartAge:      14,
		EndAge:        16,
		DurationYears: 2.0,
	}
	_, err = b.InsertLayerWithBlocks(atomicLayer, []*types.Block{badBlock})
	report.Record("atomic layer+block rollback",
		err != nil && b.absent("layer", atomicLayer.LayerID),
		detailFor(err))

	// Deleting the timeline removes all descendants.
	if err := b.DeleteTimeline(fixtureID); err != nil {
		report.Record("cascade delete", false, err.Error())
		return report, nil
	}
	report.Record("cascade delete",
		b.absent("timeline", fixtureID) && b.absent("layer", layer.LayerID) && b.absent("block", block.BlockID),
		"")

	return report, nil
}

// absent reports whether no row of the given kind exists with the ID.
func (b *Backend) absent(kind, id string) bool {
	var err error
	switch kind {
	case "timeline":
		_, err = b.GetTimeline(id)
	case "layer":
		_, err = b.GetLayer(id)
	case "block":
		_, err = b.GetBlock(id)
	default:
		return false
	}
	return errors.Is(err, types.ErrNotFound)
}

// detailFor summarizes the observed error for the report.
func detailFor(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("observed: %v", err)
}
