// This file implements the constraint engine: validator functions that
// decide accept or reject for a proposed row before any write commits.
// Validators run inside the caller's open transaction so parent lookups
// see the same snapshot the write will join; they perform no writes.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// validateTimeline checks a proposed timeline row.
// Rejects with ErrInvalidRange when end_age <= start_age. num_layers is
// advisory metadata and is not checked against the actual layer count.
func validateTimeline(t *types.Timeline) error {
	if t == nil {
		return types.ErrInvalidData
	}
	return t.CheckRange()
}

// validateLayer checks a proposed layer row against its parent timeline.
// Rejects with ErrInvalidRange, ErrInvalidLayerNumber, ErrNotFound (parent
// missing), or ErrOutOfBounds (range not contained in the parent's range).
func validateLayer(tx *sql.Tx, l *types.Layer) error {
	if l == nil {
		return types.ErrInvalidData
	}
	if err := l.CheckOrdinal(); err != nil {
		return err
	}
	if err := l.CheckRange(); err != nil {
		return err
	}

	parent, err := getTimelineTx(tx, l.TimelineID)
	if err != nil {
		return err
	}
	if !parent.Contains(l.StartAge, l.EndAge) {
		return fmt.Errorf("layer range [%g, %g] exceeds timeline range [%g, %g]: %w",
			l.StartAge, l.EndAge, parent.StartAge, parent.EndAge, types.ErrOutOfBounds)
	}
	return nil
}

// validateBlock checks a proposed block row against its parent layer and
// the duration rule table. The stored duration must agree with the age
// range within DurationTolerance, the denormalized layer_number must match
// the owning layer's ordinal, and the duration must meet the tier minimum.
// A tier with no rule fails closed with ErrUnknownLayerNumber.
func validateBlock(tx *sql.Tx, rules types.DurationRules, b *types.Block) error {
	if b == nil {
		return types.ErrInvalidData
	}
	if err := b.CheckOrdinal(); err != nil {
		return err
	}
	if err := b.CheckRange(); err != nil {
		return err
	}
	if err := b.CheckDuration(); err != nil {
		return err
	}

	parent, err := getLayerTx(tx, b.LayerID)
	if err != nil {
		return err
	}
	if b.LayerNumber != parent.LayerNumber {
		return fmt.Errorf("block layer number %d, owning layer is %d: %w",
			b.LayerNumber, parent.LayerNumber, types.ErrLayerNumberMismatch)
	}

	minimum, err := rules.MinimumFor(b.LayerNumber)
	if err != nil {
		return fmt.Errorf("layer number %d: %w", b.LayerNumber, err)
	}
	if b.DurationYears < minimum {
		return fmt.Errorf("block spans %g years, layer %d requires at least %g: %w",
			b.DurationYears, b.LayerNumber, minimum, types.ErrDurationTooShort)
	}

	if !parent.Contains(b.StartAge, b.EndAge) {
		return fmt.Errorf("block range [%g, %g] exceeds layer range [%g, %g]: %w",
			b.StartAge, b.EndAge, parent.StartAge, parent.EndAge, types.ErrOutOfBounds)
	}
	return nil
}
