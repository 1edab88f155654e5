package types

import (
	"math"
	"time"
)

// DurationTolerance is the maximum disagreement allowed between a block's
// stored duration_years and the duration computed from its age range.
const DurationTolerance = 1e-9

// Block is a leaf time interval within a Layer. LayerNumber is a
// denormalized copy of the owning layer's ordinal and selects the
// minimum-duration rule; it must agree with the parent row.
type Block struct {
	BlockID       string    `json:"block_id"`
	LayerID       string    `json:"layer_id"`
	LayerNumber   int       `json:"layer_number"`
	Title         string    `json:"title"`
	StartAge      float64   `json:"start_age"`
	EndAge        float64   `json:"end_age"`
	DurationYears float64   `json:"duration_years"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CheckRange verifies end_age > start_age.
// Returns ErrInvalidRange on violation.
func (b *Block) CheckRange() error {
	if b.EndAge <= b.StartAge {
		return ErrInvalidRange
	}
	return nil
}

// CheckOrdinal verifies the layer number is a positive integer.
// Returns ErrInvalidLayerNumber on violation.
func (b *Block) CheckOrdinal() error {
	if b.LayerNumber < 1 {
		return ErrInvalidLayerNumber
	}
	return nil
}

// CheckDuration verifies that the stored duration_years agrees with
// end_age - start_age within DurationTolerance.
// Returns ErrInconsistentDuration on violation.
func (b *Block) CheckDuration() error {
	computed := b.EndAge - b.StartAge
	if math.Abs(b.DurationYears-computed) > DurationTolerance {
		return ErrInconsistentDuration
	}
	return nil
}
