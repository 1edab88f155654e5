package types

import "time"

// Layer is a subdivision tier of a Timeline. Its ordinal (LayerNumber)
// selects which minimum-duration rule applies to blocks on the tier;
// layer_number 1 is the coarsest layer.
type Layer struct {
	LayerID     string    `json:"layer_id"`
	TimelineID  string    `json:"timeline_id"`
	LayerNumber int       `json:"layer_number"`
	Title       string    `json:"title"`
	StartAge    float64   `json:"start_age"`
	EndAge      float64   `json:"end_age"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CheckRange verifies end_age > start_age.
// Returns ErrInvalidRange on violation.
func (l *Layer) CheckRange() error {
	if l.EndAge <= l.StartAge {
		return ErrInvalidRange
	}
	return nil
}

// CheckOrdinal verifies the layer number is a positive integer.
// Returns ErrInvalidLayerNumber on violation.
func (l *Layer) CheckOrdinal() error {
	if l.LayerNumber < 1 {
		return ErrInvalidLayerNumber
	}
	return nil
}

// Contains reports whether the [start, end] age range falls within the
// layer's own range.
func (l *Layer) Contains(startAge, endAge float64) bool {
	return startAge >= l.StartAge && endAge <= l.EndAge
}
