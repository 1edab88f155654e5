package types

import "time"

// Timeline is the root planning record: one user's life span between a
// start and end age, subdivided by layers.
type Timeline struct {
	TimelineID string    `json:"timeline_id"` // UUID v7 when not caller-supplied.
	UserName   string    `json:"user_name"`
	StartAge   float64   `json:"start_age"`
	EndAge     float64   `json:"end_age"`
	EndGoal    string    `json:"end_goal"`
	NumLayers  int       `json:"num_layers"` // Advisory metadata; not validated against actual layer count.
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CheckRange verifies end_age > start_age.
// Returns ErrInvalidRange on violation.
func (t *Timeline) CheckRange() error {
	if t.EndAge <= t.StartAge {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether the [start, end] age range falls within the
// timeline's own range.
func (t *Timeline) Contains(startAge, endAge float64) bool {
	return startAge >= t.StartAge && endAge <= t.EndAge
}
