package types

// DurationRules maps a layer_number to the minimum duration in years a
// block on that tier must span. The rule set is configuration data, not
// behavior: adding a new tier requires only a table entry.
type DurationRules map[int]float64

// DefaultDurationRules returns the rule table seeded on first run.
// Layer 1 is the coarsest tier; minimums shrink as layers get finer.
func DefaultDurationRules() DurationRules {
	return DurationRules{
		1: 4.0,
		2: 2.0,
		3: 1.0,
		4: 0.25,
	}
}

// MinimumFor returns the minimum duration for the given layer number.
// Returns ErrUnknownLayerNumber when no rule exists for the tier; an
// unrecognized tier is never silently accepted.
func (r DurationRules) MinimumFor(layerNumber int) (float64, error) {
	minimum, ok := r[layerNumber]
	if !ok {
		return 0, ErrUnknownLayerNumber
	}
	return minimum, nil
}
