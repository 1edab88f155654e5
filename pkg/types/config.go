package types

import "errors"

// Config holds backend selection and parameters for Planner.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MinimumDurationByLayer overrides the seeded duration rule table,
	// keyed by layer_number. Entries here are upserted into the rule
	// table on Attach; tiers not listed keep their current minimums.
	MinimumDurationByLayer map[int]float64 `json:"minimum_duration_by_layer" yaml:"minimum_duration_by_layer"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty      = errors.New("backend must not be empty")
	ErrBackendUnknown    = errors.New("unknown backend")
	ErrRuleLayerInvalid  = errors.New("rule layer number must be positive")
	ErrRuleMinimumInvalid = errors.New("rule minimum duration must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	for layerNumber, minimum := range c.MinimumDurationByLayer {
		if layerNumber < 1 {
			return ErrRuleLayerInvalid
		}
		if minimum <= 0 {
			return ErrRuleMinimumInvalid
		}
	}
	return nil
}
