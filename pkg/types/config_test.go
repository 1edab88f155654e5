package types

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "empty backend",
			config:  Config{DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "postgres"},
			wantErr: ErrBackendUnknown,
		},
		{
			name: "valid rule overrides",
			config: Config{
				Backend:                BackendSQLite,
				MinimumDurationByLayer: map[int]float64{1: 5.0, 5: 0.1},
			},
			wantErr: nil,
		},
		{
			name: "zero layer number in rules",
			config: Config{
				Backend:                BackendSQLite,
				MinimumDurationByLayer: map[int]float64{0: 1.0},
			},
			wantErr: ErrRuleLayerInvalid,
		},
		{
			name: "negative minimum in rules",
			config: Config{
				Backend:                BackendSQLite,
				MinimumDurationByLayer: map[int]float64{2: -1.0},
			},
			wantErr: ErrRuleMinimumInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
