package types

import "testing"

func TestBlock_CheckDuration(t *testing.T) {
	tests := []struct {
		name     string
		startAge float64
		endAge   float64
		duration float64
		wantErr  error
	}{
		{"exact agreement", 14, 18, 4.0, nil},
		{"within tolerance", 14, 18, 4.0 + 5e-10, nil},
		{"beyond tolerance", 14, 18, 4.0001, ErrInconsistentDuration},
		{"wildly off", 14, 18, 10, ErrInconsistentDuration},
		{"fractional agreement", 14, 14.5, 0.5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Block{StartAge: tt.startAge, EndAge: tt.endAge, DurationYears: tt.duration}
			if err := b.CheckDuration(); err != tt.wantErr {
				t.Errorf("CheckDuration() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlock_CheckOrdinal(t *testing.T) {
	if err := (&Block{LayerNumber: 1}).CheckOrdinal(); err != nil {
		t.Errorf("CheckOrdinal() on layer 1 = %v, want nil", err)
	}
	if err := (&Block{LayerNumber: 0}).CheckOrdinal(); err != ErrInvalidLayerNumber {
		t.Errorf("CheckOrdinal() on layer 0 = %v, want ErrInvalidLayerNumber", err)
	}
	if err := (&Block{LayerNumber: -2}).CheckOrdinal(); err != ErrInvalidLayerNumber {
		t.Errorf("CheckOrdinal() on layer -2 = %v, want ErrInvalidLayerNumber", err)
	}
}

func TestLayer_CheckRangeAndContains(t *testing.T) {
	l := &Layer{StartAge: 14, EndAge: 18}
	if err := l.CheckRange(); err != nil {
		t.Errorf("CheckRange() = %v, want nil", err)
	}
	if err := (&Layer{StartAge: 18, EndAge: 14}).CheckRange(); err != ErrInvalidRange {
		t.Errorf("CheckRange() on inverted layer = %v, want ErrInvalidRange", err)
	}
	if !l.Contains(14, 18) {
		t.Error("Contains(14, 18) = false, want true")
	}
	if l.Contains(13.9, 18) {
		t.Error("Contains(13.9, 18) = true, want false")
	}
}
