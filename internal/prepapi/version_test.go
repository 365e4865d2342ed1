package prepapi

import (
	"errors"
	"testing"
)

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"v1.4.2", true},
		{"1.2", true},
		{"0.9.0", false},
		{"2.0.0", false},
		{"", false},
		{"latest", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckVersion(tt.version)
			if tt.ok && err != nil {
				t.Errorf("expected %q compatible, got %v", tt.version, err)
			}
			if !tt.ok && !errors.Is(err, ErrIncompatible) {
				t.Errorf("expected ErrIncompatible for %q, got %v", tt.version, err)
			}
		})
	}
}
