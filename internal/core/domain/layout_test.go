package domain_test

import (
	"path/filepath"
	"testing"

	"go.trai.ch/yalc/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "VendorPath",
			got:      domain.VendorPath("/proj", "@acme/ui"),
			expected: filepath.Join("/proj", ".yalc", "@acme", "ui"),
		},
		{
			name:     "ModulePath",
			got:      domain.ModulePath("/proj", "lodash"),
			expected: filepath.Join("/proj", "node_modules", "lodash"),
		},
		{
			name:     "BinPath",
			got:      domain.BinPath("/proj"),
			expected: filepath.Join("/proj", "node_modules", ".bin"),
		},
		{
			name:     "StorePackagePath without version",
			got:      domain.StorePackagePath("/store", "@acme/ui", ""),
			expected: filepath.Join("/store", "packages", "@acme", "ui"),
		},
		{
			name:     "StorePackagePath with version",
			got:      domain.StorePackagePath("/store", "lodash", "1.0.0"),
			expected: filepath.Join("/store", "packages", "lodash", "1.0.0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}
