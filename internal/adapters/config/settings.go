package config

import (
	"path/filepath"
	"sort"

	"go.trai.ch/yalc/internal/core/ports"
)

var _ ports.StoreLocator = (*Settings)(nil)

// Settings is the merged view of the environment and the rc file.
type Settings struct {
	storeDir   string
	rcStoreDir string
	quiet      bool
	defaults   map[string]string
}

// StoreDir returns the absolute store root.
func (s *Settings) StoreDir() string {
	return s.storeDir
}

// SetStoreDir overrides the store root, as the --store-folder flag does.
func (s *Settings) SetStoreDir(dir string) {
	if dir == "" {
		return
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	s.storeDir = dir
}

// Quiet reports whether informational output is disabled by default.
func (s *Settings) Quiet() bool {
	return s.quiet
}

// Default returns the rc value for a command line flag.
func (s *Settings) Default(flag string) (string, bool) {
	v, ok := s.defaults[flag]
	return v, ok
}

// DefaultKeys lists the flag names set in the rc file.
func (s *Settings) DefaultKeys() []string {
	keys := make([]string, 0, len(s.defaults))
	for k := range s.defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
