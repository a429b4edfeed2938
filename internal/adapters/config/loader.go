// Package config loads user settings for yalc.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	storeFolderKey = "store-folder"
	quietKey       = "quiet"
)

// Loader reads the rc file of a working directory.
type Loader struct {
	Logger ports.Logger
	// Getenv looks up environment variables.
	Getenv func(string) string
	// HomeDir returns the user home directory.
	HomeDir func() (string, error)
	// GOOS selects the platform default store location.
	GOOS string
}

// NewLoader creates a new Loader bound to the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:  logger,
		Getenv:  os.Getenv,
		HomeDir: os.UserHomeDir,
		GOOS:    runtime.GOOS,
	}
}

// Load reads cwd/.yalcrc, if any, and resolves the store location.
func (l *Loader) Load(cwd string) (*Settings, error) {
	rc, err := readRC(filepath.Join(cwd, domain.ConfigFileName))
	if err != nil {
		return nil, err
	}

	s := &Settings{defaults: map[string]string{}}
	for _, key := range sortedKeys(rc) {
		value := rc[key]
		switch key {
		case storeFolderKey:
			s.rcStoreDir = resolveAgainst(cwd, fmt.Sprint(value))
		case quietKey:
			quiet, ok := value.(bool)
			if !ok {
				l.Logger.Warn(fmt.Sprintf("ignoring non-boolean %q in %s", key, domain.ConfigFileName))
				continue
			}
			s.quiet = quiet
		default:
			s.defaults[key] = formatValue(value)
		}
	}

	storeDir, err := l.defaultStoreDir(s.rcStoreDir)
	if err != nil {
		return nil, err
	}
	s.storeDir = storeDir

	return s, nil
}

func (l *Loader) defaultStoreDir(rcStoreDir string) (string, error) {
	if dir := l.Getenv(domain.StoreFolderEnv); dir != "" {
		return filepath.Abs(dir)
	}
	if rcStoreDir != "" {
		return rcStoreDir, nil
	}
	if l.GOOS == "windows" {
		if dir := l.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, domain.WindowsStoreDirName), nil
		}
	}

	home, err := l.HomeDir()
	if err != nil || home == "" {
		return "", zerr.Wrap(errors.Join(err, domain.ErrHomeDirNotFound), domain.ErrHomeDirNotFound.Error())
	}
	return filepath.Join(home, domain.StoreDirName), nil
}

func readRC(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the rc file of the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var rc map[string]any
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return rc, nil
}

func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
