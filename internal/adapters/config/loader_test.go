package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/adapters/config"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, env map[string]string, goos string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	loader := config.NewLoader(mockLogger)
	loader.Getenv = func(key string) string { return env[key] }
	loader.HomeDir = func() (string, error) { return "/home/dev", nil }
	loader.GOOS = goos
	return loader
}

func writeRC(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))
}

func TestLoader_StoreDir(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		goos     string
		rc       string
		expected func(cwd string) string
	}{
		{
			name:     "home default",
			goos:     "linux",
			expected: func(string) string { return filepath.Join("/home/dev", ".yalc") },
		},
		{
			name:     "windows local app data",
			goos:     "windows",
			env:      map[string]string{"LOCALAPPDATA": "/appdata"},
			expected: func(string) string { return filepath.Join("/appdata", "Yalc") },
		},
		{
			name:     "rc file",
			goos:     "linux",
			rc:       "store-folder: store\n",
			expected: func(cwd string) string { return filepath.Join(cwd, "store") },
		},
		{
			name:     "environment wins over rc",
			goos:     "linux",
			env:      map[string]string{domain.StoreFolderEnv: "/env/store"},
			rc:       "store-folder: store\n",
			expected: func(string) string { return filepath.Clean("/env/store") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cwd := t.TempDir()
			if tt.rc != "" {
				writeRC(t, cwd, tt.rc)
			}

			s, err := newLoader(t, tt.env, tt.goos).Load(cwd)
			require.NoError(t, err)
			assert.Equal(t, tt.expected(cwd), s.StoreDir())
		})
	}
}

func TestLoader_FlagDefaults(t *testing.T) {
	cwd := t.TempDir()
	writeRC(t, cwd, "sig: false\npure: true\nquiet: true\nworkspace-resolve: false\n")

	s, err := newLoader(t, nil, "linux").Load(cwd)
	require.NoError(t, err)

	assert.True(t, s.Quiet())
	assert.Equal(t, []string{"pure", "sig", "workspace-resolve"}, s.DefaultKeys())

	v, ok := s.Default("sig")
	require.True(t, ok)
	assert.Equal(t, "false", v)

	_, ok = s.Default("quiet")
	assert.False(t, ok)
}

func TestLoader_InvalidRC(t *testing.T) {
	cwd := t.TempDir()
	writeRC(t, cwd, "sig: [unterminated\n")

	_, err := newLoader(t, nil, "linux").Load(cwd)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestLoader_NoHome(t *testing.T) {
	loader := newLoader(t, nil, "linux")
	loader.HomeDir = func() (string, error) { return "", errors.New("no home") }

	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrHomeDirNotFound.Error())
}

func TestSettings_SetStoreDir(t *testing.T) {
	s, err := newLoader(t, nil, "linux").Load(t.TempDir())
	require.NoError(t, err)

	s.SetStoreDir("")
	assert.Equal(t, filepath.Join("/home/dev", ".yalc"), s.StoreDir())

	s.SetStoreDir("/custom")
	assert.Equal(t, filepath.Clean("/custom"), s.StoreDir())
}
