package npm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/adapters/fs"
	"go.trai.ch/yalc/internal/adapters/npm"
	"go.trai.ch/yalc/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newLister() *npm.Lister {
	return npm.NewLister(fs.NewWalker(), npm.NewMatcher())
}

func TestLister_DefaultRules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{}")
	writeFile(t, dir, "index.js", "")
	writeFile(t, dir, "lib/util.js", "")
	writeFile(t, dir, "node_modules/dep/index.js", "")
	writeFile(t, dir, ".yalc/other/index.js", "")
	writeFile(t, dir, "yalc.lock", "{}")
	writeFile(t, dir, ".DS_Store", "")
	writeFile(t, dir, ".git/HEAD", "")

	files, err := newLister().List(dir, &domain.Manifest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"index.js", "lib/util.js", "package.json"}, files)
}

func TestLister_NpmIgnore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{}")
	writeFile(t, dir, ".npmignore", "# tests\ntest/\n*.log\n")
	writeFile(t, dir, ".gitignore", "lib/\n")
	writeFile(t, dir, "lib/index.js", "")
	writeFile(t, dir, "test/index.test.js", "")
	writeFile(t, dir, "debug.log", "")

	files, err := newLister().List(dir, &domain.Manifest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/index.js", "package.json"}, files)
}

func TestLister_GitIgnoreFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{}")
	writeFile(t, dir, ".gitignore", "dist\n")
	writeFile(t, dir, "dist/bundle.js", "")
	writeFile(t, dir, "src/index.js", "")

	files, err := newLister().List(dir, &domain.Manifest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"package.json", "src/index.js"}, files)
}

func TestLister_EmptyNpmignoreOverridesGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{}")
	writeFile(t, dir, ".npmignore", "")
	writeFile(t, dir, ".gitignore", "dist\n")
	writeFile(t, dir, "dist/bundle.js", "")
	writeFile(t, dir, "src/index.js", "")

	files, err := newLister().List(dir, &domain.Manifest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"dist/bundle.js", "package.json", "src/index.js"}, files)
}

func TestLister_FilesAllowList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{}")
	writeFile(t, dir, "README.md", "")
	writeFile(t, dir, "LICENSE", "")
	writeFile(t, dir, "main.js", "")
	writeFile(t, dir, "dist/index.js", "")
	writeFile(t, dir, "dist/index.test.js", "")
	writeFile(t, dir, "types/a.d.ts", "")
	writeFile(t, dir, "types/deep/b.d.ts", "")
	writeFile(t, dir, "src/index.ts", "")

	m := &domain.Manifest{
		Main:  "./main.js",
		Files: []string{"dist/", "types/**/*.d.ts", "!dist/*.test.js"},
	}

	files, err := newLister().List(dir, m)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"LICENSE",
		"README.md",
		"dist/index.js",
		"main.js",
		"package.json",
		"types/a.d.ts",
		"types/deep/b.d.ts",
	}, files)
}

func TestMatcher_Compile(t *testing.T) {
	rules := npm.NewMatcher().Compile([]string{"*.map", "fixtures/", "!keep.map"})

	assert.True(t, rules.Matches("dist/index.js.map"))
	assert.True(t, rules.Matches("fixtures/a.json"))
	assert.False(t, rules.Matches("keep.map"))
	assert.False(t, rules.Matches("dist/index.js"))
}

func TestReadPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".yalcignore", "a\r\n\n  \nb\n")

	patterns, found, err := npm.ReadPatterns(filepath.Join(dir, ".yalcignore"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, patterns)

	patterns, found, err = npm.ReadPatterns(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, patterns)

	writeFile(t, dir, ".empty", "\n")
	patterns, found, err = npm.ReadPatterns(filepath.Join(dir, ".empty"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, patterns)
}

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		name     string
		lockfile string
		want     domain.PackageManager
	}{
		{name: "npm by default", want: domain.NPM},
		{name: "yarn", lockfile: "yarn.lock", want: domain.Yarn},
		{name: "pnpm", lockfile: "pnpm-lock.yaml", want: domain.Pnpm},
		{name: "npm lockfile", lockfile: "package-lock.json", want: domain.NPM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.lockfile != "" {
				writeFile(t, dir, tt.lockfile, "")
			}
			assert.Equal(t, tt.want, npm.NewDetector().Detect(dir))
		})
	}
}
