package installations_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/adapters/installations"
	"go.trai.ch/yalc/internal/adapters/lockfile"
	"go.trai.ch/yalc/internal/core/domain"
)

type storeDir string

func (d storeDir) StoreDir() string { return string(d) }

func newRepo(t *testing.T) (*installations.Repository, string) {
	t.Helper()
	root := t.TempDir()
	return installations.NewRepository(storeDir(root), lockfile.NewRepository()), root
}

func TestRepository_AddIsIdempotent(t *testing.T) {
	repo, root := newRepo(t)

	pairs := []domain.Installation{
		{Name: "lodash", Path: "/a"},
		{Name: "lodash", Path: "/b"},
		{Name: "lodash", Path: "/a"},
	}
	require.NoError(t, repo.Add(pairs))
	require.NoError(t, repo.Add(pairs[:1]))

	inst, err := repo.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.Installations{"lodash": {"/a", "/b"}}, inst)
	assert.FileExists(t, filepath.Join(root, domain.InstallationsFileName))
}

func TestRepository_RemoveDropsEmptyKeys(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.Add([]domain.Installation{
		{Name: "lodash", Path: "/a"},
		{Name: "react", Path: "/a"},
		{Name: "react", Path: "/b"},
	}))

	require.NoError(t, repo.Remove([]domain.Installation{
		{Name: "lodash", Path: "/a"},
		{Name: "react", Path: "/b"},
		{Name: "missing", Path: "/x"},
	}))

	inst, err := repo.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.Installations{"react": {"/a"}}, inst)
}

func TestRepository_Show(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.Add([]domain.Installation{
		{Name: "lodash", Path: "/a"},
		{Name: "react", Path: "/b"},
	}))

	all, err := repo.Show(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := repo.Show([]string{"react", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, domain.Installations{"react": {"/b"}}, some)
}

func TestRepository_Clean(t *testing.T) {
	repo, _ := newRepo(t)

	locked := t.TempDir()
	require.NoError(t, lockfile.NewRepository().Write(locked, map[string]domain.LockEntry{"lodash": {File: true}}))
	unlocked := t.TempDir()
	gone := filepath.Join(t.TempDir(), "gone")

	require.NoError(t, repo.Add([]domain.Installation{
		{Name: "lodash", Path: locked},
		{Name: "lodash", Path: unlocked},
		{Name: "lodash", Path: gone},
	}))

	stale, err := repo.Clean(nil, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Installation{
		{Name: "lodash", Path: unlocked},
		{Name: "lodash", Path: gone},
	}, stale)

	inst, err := repo.Read()
	require.NoError(t, err)
	assert.Len(t, inst["lodash"], 3)

	stale, err = repo.Clean([]string{"lodash"}, false)
	require.NoError(t, err)
	assert.Len(t, stale, 2)

	inst, err = repo.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.Installations{"lodash": {locked}}, inst)
}

func TestRepository_ReadCorrupt(t *testing.T) {
	repo, root := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.InstallationsFileName), []byte("[oops"), 0o600))

	_, err := repo.Read()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInstallationsParseFailed.Error())
}
