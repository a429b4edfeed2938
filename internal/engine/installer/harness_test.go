package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/adapters/cas"
	"go.trai.ch/yalc/internal/adapters/fs"
	"go.trai.ch/yalc/internal/adapters/installations"
	"go.trai.ch/yalc/internal/adapters/lockfile"
	"go.trai.ch/yalc/internal/adapters/manifest"
	"go.trai.ch/yalc/internal/adapters/npm"
	"go.trai.ch/yalc/internal/adapters/telemetry"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports/mocks"
	"go.trai.ch/yalc/internal/engine/hooks"
	"go.trai.ch/yalc/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

type storeDir string

func (d storeDir) StoreDir() string { return string(d) }

type recorder struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (r *recorder) info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}

func (r *recorder) warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, msg)
}

type harness struct {
	t        *testing.T
	project  string
	store    *cas.Store
	registry *installations.Repository
	locks    *lockfile.Repository
	scripts  *mocks.MockScriptRunner
	vcs      *mocks.MockVCS
	log      *recorder
	inst     *installer.Installer
}

const projectManifest = `{
  "name": "app",
  "version": "1.0.0",
  "dependencies": {
    "lodash": "^4.0.0"
  }
}
`

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	rec := &recorder{}
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Do(rec.info).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Do(rec.warn).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	walker := fs.NewWalker()
	hasher := fs.NewHasher()
	matcher := npm.NewMatcher()
	copier := fs.NewCopier(walker, hasher)
	manifests := manifest.NewStore()
	locks := lockfile.NewRepository()
	root := storeDir(t.TempDir())
	store := cas.NewStore(root, npm.NewLister(walker, matcher), matcher, hasher, copier, manifests, log)
	registry := installations.NewRepository(root, locks)
	scripts := mocks.NewMockScriptRunner(ctrl)
	vcs := mocks.NewMockVCS(ctrl)

	project := t.TempDir()
	writeFile(t, project, domain.ManifestFileName, projectManifest)

	inst := installer.New(
		manifests,
		store,
		copier,
		locks,
		registry,
		hooks.NewRunner(scripts, npm.NewDetector(), log),
		scripts,
		vcs,
		log,
		telemetry.NewOTelTracer(),
	)

	return &harness{
		t:        t,
		project:  project,
		store:    store,
		registry: registry,
		locks:    locks,
		scripts:  scripts,
		vcs:      vcs,
		log:      rec,
		inst:     inst,
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// publish stores a package built from files and returns its signature.
func (h *harness) publish(name, version string, files map[string]string) domain.PublishResult {
	h.t.Helper()
	src := h.t.TempDir()
	if _, ok := files["package.json"]; !ok {
		writeFile(h.t, src, "package.json", `{"name": "`+name+`", "version": "`+version+`"}`)
	}
	if len(files) == 0 {
		writeFile(h.t, src, "index.js", "module.exports = '"+name+"@"+version+"'")
	}
	for rel, content := range files {
		writeFile(h.t, src, rel, content)
	}

	res, err := h.store.Publish(context.Background(), src, domain.PublishOptions{})
	require.NoError(h.t, err)
	return res
}

func (h *harness) manifest() *domain.Manifest {
	h.t.Helper()
	m, err := manifest.NewStore().Read(h.project)
	require.NoError(h.t, err)
	return m
}

func (h *harness) lock() *domain.Lockfile {
	h.t.Helper()
	lock, err := h.locks.Read(h.project)
	require.NoError(h.t, err)
	return lock
}

func (h *harness) add(opts installer.AddOptions, specs ...string) []domain.InstallResult {
	h.t.Helper()
	opts.WorkingDir = h.project
	res, err := h.inst.Add(context.Background(), specs, opts)
	require.NoError(h.t, err)
	return res
}

func isSymlink(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	return info.Mode()&os.ModeSymlink != 0
}

func boolPtr(b bool) *bool {
	return &b
}
