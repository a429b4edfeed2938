package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

func TestAdd_VendoredFile(t *testing.T) {
	h := newHarness(t)
	pub := h.publish("lodash", "4.17.21", nil)

	res := h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, "lodash")
	require.Len(t, res, 1)
	assert.Equal(t, "lodash", res[0].Name)
	assert.Empty(t, res[0].Version)
	assert.Equal(t, pub.Signature, res[0].Signature)
	assert.Equal(t, "^4.0.0", res[0].Replaced)

	assert.FileExists(t, filepath.Join(domain.VendorPath(h.project, "lodash"), "index.js"))
	slot := domain.ModulePath(h.project, "lodash")
	assert.FileExists(t, filepath.Join(slot, "index.js"))
	assert.False(t, isSymlink(t, slot))

	assert.Equal(t, "file:.yalc/lodash", h.manifest().Dependencies["lodash"])

	entry := h.lock().Packages["lodash"]
	assert.Equal(t, domain.ModeVendoredFile, entry.Mode())
	assert.Equal(t, "^4.0.0", entry.Replaced)
	assert.Equal(t, pub.Signature, entry.Signature)

	inst, err := h.registry.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{h.project}, inst["lodash"])

	assert.Contains(t, h.log.infos, "Package lodash@4.17.21 added ==> "+slot)
}

func TestAdd_LinkedDependencyExposesBins(t *testing.T) {
	h := newHarness(t)
	h.publish("@acme/cli", "1.0.0", map[string]string{
		"package.json": `{"name": "@acme/cli", "version": "1.0.0", "bin": "bin/cli.js"}`,
		"bin/cli.js":   "#!/usr/bin/env node",
	})

	h.add(installer.AddOptions{Mode: domain.ModeLinkedDependency}, "@acme/cli")

	slot := domain.ModulePath(h.project, "@acme/cli")
	assert.True(t, isSymlink(t, slot))
	assert.Equal(t, "link:.yalc/@acme/cli", h.manifest().Dependencies["@acme/cli"])
	assert.Empty(t, h.lock().Packages["@acme/cli"].Replaced)

	bin := filepath.Join(domain.BinPath(h.project), "cli")
	assert.True(t, isSymlink(t, bin))

	info, err := os.Stat(filepath.Join(domain.VendorPath(h.project, "@acme/cli"), "bin", "cli.js"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestAdd_ResolvedSymlinkLeavesManifest(t *testing.T) {
	h := newHarness(t)
	h.publish("lodash", "4.17.21", nil)

	h.add(installer.AddOptions{Mode: domain.ModeResolvedSymlink}, "lodash")

	data, err := os.ReadFile(filepath.Join(h.project, domain.ManifestFileName))
	require.NoError(t, err)
	assert.Equal(t, projectManifest, string(data))

	assert.True(t, isSymlink(t, domain.ModulePath(h.project, "lodash")))
	assert.Equal(t, domain.ModeResolvedSymlink, h.lock().Packages["lodash"].Mode())
	assert.Contains(t, h.log.infos, "Package lodash@4.17.21 linked ==> "+domain.ModulePath(h.project, "lodash"))
}

func TestAdd_CopyReplacesPreviousSymlink(t *testing.T) {
	h := newHarness(t)
	h.publish("lodash", "4.17.21", nil)

	h.add(installer.AddOptions{Mode: domain.ModeResolvedSymlink}, "lodash")
	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, "lodash")

	slot := domain.ModulePath(h.project, "lodash")
	assert.False(t, isSymlink(t, slot))
	assert.FileExists(t, filepath.Join(slot, "index.js"))
	assert.Equal(t, domain.ModeVendoredFile, h.lock().Packages["lodash"].Mode())
}

func TestAdd_PureFromWorkspaces(t *testing.T) {
	h := newHarness(t)
	writeFile(t, h.project, domain.ManifestFileName, `{"name": "app", "workspaces": ["packages/*"]}`)
	h.publish("lodash", "4.17.21", nil)

	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, "lodash")

	assert.NoDirExists(t, domain.ModulePath(h.project, "lodash"))
	assert.DirExists(t, domain.VendorPath(h.project, "lodash"))
	assert.Equal(t, "file:.yalc/lodash", h.manifest().Dependencies["lodash"])
	assert.Equal(t, domain.ModePure, h.lock().Packages["lodash"].Mode())
	assert.Contains(t, h.log.warns, "Because of `workspaces` enabled in this package --pure option will be used by default, to override use --no-pure.")
	assert.Contains(t, h.log.infos, "lodash@4.17.21 added to "+filepath.Join(".yalc", "lodash")+" purely")
}

func TestAdd_PnpmWorkspaceCanBeOverridden(t *testing.T) {
	h := newHarness(t)
	writeFile(t, h.project, domain.PnpmWorkspaceFileName, "packages:\n  - packages/*\n")
	h.publish("lodash", "4.17.21", nil)

	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile, Pure: boolPtr(false)}, "lodash")

	assert.DirExists(t, domain.ModulePath(h.project, "lodash"))
	assert.Equal(t, domain.ModeVendoredFile, h.lock().Packages["lodash"].Mode())
	assert.Empty(t, h.log.warns)
}

func TestAdd_PureWorkspaceAddress(t *testing.T) {
	h := newHarness(t)
	h.publish("lodash", "4.17.21", nil)

	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile, Pure: boolPtr(true), Workspace: true}, "lodash")

	assert.Equal(t, domain.WorkspaceAddress, h.manifest().Dependencies["lodash"])
	entry := h.lock().Packages["lodash"]
	assert.True(t, entry.Pure)
	assert.True(t, entry.Workspace)
}

func TestAdd_DevMovesDependency(t *testing.T) {
	h := newHarness(t)
	h.publish("lodash", "4.17.21", nil)

	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile, Dev: true}, "lodash")

	m := h.manifest()
	assert.NotContains(t, m.Dependencies, "lodash")
	assert.Equal(t, "file:.yalc/lodash", m.DevDependencies["lodash"])
	assert.Equal(t, "^4.0.0", h.lock().Packages["lodash"].Replaced)
}

func TestAdd_KeepsExistingDevBucket(t *testing.T) {
	h := newHarness(t)
	writeFile(t, h.project, domain.ManifestFileName, `{"name": "app", "devDependencies": {"lodash": "~4.1.0"}}`)
	h.publish("lodash", "4.17.21", nil)

	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, "lodash")

	m := h.manifest()
	assert.Empty(t, m.Dependencies)
	assert.Equal(t, "file:.yalc/lodash", m.DevDependencies["lodash"])
	assert.Equal(t, "~4.1.0", h.lock().Packages["lodash"].Replaced)
}

func TestAdd_SpecificVersion(t *testing.T) {
	h := newHarness(t)
	h.publish("lodash", "1.0.0", nil)
	h.publish("lodash", "2.0.0", nil)

	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, "lodash@1.0.0")

	data, err := os.ReadFile(filepath.Join(domain.VendorPath(h.project, "lodash"), "index.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "lodash@1.0.0")
	assert.Equal(t, "1.0.0", h.lock().Packages["lodash"].Version)
}

func TestAdd_SkipsMissingPackages(t *testing.T) {
	h := newHarness(t)
	h.publish("lodash", "4.17.21", nil)

	res := h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, "missing", "lodash", "lodash@9.9.9")
	require.Len(t, res, 1)
	assert.Equal(t, "lodash", res[0].Name)

	require.Len(t, h.log.warns, 1)
	assert.Contains(t, h.log.warns[0], "Could not find package `missing` in store")
	assert.NotContains(t, h.lock().Packages, "missing")
}

func TestAdd_NothingFound(t *testing.T) {
	h := newHarness(t)

	res := h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, "missing")
	assert.Empty(t, res)
	assert.NoFileExists(t, filepath.Join(h.project, domain.LockfileName))
}

func TestAdd_RunsHooksAndUpdate(t *testing.T) {
	h := newHarness(t)
	writeFile(t, h.project, domain.ManifestFileName, `{
  "name": "app",
  "scripts": {
    "preyalc": "echo pre",
    "preyalc.lodash": "echo pre lodash",
    "postyalc.lodash": "echo post lodash",
    "postyalc": "echo post"
  }
}`)
	writeFile(t, h.project, "yarn.lock", "")
	h.publish("lodash", "4.17.21", nil)

	gomock.InOrder(
		h.scripts.EXPECT().RunScript(gomock.Any(), h.project, domain.Yarn, "preyalc").Return(nil),
		h.scripts.EXPECT().RunScript(gomock.Any(), h.project, domain.Yarn, "preyalc.lodash").Return(nil),
		h.scripts.EXPECT().RunScript(gomock.Any(), h.project, domain.Yarn, "postyalc.lodash").Return(nil),
		h.scripts.EXPECT().RunScript(gomock.Any(), h.project, domain.Yarn, "postyalc").Return(nil),
		h.scripts.EXPECT().RunUpdate(gomock.Any(), h.project, domain.Yarn, []string{"lodash"}).Return(nil),
	)

	h.add(installer.AddOptions{Mode: domain.ModeVendoredFile, Update: true}, "lodash")
}

func TestAdd_HookFailureAborts(t *testing.T) {
	h := newHarness(t)
	writeFile(t, h.project, domain.ManifestFileName, `{"name": "app", "scripts": {"preyalc": "exit 1"}}`)
	h.publish("lodash", "4.17.21", nil)

	h.scripts.EXPECT().RunScript(gomock.Any(), h.project, domain.NPM, "preyalc").Return(domain.ErrScriptFailed)

	_, err := h.inst.Add(context.Background(), []string{"lodash"}, installer.AddOptions{WorkingDir: h.project})
	require.Error(t, err)
	assert.NoDirExists(t, domain.VendorPath(h.project, "lodash"))
}

func TestAdd_MissingProjectManifest(t *testing.T) {
	h := newHarness(t)

	_, err := h.inst.Add(context.Background(), []string{"lodash"}, installer.AddOptions{WorkingDir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingProjectManifest.Error())
}

func TestAdd_ManyPackagesKeepRequestOrder(t *testing.T) {
	h := newHarness(t)
	names := []string{"a", "b", "c", "d", "e", "f"}
	for _, n := range names {
		h.publish(n, "1.0.0", nil)
	}

	res := h.add(installer.AddOptions{Mode: domain.ModeVendoredFile}, names...)
	require.Len(t, res, len(names))
	for i, n := range names {
		assert.Equal(t, n, res[i].Name)
		assert.Equal(t, "file:.yalc/"+n, h.manifest().Dependencies[n])
	}
}
