package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/core/domain"
)

func TestParsePackageSpec(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    domain.PackageSpec
		wantErr bool
	}{
		{name: "plain name", arg: "lodash", want: domain.PackageSpec{Name: "lodash"}},
		{name: "name with version", arg: "lodash@4.17.21", want: domain.PackageSpec{Name: "lodash", Version: "4.17.21"}},
		{name: "scoped name", arg: "@acme/ui", want: domain.PackageSpec{Name: "@acme/ui"}},
		{name: "scoped with version", arg: "@acme/ui@1.0.0+abcd1234", want: domain.PackageSpec{Name: "@acme/ui", Version: "1.0.0+abcd1234"}},
		{name: "dotted name", arg: "socket.io@2.0.0", want: domain.PackageSpec{Name: "socket.io", Version: "2.0.0"}},
		{name: "empty", arg: "", wantErr: true},
		{name: "only version", arg: "@1.0.0", wantErr: true},
		{name: "scope without name", arg: "@acme/", wantErr: true},
		{name: "scope without slash", arg: "@acme", wantErr: true},
		{name: "parent segment", arg: "../src", wantErr: true},
		{name: "nested parent segment", arg: "a/../../x", wantErr: true},
		{name: "current segment", arg: "./x", wantErr: true},
		{name: "scoped parent segment", arg: "@acme/../src", wantErr: true},
		{name: "parent scope", arg: "@../src", wantErr: true},
		{name: "absolute path", arg: "/etc/passwd", wantErr: true},
		{name: "extra slash", arg: "a/b", wantErr: true},
		{name: "extra slash in scoped name", arg: "@acme/ui/x", wantErr: true},
		{name: "leading dot", arg: ".hidden", wantErr: true},
		{name: "leading underscore", arg: "_private", wantErr: true},
		{name: "backslash", arg: "a\\b", wantErr: true},
		{name: "version with separator", arg: "lodash@../../x", wantErr: true},
		{name: "version is parent", arg: "lodash@..", wantErr: true},
		{name: "tilde and parens", arg: "a~b(c)", want: domain.PackageSpec{Name: "a~b(c)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePackageSpec(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrInvalidPackageSpec.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.arg, got.String())
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	require.NoError(t, domain.ValidatePackageName("@acme/lodash.merge"))
	require.NoError(t, domain.ValidatePackageName("left-pad"))

	for _, name := range []string{"", "..", "@acme", "@/ui", "@acme/", "node_modules/../x", "C:\\x", "a b"} {
		assert.ErrorIs(t, domain.ValidatePackageName(name), domain.ErrInvalidPackageSpec, name)
	}
}

func TestLockEntry_ModeRoundTrip(t *testing.T) {
	for _, mode := range domain.UpdateOrder {
		t.Run(mode.String(), func(t *testing.T) {
			entry := domain.NewLockEntry("1.0.0", mode, false, "^1.0.0", "sig")
			assert.Equal(t, mode, entry.Mode())
			assert.Equal(t, "1.0.0", entry.Version)
			assert.Equal(t, "^1.0.0", entry.Replaced)
			assert.Equal(t, "sig", entry.Signature)
		})
	}

	t.Run("pure with workspace address stays pure", func(t *testing.T) {
		entry := domain.NewLockEntry("", domain.ModePure, true, "", "")
		assert.True(t, entry.Pure)
		assert.True(t, entry.Workspace)
		assert.Equal(t, domain.ModePure, entry.Mode())
	})

	t.Run("no flags is symlink", func(t *testing.T) {
		assert.Equal(t, domain.ModeResolvedSymlink, domain.LockEntry{}.Mode())
	})
}

func TestInstallMode_Address(t *testing.T) {
	tests := []struct {
		mode      domain.InstallMode
		workspace bool
		want      string
	}{
		{mode: domain.ModeVendoredFile, want: "file:.yalc/@acme/ui"},
		{mode: domain.ModeLinkedDependency, want: "link:.yalc/@acme/ui"},
		{mode: domain.ModeWorkspace, want: "workspace:*"},
		{mode: domain.ModePure, want: "file:.yalc/@acme/ui"},
		{mode: domain.ModePure, workspace: true, want: "workspace:*"},
		{mode: domain.ModeResolvedSymlink, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.Address("@acme/ui", tt.workspace))
		})
	}
}

func TestIsYalcAddress(t *testing.T) {
	assert.True(t, domain.IsYalcAddress("file:.yalc/lodash"))
	assert.True(t, domain.IsYalcAddress("link:.yalc/@acme/ui"))
	assert.True(t, domain.IsYalcAddress("file:./.yalc/lodash"))
	assert.False(t, domain.IsYalcAddress("file:../lodash"))
	assert.False(t, domain.IsYalcAddress("^1.0.0"))
	assert.False(t, domain.IsYalcAddress("workspace:*"))

	assert.True(t, domain.IsLocalAddress("file:../lodash"))
	assert.False(t, domain.IsLocalAddress("^1.0.0"))
}

func TestManifest_Dependency(t *testing.T) {
	m := &domain.Manifest{
		Dependencies:    map[string]string{"a": "^1.0.0"},
		DevDependencies: map[string]string{"a": "^2.0.0", "b": "~3.0.0"},
	}

	bucket, value, ok := m.Dependency("a")
	require.True(t, ok)
	assert.Equal(t, domain.BucketDependencies, bucket)
	assert.Equal(t, "^1.0.0", value)

	bucket, value, ok = m.Dependency("b")
	require.True(t, ok)
	assert.Equal(t, domain.BucketDevDependencies, bucket)
	assert.Equal(t, "~3.0.0", value)

	_, _, ok = m.Dependency("c")
	assert.False(t, ok)

	assert.NotNil(t, m.Deps(domain.BucketPeerDependencies))
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, []string{"yarn", "upgrade"}, domain.Strategy(domain.Yarn).Update)
	assert.Equal(t, []string{"pnpm", "run"}, domain.Strategy(domain.Pnpm).RunScript)
	assert.Equal(t, domain.NPM, domain.Strategy("bun").ID)
}

func TestUnscopedName(t *testing.T) {
	assert.Equal(t, "ui", domain.UnscopedName("@acme/ui"))
	assert.Equal(t, "lodash", domain.UnscopedName("lodash"))
}
