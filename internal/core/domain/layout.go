package domain

import "path/filepath"

const (
	// StoreDirName is the name of the store directory under the user's home.
	StoreDirName = ".yalc"

	// WindowsStoreDirName is the name of the store directory under LOCALAPPDATA.
	WindowsStoreDirName = "Yalc"

	// StorePackagesDirName is the directory inside the store root that holds package entries.
	StorePackagesDirName = "packages"

	// InstallationsFileName is the name of the global installations registry file.
	InstallationsFileName = "installations.json"

	// VendorDirName is the project-local folder holding vendor copies.
	VendorDirName = ".yalc"

	// LockfileName is the name of the per-project lockfile.
	LockfileName = "yalc.lock"

	// SignatureFileName is the name of the file holding a package signature.
	SignatureFileName = "yalc.sig"

	// IgnoreFileName is the name of the project ignore file applied on publish.
	IgnoreFileName = ".yalcignore"

	// ConfigFileName is the name of the rc file holding flag defaults.
	ConfigFileName = ".yalcrc"

	// ManifestFileName is the name of the package manifest.
	ManifestFileName = "package.json"

	// ModulesDirName is the dependency resolution directory.
	ModulesDirName = "node_modules"

	// BinDirName is the executables directory inside ModulesDirName.
	BinDirName = ".bin"

	// PnpmWorkspaceFileName marks a pnpm workspace root.
	PnpmWorkspaceFileName = "pnpm-workspace.yaml"

	// StoreFolderEnv overrides the store root when set.
	StoreFolderEnv = "YALC_STORE_FOLDER"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission applied to linked executables (rwxr-xr-x).
	ExecPerm = 0o755

	// ShortSignatureLength is the number of signature characters appended to versions.
	ShortSignatureLength = 8
)

// VendorPath returns the vendor copy directory of a package inside a project.
func VendorPath(projectDir, name string) string {
	return filepath.Join(projectDir, VendorDirName, filepath.FromSlash(name))
}

// ModulePath returns the dependency slot of a package inside a project.
func ModulePath(projectDir, name string) string {
	return filepath.Join(projectDir, ModulesDirName, filepath.FromSlash(name))
}

// BinPath returns the executables directory of a project.
func BinPath(projectDir string) string {
	return filepath.Join(projectDir, ModulesDirName, BinDirName)
}

// StorePackagesPath returns the directory holding every package of a store root.
func StorePackagesPath(storeRoot string) string {
	return filepath.Join(storeRoot, StorePackagesDirName)
}

// StorePackagePath returns the store directory of a package, or of one of its versions
// when version is not empty.
func StorePackagePath(storeRoot, name, version string) string {
	dir := filepath.Join(StorePackagesPath(storeRoot), filepath.FromSlash(name))
	if version == "" {
		return dir
	}
	return filepath.Join(dir, version)
}
