package domain

import "go.trai.ch/zerr"

var (
	// ErrPackageNotInStore is returned when a requested package or version has no store entry.
	ErrPackageNotInStore = zerr.New("package not found in store")

	// ErrVendorCopyNotFound is returned when restoring a package whose vendor copy is missing.
	ErrVendorCopyNotFound = zerr.New("package not found in .yalc directory")

	// ErrManifestNotFound is returned when a directory has no package.json.
	ErrManifestNotFound = zerr.New("package manifest not found")

	// ErrMissingProjectManifest is returned when the consuming project has no package.json.
	ErrMissingProjectManifest = zerr.New("no package.json found in project directory")

	// ErrManifestReadFailed is returned when package.json cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestParseFailed is returned when package.json is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrManifestEditFailed is returned when an edit cannot be applied to a manifest document.
	ErrManifestEditFailed = zerr.New("failed to edit package manifest")

	// ErrManifestWriteFailed is returned when package.json cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write package manifest")

	// ErrMissingPackageName is returned when a manifest does not declare a name.
	ErrMissingPackageName = zerr.New("package manifest has no name")

	// ErrMissingPackageVersion is returned when a manifest does not declare a version.
	ErrMissingPackageVersion = zerr.New("package manifest has no version")

	// ErrInvalidPackageSpec is returned when a package argument cannot be parsed.
	ErrInvalidPackageSpec = zerr.New("could not parse package name")

	// ErrPrivatePackage is returned when publishing a private package without the override flag.
	ErrPrivatePackage = zerr.New("will not publish package with `private: true`, use --private flag to force publishing")

	// ErrStoreReadFailed is returned when the store cannot be listed.
	ErrStoreReadFailed = zerr.New("failed to read package store")

	// ErrStoreCreateFailed is returned when a store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrListFilesFailed is returned when the publishable file set cannot be computed.
	ErrListFilesFailed = zerr.New("failed to list package files")

	// ErrIgnoreFileReadFailed is returned when an ignore file exists but cannot be read.
	ErrIgnoreFileReadFailed = zerr.New("failed to read ignore file")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrSignatureReadFailed is returned when a signature file exists but cannot be read.
	ErrSignatureReadFailed = zerr.New("failed to read signature file")

	// ErrSignatureWriteFailed is returned when the signature file cannot be written.
	ErrSignatureWriteFailed = zerr.New("failed to write signature file")

	// ErrCopyFailed is returned when a file or directory cannot be copied.
	ErrCopyFailed = zerr.New("failed to copy")

	// ErrRemoveFailed is returned when a file or directory cannot be removed.
	ErrRemoveFailed = zerr.New("failed to remove")

	// ErrSymlinkFailed is returned when a symlink cannot be created.
	ErrSymlinkFailed = zerr.New("failed to create symlink")

	// ErrLockfileReadFailed is returned when yalc.lock cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when yalc.lock is not valid JSON.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockfileWriteFailed is returned when yalc.lock cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrInstallationsReadFailed is returned when installations.json cannot be read.
	ErrInstallationsReadFailed = zerr.New("failed to read installations file")

	// ErrInstallationsParseFailed is returned when installations.json is not valid JSON.
	ErrInstallationsParseFailed = zerr.New("failed to parse installations file")

	// ErrInstallationsWriteFailed is returned when installations.json cannot be written.
	ErrInstallationsWriteFailed = zerr.New("failed to write installations file")

	// ErrScriptFailed is returned when a lifecycle script exits with a non-zero status.
	ErrScriptFailed = zerr.New("script failed")

	// ErrCommandFailed is returned when an external command cannot be run to completion.
	ErrCommandFailed = zerr.New("command failed")

	// ErrConfigReadFailed is returned when the rc file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the rc file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownConfigKey is returned when the rc file names an option no command accepts.
	ErrUnknownConfigKey = zerr.New("unknown option in config file")

	// ErrHomeDirNotFound is returned when no store directory can be derived from the environment.
	ErrHomeDirNotFound = zerr.New("could not determine home directory for the store")

	// ErrLocalDependenciesFound is returned by check when the manifest references yalc packages.
	ErrLocalDependenciesFound = zerr.New("yalc dependencies found")

	// ErrTracerSetupFailed is returned when the trace exporter cannot be created.
	ErrTracerSetupFailed = zerr.New("failed to set up tracing")
)
