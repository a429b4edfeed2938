package domain

// PublishOptions controls how a package is copied into the store.
type PublishOptions struct {
	// Signature appends the short signature to the written version.
	Signature bool
	// Changed skips publishing when the stored signature matches the sources.
	Changed bool
	// Content logs every published file.
	Content bool
	// DevMod strips devDependencies and the prepare/prepublish scripts.
	DevMod bool
	// WorkspaceResolve rewrites workspace: dependency ranges to concrete versions.
	WorkspaceResolve bool
}

// PublishResult describes a store entry produced by a publish.
type PublishResult struct {
	Name      string
	Version   string
	Signature string
	Dir       string
	// Unchanged is set when Changed detection matched and nothing was written.
	Unchanged bool
}

// ShortSignature returns the prefix of sig appended to versions.
func ShortSignature(sig string) string {
	if len(sig) <= ShortSignatureLength {
		return sig
	}
	return sig[:ShortSignatureLength]
}
