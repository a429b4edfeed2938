package domain

// LockfileVersion is the format version written into yalc.lock.
const LockfileVersion = "v1"

// Lockfile is the per-project record of installed packages.
type Lockfile struct {
	Version  string               `json:"version"`
	Packages map[string]LockEntry `json:"packages"`
}

// NewLockfile returns an empty lockfile.
func NewLockfile() *Lockfile {
	return &Lockfile{Version: LockfileVersion, Packages: map[string]LockEntry{}}
}

// LockEntry records how one package was installed.
type LockEntry struct {
	// Version is the version the package was requested at, empty for latest.
	Version   string `json:"version"`
	File      bool   `json:"file,omitempty"`
	Link      bool   `json:"link,omitempty"`
	Workspace bool   `json:"workspace,omitempty"`
	Pure      bool   `json:"pure,omitempty"`
	Replaced  string `json:"replaced,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// NewLockEntry builds the entry for an install in mode. workspace records that
// a pure install used the workspace reference.
func NewLockEntry(version string, mode InstallMode, workspace bool, replaced, signature string) LockEntry {
	e := LockEntry{Version: version, Replaced: replaced, Signature: signature}
	switch mode {
	case ModeVendoredFile:
		e.File = true
	case ModeLinkedDependency:
		e.Link = true
	case ModeWorkspace:
		e.Workspace = true
	case ModePure:
		e.Pure = true
		e.Workspace = workspace
	case ModeResolvedSymlink:
	}
	return e
}

// Mode returns the install mode recorded by the entry flags.
// Flags are read in precedence order so every entry maps to exactly one mode.
func (e LockEntry) Mode() InstallMode {
	switch {
	case e.Pure:
		return ModePure
	case e.Workspace:
		return ModeWorkspace
	case e.Link:
		return ModeLinkedDependency
	case e.File:
		return ModeVendoredFile
	default:
		return ModeResolvedSymlink
	}
}

// Installation is a (package, consuming project) pair of the registry.
type Installation struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Installations maps package names to the absolute paths of consuming projects.
type Installations map[string][]string

// InstallResult describes one package installed by an add batch.
type InstallResult struct {
	Name        string
	Version     string
	Signature   string
	Replaced    string
	ProjectPath string
	Mode        InstallMode
}
