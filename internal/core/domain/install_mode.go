package domain

import "strings"

// InstallMode is the way a package was materialized into a project.
// The modes are mutually exclusive.
type InstallMode uint8

const (
	// ModeVendoredFile copies the vendor copy into the dependency slot and
	// points the manifest at file:.yalc/<name>.
	ModeVendoredFile InstallMode = iota
	// ModeResolvedSymlink symlinks the dependency slot to the vendor copy and
	// leaves the manifest untouched.
	ModeResolvedSymlink
	// ModeLinkedDependency symlinks the dependency slot to the vendor copy and
	// points the manifest at link:.yalc/<name>.
	ModeLinkedDependency
	// ModeWorkspace copies the vendor copy into the dependency slot and points
	// the manifest at workspace:*.
	ModeWorkspace
	// ModePure only rewrites the manifest. The dependency slot is left to the
	// host package manager.
	ModePure
)

// UpdateOrder is the order in which update replays mode groups.
var UpdateOrder = []InstallMode{
	ModeVendoredFile,
	ModeResolvedSymlink,
	ModeWorkspace,
	ModeLinkedDependency,
	ModePure,
}

const (
	fileProtocol      = "file:"
	linkProtocol      = "link:"
	workspaceProtocol = "workspace:"
	// WorkspaceAddress is the manifest value used for workspace references.
	WorkspaceAddress = workspaceProtocol + "*"
)

func (m InstallMode) String() string {
	switch m {
	case ModeVendoredFile:
		return "file"
	case ModeResolvedSymlink:
		return "symlink"
	case ModeLinkedDependency:
		return "link"
	case ModeWorkspace:
		return "workspace"
	case ModePure:
		return "pure"
	default:
		return "unknown"
	}
}

// IsSymlink reports whether the dependency slot becomes a symlink.
func (m InstallMode) IsSymlink() bool {
	return m == ModeResolvedSymlink || m == ModeLinkedDependency
}

// WritesModules reports whether the mode touches the dependency slot.
func (m InstallMode) WritesModules() bool {
	return m != ModePure
}

// RewritesManifest reports whether the mode changes the consuming manifest.
func (m InstallMode) RewritesManifest() bool {
	return m != ModeResolvedSymlink
}

// Address returns the manifest dependency value for name. workspace selects
// the workspace reference for pure installs. The empty string is returned for
// modes that do not rewrite the manifest.
func (m InstallMode) Address(name string, workspace bool) string {
	switch m {
	case ModeWorkspace:
		return WorkspaceAddress
	case ModePure:
		if workspace {
			return WorkspaceAddress
		}
		return fileProtocol + VendorDirName + "/" + name
	case ModeLinkedDependency:
		return linkProtocol + VendorDirName + "/" + name
	case ModeVendoredFile:
		return fileProtocol + VendorDirName + "/" + name
	default:
		return ""
	}
}

// IsYalcAddress reports whether value is a manifest reference into the vendor folder.
func IsYalcAddress(value string) bool {
	for _, proto := range []string{fileProtocol, linkProtocol} {
		if rest, ok := strings.CutPrefix(value, proto); ok {
			rest = strings.TrimPrefix(rest, "./")
			return strings.HasPrefix(rest, VendorDirName+"/")
		}
	}
	return false
}

// IsLocalAddress reports whether value is any file: or link: reference.
func IsLocalAddress(value string) bool {
	return strings.HasPrefix(value, fileProtocol) || strings.HasPrefix(value, linkProtocol)
}

// WorkspaceRange returns the range of a workspace:<range> dependency value.
func WorkspaceRange(value string) (string, bool) {
	return strings.CutPrefix(value, workspaceProtocol)
}
