package domain

import "strings"

// Bucket names a dependency mapping of a manifest.
type Bucket string

const (
	// BucketDependencies is the runtime dependency mapping.
	BucketDependencies Bucket = "dependencies"
	// BucketDevDependencies is the development dependency mapping.
	BucketDevDependencies Bucket = "devDependencies"
	// BucketPeerDependencies is the peer dependency mapping.
	BucketPeerDependencies Bucket = "peerDependencies"
)

// ManifestBuckets lists the dependency mappings in the order they are inspected.
var ManifestBuckets = []Bucket{BucketDependencies, BucketDevDependencies, BucketPeerDependencies}

// Manifest is a parsed package.json.
// The typed fields are read-only views of Raw, which is the document as found on disk
// and the only thing that gets written back.
type Manifest struct {
	Name             string
	Version          string
	Main             string
	Private          bool
	HasWorkspaces    bool
	Dependencies     map[string]string
	DevDependencies  map[string]string
	PeerDependencies map[string]string
	Scripts          map[string]string
	// Bin maps executable names to package-relative paths. A string "bin" field
	// is keyed by the unscoped package name.
	Bin map[string]string
	// Files is the publish allow-list, nil when the manifest has none.
	Files []string
	// Signature is the injected yalcSig field of store copies.
	Signature string
	Raw       []byte
}

// Deps returns the mapping for the given bucket, never nil.
func (m *Manifest) Deps(b Bucket) map[string]string {
	var deps map[string]string
	switch b {
	case BucketDependencies:
		deps = m.Dependencies
	case BucketDevDependencies:
		deps = m.DevDependencies
	case BucketPeerDependencies:
		deps = m.PeerDependencies
	}
	if deps == nil {
		return map[string]string{}
	}
	return deps
}

// Dependency looks a package up in dependencies, then devDependencies.
func (m *Manifest) Dependency(name string) (Bucket, string, bool) {
	if v, ok := m.Dependencies[name]; ok {
		return BucketDependencies, v, true
	}
	if v, ok := m.DevDependencies[name]; ok {
		return BucketDevDependencies, v, true
	}
	return "", "", false
}

// Script returns the command of a named script.
func (m *Manifest) Script(name string) (string, bool) {
	cmd, ok := m.Scripts[name]
	return cmd, ok && cmd != ""
}

// ManifestEdit is a single in-place change to a manifest document.
// Path segments are literal keys; dots in package names need no escaping.
type ManifestEdit struct {
	Path   []string
	Value  any
	Delete bool
}

// SetField returns an edit assigning value at path.
func SetField(value any, path ...string) ManifestEdit {
	return ManifestEdit{Path: path, Value: value}
}

// DeleteField returns an edit removing the key at path.
func DeleteField(path ...string) ManifestEdit {
	return ManifestEdit{Path: path, Delete: true}
}

// SetDependency returns an edit assigning a dependency value.
func SetDependency(b Bucket, name, value string) ManifestEdit {
	return SetField(value, string(b), name)
}

// DeleteDependency returns an edit removing a dependency.
func DeleteDependency(b Bucket, name string) ManifestEdit {
	return DeleteField(string(b), name)
}

// UnscopedName strips the "@scope/" prefix from a package name.
func UnscopedName(name string) string {
	if strings.HasPrefix(name, "@") {
		if _, rest, ok := strings.Cut(name, "/"); ok {
			return rest
		}
	}
	return name
}
