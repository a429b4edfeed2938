package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PackageSpec is a package argument of the form name or name@version.
type PackageSpec struct {
	Name    string
	Version string
}

// ParsePackageSpec parses "name", "name@version", "@scope/name" and "@scope/name@version".
// Names that could escape the store, vendor or node_modules folders are rejected.
func ParsePackageSpec(arg string) (PackageSpec, error) {
	arg = strings.TrimSpace(arg)

	var scope string
	rest := arg
	if strings.HasPrefix(arg, "@") {
		s, r, ok := strings.Cut(arg[1:], "/")
		if !ok {
			return PackageSpec{}, zerr.With(ErrInvalidPackageSpec, "package", arg)
		}
		scope = "@" + s + "/"
		rest = r
	}

	name, version, _ := strings.Cut(rest, "@")
	spec := PackageSpec{Name: scope + name, Version: version}
	if err := ValidatePackageName(spec.Name); err != nil {
		return PackageSpec{}, zerr.With(err, "package", arg)
	}
	if err := ValidatePackageVersion(spec.Version); err != nil {
		return PackageSpec{}, zerr.With(err, "package", arg)
	}
	return spec, nil
}

// ValidatePackageName reports whether name is a plain or scoped npm package
// name that maps to exactly one folder (two for scoped names).
func ValidatePackageName(name string) error {
	parts := []string{name}
	if strings.HasPrefix(name, "@") {
		scope, rest, ok := strings.Cut(name[1:], "/")
		if !ok {
			return ErrInvalidPackageSpec
		}
		parts = []string{scope, rest}
	}
	for _, part := range parts {
		if !validNameSegment(part) {
			return ErrInvalidPackageSpec
		}
	}
	return nil
}

// ValidatePackageVersion rejects versions that cannot be used as a single
// store folder name. An empty version means latest and is accepted.
func ValidatePackageVersion(version string) error {
	if version == "" {
		return nil
	}
	if version == "." || version == ".." || strings.ContainsAny(version, "/\\ \t") {
		return ErrInvalidPackageSpec
	}
	return nil
}

// validNameSegment accepts the URL-safe characters npm allows in names.
// Segments may not start with a dot or an underscore.
func validNameSegment(s string) bool {
	if s == "" || s[0] == '.' || s[0] == '_' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-._~!*'()", r):
		default:
			return false
		}
	}
	return true
}

// String renders the spec back to its argument form.
func (s PackageSpec) String() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + "@" + s.Version
}
