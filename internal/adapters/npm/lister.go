package npm

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/yalc/internal/adapters/fs"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileLister = (*Lister)(nil)

// alwaysIgnored are base names npm never publishes.
var alwaysIgnored = []string{
	domain.ModulesDirName,
	domain.VendorDirName,
	domain.LockfileName,
	domain.SignatureFileName,
	".svn",
	".hg",
	"CVS",
	".DS_Store",
	"._*",
	".*.swp",
	".lock-wscript",
	".npmrc",
	"npm-debug.log",
	"config.gypi",
	"*.orig",
	"package-lock.json",
}

// alwaysIncluded are root files npm publishes regardless of the allow-list.
var alwaysIncluded = []string{
	domain.ManifestFileName,
	"README*",
	"readme*",
	"LICENSE*",
	"license*",
	"LICENCE*",
	"licence*",
}

// Lister lists the files npm would pack for a package directory.
type Lister struct {
	walker  *fs.Walker
	matcher ports.IgnoreMatcher
}

// NewLister creates a new Lister.
func NewLister(walker *fs.Walker, matcher ports.IgnoreMatcher) *Lister {
	return &Lister{walker: walker, matcher: matcher}
}

// List returns the publishable files of dir. A "files" allow-list in m selects
// files by glob; without one, .npmignore excludes files. .gitignore is only
// read when no .npmignore exists, even an empty one.
func (l *Lister) List(dir string, m *domain.Manifest) ([]string, error) {
	all, err := l.walker.ListFiles(dir, alwaysIgnored)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrListFilesFailed.Error()), "path", dir)
	}

	var keep func(rel string) bool
	if m.Files != nil {
		keep = allowList(m.Files)
	} else {
		ignored, err := l.ignoreRules(dir)
		if err != nil {
			return nil, err
		}
		keep = func(rel string) bool { return !ignored.Matches(rel) }
	}

	main := strings.TrimPrefix(path.Clean(filepath.ToSlash(m.Main)), "./")

	files := make([]string, 0, len(all))
	for _, rel := range all {
		if keep(rel) || rel == main || isAlwaysIncluded(rel) {
			files = append(files, rel)
		}
	}
	slices.Sort(files)
	return files, nil
}

func (l *Lister) ignoreRules(dir string) (ports.IgnoreRules, error) {
	for _, name := range []string{".npmignore", ".gitignore"} {
		patterns, found, err := ReadPatterns(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if found {
			return l.matcher.Compile(append(patterns, ".npmignore", ".gitignore")), nil
		}
	}
	return l.matcher.Compile([]string{".npmignore", ".gitignore"}), nil
}

// allowList matches files against the manifest "files" globs. A pattern naming
// a directory selects everything below it; "!" patterns exclude.
func allowList(patterns []string) func(string) bool {
	var include, exclude []string
	for _, p := range patterns {
		negated := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		p = strings.TrimSuffix(strings.TrimPrefix(path.Clean(p), "./"), "/")
		if negated {
			exclude = append(exclude, p)
			continue
		}
		include = append(include, p)
	}

	match := func(set []string, rel string) bool {
		for _, p := range set {
			if ok, _ := doublestar.Match(p, rel); ok {
				return true
			}
			if ok, _ := doublestar.Match(p+"/**", rel); ok {
				return true
			}
		}
		return false
	}

	return func(rel string) bool {
		return match(include, rel) && !match(exclude, rel)
	}
}

func isAlwaysIncluded(rel string) bool {
	if strings.Contains(rel, "/") {
		return false
	}
	for _, p := range alwaysIncluded {
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
	}
	return false
}
