// Package npm implements the npm ecosystem conventions: which files a package
// publishes, how ignore files are matched and which package manager a project uses.
package npm

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.IgnoreMatcher = (*Matcher)(nil)

// Matcher compiles gitignore-style pattern sets.
type Matcher struct{}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Compile builds rules from patterns. Blank lines and comments are ignored.
func (m *Matcher) Compile(patterns []string) ports.IgnoreRules {
	return &rules{gi: ignore.CompileIgnoreLines(patterns...)}
}

type rules struct {
	gi *ignore.GitIgnore
}

func (r *rules) Matches(relPath string) bool {
	return r.gi.MatchesPath(relPath)
}

// ReadPatterns reads an ignore file into lines. found is false when the file
// does not exist; an existing empty file is found with no patterns.
func ReadPatterns(path string) (patterns []string, found bool, err error) {
	//nolint:gosec // Path is constructed from a project directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrIgnoreFileReadFailed.Error()), "path", path)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, true, nil
}
