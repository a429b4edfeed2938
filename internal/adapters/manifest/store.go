// Package manifest reads and edits package.json documents without disturbing
// fields it does not know about.
package manifest

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

const defaultIndent = "  "

// Store implements ports.ManifestStore on raw JSON documents.
type Store struct{}

// NewStore creates a new manifest Store.
func NewStore() *Store {
	return &Store{}
}

// Read parses dir/package.json.
func (s *Store) Read(dir string) (*domain.Manifest, error) {
	path := filepath.Join(dir, domain.ManifestFileName)
	//nolint:gosec // Path is constructed from a project directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return m, nil
}

// Edit applies edits to a copy of the document of m.
func (s *Store) Edit(m *domain.Manifest, edits ...domain.ManifestEdit) (*domain.Manifest, error) {
	raw := slices.Clone(m.Raw)

	for _, edit := range edits {
		path := JSONPath(edit.Path...)

		var err error
		if edit.Delete {
			raw, err = sjson.DeleteBytes(raw, path)
		} else {
			raw, err = sjson.SetBytes(raw, path, edit.Value)
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestEditFailed.Error()), "field", strings.Join(edit.Path, "."))
		}
	}

	return Parse(raw)
}

// Write persists m into dir, re-indented the way the document was indented.
func (s *Store) Write(dir string, m *domain.Manifest) error {
	path := filepath.Join(dir, domain.ManifestFileName)

	data := pretty.PrettyOptions(m.Raw, &pretty.Options{
		Indent:   detectIndent(m.Raw),
		SortKeys: false,
	})

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // Path is constructed from a project directory
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// Parse builds a Manifest view over data.
func Parse(data []byte) (*domain.Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, domain.ErrManifestParseFailed
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, domain.ErrManifestParseFailed
	}

	m := &domain.Manifest{
		Name:             doc.Get("name").String(),
		Version:          doc.Get("version").String(),
		Main:             doc.Get("main").String(),
		Private:          doc.Get("private").Bool(),
		HasWorkspaces:    doc.Get("workspaces").Exists(),
		Dependencies:     stringMap(doc.Get(string(domain.BucketDependencies))),
		DevDependencies:  stringMap(doc.Get(string(domain.BucketDevDependencies))),
		PeerDependencies: stringMap(doc.Get(string(domain.BucketPeerDependencies))),
		Scripts:          stringMap(doc.Get("scripts")),
		Signature:        doc.Get("yalcSig").String(),
		Raw:              data,
	}

	switch bin := doc.Get("bin"); {
	case bin.Type == gjson.String:
		m.Bin = map[string]string{domain.UnscopedName(m.Name): bin.String()}
	case bin.IsObject():
		m.Bin = stringMap(bin)
	}

	if files := doc.Get("files"); files.IsArray() {
		m.Files = []string{}
		for _, f := range files.Array() {
			m.Files = append(m.Files, f.String())
		}
	}

	return m, nil
}

func stringMap(r gjson.Result) map[string]string {
	if !r.IsObject() {
		return nil
	}
	out := map[string]string{}
	r.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}

// JSONPath joins literal keys into a gjson/sjson path.
func JSONPath(keys ...string) string {
	escaped := make([]string, len(keys))
	for i, key := range keys {
		var b strings.Builder
		for _, r := range key {
			switch r {
			case '\\', '.', '*', '?', '@', '#', '|', '!':
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		escaped[i] = b.String()
	}
	return strings.Join(escaped, ".")
}

// detectIndent returns the whitespace used before the first nested key.
func detectIndent(data []byte) string {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return defaultIndent
	}
	line := data[i+1:]
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	if n == 0 {
		return defaultIndent
	}
	return string(line[:n])
}
