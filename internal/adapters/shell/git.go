package shell

import (
	"bytes"
	"context"
	"io"
	"strings"

	"go.trai.ch/yalc/internal/core/ports"
)

var _ ports.VCS = (*Git)(nil)

// Git inspects repositories with the git binary.
type Git struct {
	executor *Executor
}

// NewGit creates a new Git.
func NewGit(executor *Executor) *Git {
	return &Git{executor: executor}
}

// StagedFiles returns the paths staged for commit, relative to the repository root.
func (g *Git) StagedFiles(ctx context.Context, dir string) ([]string, error) {
	var out bytes.Buffer
	argv := []string{"git", "diff", "--cached", "--name-only"}
	if err := g.executor.Execute(ctx, dir, argv, &out, io.Discard); err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(out.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
