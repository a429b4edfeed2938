package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/core/ports"
)

const (
	// ExecutorNodeID is the unique identifier for the executor Graft node.
	ExecutorNodeID graft.ID = "adapter.shell.executor"
	// RunnerNodeID is the unique identifier for the script runner Graft node.
	RunnerNodeID graft.ID = "adapter.shell.runner"
	// GitNodeID is the unique identifier for the git Graft node.
	GitNodeID graft.ID = "adapter.shell.git"
)

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Executor, error) {
			return NewExecutor(), nil
		},
	})

	graft.Register(graft.Node[ports.ScriptRunner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ExecutorNodeID},
		Run: func(ctx context.Context) (ports.ScriptRunner, error) {
			executor, err := graft.Dep[*Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(executor), nil
		},
	})

	graft.Register(graft.Node[ports.VCS]{
		ID:        GitNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ExecutorNodeID},
		Run: func(ctx context.Context) (ports.VCS, error) {
			executor, err := graft.Dep[*Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewGit(executor), nil
		},
	})
}
