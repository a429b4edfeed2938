package npm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/fs"
	"go.trai.ch/yalc/internal/core/ports"
)

const (
	// MatcherNodeID is the unique identifier for the ignore matcher Graft node.
	MatcherNodeID graft.ID = "adapter.npm.matcher"
	// ListerNodeID is the unique identifier for the file lister Graft node.
	ListerNodeID graft.ID = "adapter.npm.lister"
	// DetectorNodeID is the unique identifier for the package manager detector Graft node.
	DetectorNodeID graft.ID = "adapter.npm.detector"
)

func init() {
	graft.Register(graft.Node[ports.IgnoreMatcher]{
		ID:        MatcherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.IgnoreMatcher, error) {
			return NewMatcher(), nil
		},
	})

	graft.Register(graft.Node[ports.FileLister]{
		ID:        ListerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, MatcherNodeID},
		Run: func(ctx context.Context) (ports.FileLister, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			matcher, err := graft.Dep[ports.IgnoreMatcher](ctx)
			if err != nil {
				return nil, err
			}
			return NewLister(walker, matcher), nil
		},
	})

	graft.Register(graft.Node[ports.PackageManagerDetector]{
		ID:        DetectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageManagerDetector, error) {
			return NewDetector(), nil
		},
	})
}
