package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the tracer Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[*OTelTracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*OTelTracer, error) {
			return NewOTelTracer(), nil
		},
	})
}
