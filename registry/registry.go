// Package registry provides an in-memory subgraph registry implementing the
// schema lookup capability of the import resolver. The serving process backs
// the capability with its real store; the registry stands in for it in tests
// and tooling.
package registry

import (
	"context"
	"sync"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/hybridx-exchange/graph-node/schema"
)

// Registry maps deployment ids to their input schemas. Safe for concurrent
// use.
type Registry struct {
	logger *zap.Logger

	mu        sync.RWMutex
	schemas   map[schema.DeploymentID]*schema.Schema
	announced map[schema.DeploymentID]bool
}

// New returns an empty registry. A nil logger disables logging.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger:    logger,
		schemas:   map[schema.DeploymentID]*schema.Schema{},
		announced: map[schema.DeploymentID]bool{},
	}
}

// Register stores a deployment's schema and returns its deployment id. A
// schema without an id is assigned a generated one.
func (r *Registry) Register(s *schema.Schema) schema.DeploymentID {
	id := s.ID
	if id == "" {
		id = schema.DeploymentID(ksuid.New().String())
		copied := *s
		copied.ID = id
		s = &copied
	}

	r.mu.Lock()
	r.schemas[id] = s
	r.announced[id] = true
	r.mu.Unlock()

	r.logger.Info("registered subgraph schema", zap.String("deployment", id.String()))
	return id
}

// Announce records a deployment id without a schema, as for a subgraph that
// is known but was never indexed. Lookups for it fail with
// schema.ErrSubgraphNotDeployed.
func (r *Registry) Announce(id schema.DeploymentID) {
	r.mu.Lock()
	r.announced[id] = true
	r.mu.Unlock()
}

// InputSchema implements schema.SubgraphStore.
func (r *Registry) InputSchema(ctx context.Context, id schema.DeploymentID) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	s, ok := r.schemas[id]
	announced := r.announced[id]
	r.mu.RUnlock()

	switch {
	case ok:
		return s, nil
	case announced:
		return nil, schema.ErrSubgraphNotDeployed
	default:
		return nil, schema.ErrSchemaNotFound
	}
}

var _ schema.SubgraphStore = (*Registry)(nil)
