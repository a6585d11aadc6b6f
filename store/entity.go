package store

import "fmt"

// EntityType names an object type from a subgraph schema that entities are
// stored under.
type EntityType string

func (t EntityType) String() string { return string(t) }

// EntityKey uniquely identifies one entity within a deployment's store.
type EntityKey struct {
	EntityType EntityType
	EntityID   string
}

func (k EntityKey) String() string {
	return fmt.Sprintf("%s[%s]", k.EntityType, k.EntityID)
}
