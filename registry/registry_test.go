package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hybridx-exchange/graph-node/registry"
	"github.com/hybridx-exchange/graph-node/schema"
)

func TestRegisterAndLookup(t *testing.T) {
	r := registry.New(nil)
	s, err := schema.Parse("type Band { id: ID! }", "Qmband")
	require.NoError(t, err)

	id := r.Register(s)
	require.Equal(t, schema.DeploymentID("Qmband"), id)

	got, err := r.InputSchema(context.Background(), id)
	require.NoError(t, err)
	require.Same(t, s, got)
}

func TestRegisterAssignsID(t *testing.T) {
	r := registry.New(nil)
	s, err := schema.Parse("type Band { id: ID! }", "")
	require.NoError(t, err)

	id := r.Register(s)
	require.NotEmpty(t, id)

	got, err := r.InputSchema(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
}

func TestLookupFailureKinds(t *testing.T) {
	r := registry.New(nil)
	r.Announce("announced")

	_, err := r.InputSchema(context.Background(), "announced")
	require.ErrorIs(t, err, schema.ErrSubgraphNotDeployed)

	_, err = r.InputSchema(context.Background(), "unknown")
	require.ErrorIs(t, err, schema.ErrSchemaNotFound)
}

func TestLookupHonoursContext(t *testing.T) {
	r := registry.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.InputSchema(ctx, "any")
	require.True(t, errors.Is(err, context.Canceled))
}
