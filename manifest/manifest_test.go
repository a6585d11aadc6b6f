package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hybridx-exchange/graph-node/manifest"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
specVersion: 0.0.4
description: Tracks bands and songs
schema:
  file: ./schema.graphql
`)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.4", m.SpecVersion)
	require.Equal(t, "Tracks bands and songs", m.Description)
	require.Equal(t, filepath.Join(filepath.Dir(path), "schema.graphql"), m.SchemaPath())
}

func TestLoadRequiresSpecVersion(t *testing.T) {
	path := writeManifest(t, `
schema:
  file: ./schema.graphql
`)

	_, err := manifest.Load(path)
	require.ErrorContains(t, err, "specVersion")
}

func TestLoadRequiresSchemaFile(t *testing.T) {
	path := writeManifest(t, `
specVersion: 0.0.4
`)

	_, err := manifest.Load(path)
	require.ErrorContains(t, err, "schema.file")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
