package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "carbon.spec.hcl", `
model "carbon" {
  title = "carbon storage"

  arg "n" {
    type  = "number"
    units = "meter"
    about = "A number."
  }
}
`)
	writeSpec(t, dir, "fisheries.json",
		`{"id": "fisheries", "args": {"a": {"type": "ratio", "about": "x"}}}`)
	writeSpec(t, dir, "recreation.yaml", `
args:
  b:
    type: percent
    about: y
`)
	writeSpec(t, dir, "notes.txt", "not a spec")

	registry, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"carbon", "fisheries", "recreation"}, registry.IDs())

	t.Run("lookup resolves a registered model", func(t *testing.T) {
		spec, err := registry.Lookup("carbon")
		require.NoError(t, err)
		assert.Equal(t, "carbon storage", spec.Title)
	})

	t.Run("lookup fails for an unknown model", func(t *testing.T) {
		_, err := registry.Lookup("nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownModel)
	})

	t.Run("id falls back to the file name", func(t *testing.T) {
		// recreation.yaml has no id of its own
		spec, err := registry.Lookup("recreation")
		require.NoError(t, err)
		require.Len(t, spec.Args, 1)
	})
}

func TestLoadDirDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "a.hcl", `
model "m" {
  arg "x" {
    type = "ratio"
  }
}
`)
	writeSpec(t, dir, "b.hcl", `
model "m" {
  arg "y" {
    type = "ratio"
  }
}
`)
	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "spec.toml", "x = 1")
	_, err := LoadFile(filepath.Join(dir, "spec.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported spec format")
}
