// Package ingest loads model specification files from disk. Three
// authoring formats are supported: HCL (primary, order-preserving), JSON
// and YAML. A Registry over a spec directory implements the module lookup
// the documentation role needs.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrianvogl/investspec/api"
)

// ErrUnknownModel is returned by Registry.Lookup for an unregistered
// model reference.
var ErrUnknownModel = errors.New("unknown model")

// LoadFile loads one model specification, dispatching on file extension.
func LoadFile(path string) (*api.ModelSpec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	switch filepath.Ext(path) {
	case ".hcl":
		return parseHCL(src, path)
	case ".json":
		return parseJSON(src, path)
	case ".yaml", ".yml":
		return parseYAML(src, path)
	default:
		return nil, fmt.Errorf("load %s: unsupported spec format %q", path, filepath.Ext(path))
	}
}

// Registry holds the loaded specifications of one documentation build,
// keyed by model id.
type Registry struct {
	specs map[string]*api.ModelSpec
}

// LoadDir loads every spec file in a directory into a Registry. Files
// with other extensions are ignored. A model id claimed by two files is
// an error rather than a silent overwrite.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read spec dir: %w", err)
	}

	registry := &Registry{specs: make(map[string]*api.ModelSpec)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".hcl", ".json", ".yaml", ".yml":
		default:
			continue
		}
		path := filepath.Join(dir, entry.Name())
		spec, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if spec.ID == "" {
			// fall back to the file name, minus extension and a
			// conventional .spec suffix
			base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			spec.ID = strings.TrimSuffix(base, ".spec")
		}
		if existing, ok := registry.specs[spec.ID]; ok && existing != nil {
			return nil, fmt.Errorf("load %s: model %q already registered", path, spec.ID)
		}
		registry.specs[spec.ID] = spec
	}
	return registry, nil
}

// Lookup resolves a model reference, satisfying the role's collaborator
// contract.
func (r *Registry) Lookup(ref string) (*api.ModelSpec, error) {
	spec, ok := r.specs[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, ref)
	}
	return spec, nil
}

// IDs returns the registered model ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the spec for one model id.
func (r *Registry) Get(id string) (*api.ModelSpec, bool) {
	spec, ok := r.specs[id]
	return spec, ok
}
