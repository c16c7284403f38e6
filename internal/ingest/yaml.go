package ingest

import (
	"fmt"

	"github.com/adrianvogl/investspec/api"
	"gopkg.in/yaml.v3"
)

// parseYAML decodes one model specification from a YAML document. YAML
// mappings unmarshal to the same generic maps JSON produces, so both
// formats share one builder.
func parseYAML(src []byte, filename string) (*api.ModelSpec, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return buildSpec(doc, filename)
}
