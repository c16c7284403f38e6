package ingest

import (
	"fmt"

	"github.com/adrianvogl/investspec/api"
	"github.com/ohler55/ojg/oj"
)

// parseJSON decodes one model specification from a JSON document of the
// same shape as the HCL format: id, title, and an args object.
func parseJSON(src []byte, filename string) (*api.ModelSpec, error) {
	parsed, err := oj.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	doc, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse %s: expected a top-level object, got %T", filename, parsed)
	}
	return buildSpec(doc, filename)
}
