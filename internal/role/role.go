// Package role implements the text-substitution entry point a host
// documentation build invokes: given "<module-ref> [<dotted-key-path>]"
// it resolves the model specification, formats the requested part, and
// returns embeddable document nodes.
package role

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adrianvogl/investspec/api"
	"github.com/adrianvogl/investspec/internal/markup"
	"github.com/adrianvogl/investspec/internal/render"
	"github.com/yuin/goldmark/ast"
)

// LookupFunc resolves a module reference to its specification tree. The
// module system behind it is the host's business; tests inject a stub.
type LookupFunc func(ref string) (*api.ModelSpec, error)

// Diagnostic is a non-fatal message surfaced alongside the produced
// nodes, following the host's node+diagnostics invocation convention.
type Diagnostic struct {
	Message string
	Line    int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Role is the configured entry point.
type Role struct {
	// Prefix is an optional module-name prefix applied to every module
	// reference. Empty by default.
	Prefix string
	// Lookup resolves module references to specification trees.
	Lookup LookupFunc
}

// Run renders the invocation text and parses the result into embeddable
// document nodes. A failure to resolve the module reference or key path
// is a build-time error carrying the source line number; it is never
// silently skipped, since that would ship incomplete documentation.
func (r *Role) Run(text string, lineno int) ([]ast.Node, []Diagnostic, error) {
	source, err := r.Render(text, lineno)
	if err != nil {
		return nil, nil, err
	}
	return markup.Parse([]byte(source)), nil, nil
}

// Render produces the Markdown text for an invocation without parsing it.
// The CLI prints this form directly.
func (r *Role) Render(text string, lineno int) (string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return "", fmt.Errorf(
			"line %d: expected 1 or 2 space-separated arguments, got %q", lineno, text)
	}

	ref := fields[0]
	if r.Prefix != "" {
		ref = r.Prefix + "." + ref
	}
	if r.Lookup == nil {
		return "", fmt.Errorf("line %d: no module lookup configured", lineno)
	}
	spec, err := r.Lookup(ref)
	if err != nil {
		return "", fmt.Errorf("line %d: cannot resolve module %q: %w", lineno, ref, err)
	}

	if len(fields) == 1 {
		lines, err := render.Args(spec.Args)
		if err != nil {
			return "", fmt.Errorf("line %d: module %q: %w", lineno, ref, err)
		}
		return strings.Join(lines, "\n\n"), nil
	}

	path := fields[1]
	value, err := api.Resolve(spec, path)
	if err != nil {
		return "", fmt.Errorf("line %d: module %q: %w", lineno, ref, err)
	}
	rendered, err := renderValue(path, value)
	if err != nil {
		return "", fmt.Errorf("line %d: module %q path %q: %w", lineno, ref, path, err)
	}
	return rendered, nil
}

// renderValue formats whatever a key path resolved to. A specification
// node gets the full arg treatment; leaf properties go through their
// dedicated formatter; any remaining scalar renders as its plain string
// form.
func renderValue(path string, value any) (string, error) {
	lastSegment := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		lastSegment = path[i+1:]
	}

	// an undocumented option set resolves to a nil value
	if value == nil {
		return "", nil
	}

	switch v := value.(type) {
	case api.Unit:
		return render.Units(v), nil
	case api.Type:
		return render.TypeLink(v), nil
	case []api.Geometry:
		return render.Geometries(v)
	case api.Requirement:
		return render.Required(v), nil
	case api.OptionSet:
		return strings.Join(render.Options(v), "\n\n"), nil
	case api.ArgMap:
		lines, err := render.Args(v)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n\n"), nil
	case api.Arg:
		name := v.Common().Name
		if name == "" {
			name = lastSegment
		}
		lines, err := render.Arg(name, v)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n\n"), nil
	case string:
		// permissions is the one string-typed property with a dedicated
		// formatter
		if lastSegment == "permissions" {
			return render.Permissions(v), nil
		}
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}
