package render

import (
	"fmt"
	"strings"

	"github.com/adrianvogl/investspec/api"
)

// csvSampleNote is appended when a CSV documents neither columns nor rows.
const csvSampleNote = " Please see the sample data table for details on the format."

// Arg formats one specification node as Markdown lines. The first line
// carries the name, the parenthetical annotations, and the description;
// detail lines follow, indented one tab: the option list of an option
// string, and the nested members of a container (a vector's fields, a
// CSV's columns or rows, a directory's contents) as a labeled sub-list.
// Nesting recurses, each level one tab deeper.
func Arg(name string, arg api.Arg) ([]string, error) {
	annotations := []string{TypeLink(arg.TypeTag())}

	// Numbers carry units directly; a raster is described by band 1 when
	// that band is itself a number. Other bands are not consulted.
	var units api.Unit
	switch v := arg.(type) {
	case api.Number:
		units = v.Units
	case api.Raster:
		if band, ok := v.Bands[1]; ok {
			if number, ok := band.(api.Number); ok {
				units = number.Units
			}
		}
	}
	if s := Units(units); s != "" {
		annotations = append(annotations, "units: "+s)
	}

	if vector, ok := arg.(api.Vector); ok && len(vector.Geometries) > 0 {
		geometries, err := Geometries(vector.Geometries)
		if err != nil {
			return nil, fmt.Errorf("arg %q: %w", name, err)
		}
		annotations = append(annotations, geometries)
	}

	// A boolean renders as a checkbox, so required/optional says nothing.
	if arg.TypeTag() != api.TypeBoolean {
		annotations = append(annotations, Required(arg.Common().Required))
	}

	first := fmt.Sprintf("**%s** (%s)", name, strings.Join(annotations, ", "))
	if about := arg.Common().About; about != "" {
		first += ": " + about
	}

	var details []string
	switch v := arg.(type) {
	case api.OptionString:
		// An empty set means the options are generated at runtime and
		// cannot be listed here.
		if v.Options != nil && !v.Options.Empty() {
			switch options := v.Options.(type) {
			case api.DescribedOptions:
				details = append(details, "Options:")
				details = append(details, Options(options)...)
			case api.PlainOptions:
				details = append(details, "Options: "+Options(options)[0])
			}
		}
	case api.Vector:
		if len(v.Fields) > 0 {
			nested, err := nestedBlock("Fields:", v.Fields, name)
			if err != nil {
				return nil, err
			}
			details = append(details, nested...)
		}
	case api.CSV:
		switch {
		case v.Columns != nil:
			nested, err := nestedBlock("Columns:", v.Columns, name)
			if err != nil {
				return nil, err
			}
			details = append(details, nested...)
		case v.Rows != nil:
			nested, err := nestedBlock("Rows:", v.Rows, name)
			if err != nil {
				return nil, err
			}
			details = append(details, nested...)
		default:
			first += csvSampleNote
		}
	case api.Directory:
		if len(v.Contents) > 0 {
			nested, err := nestedBlock("Contents:", v.Contents, name)
			if err != nil {
				return nil, err
			}
			details = append(details, nested...)
		}
	}

	lines := make([]string, 0, 1+len(details))
	lines = append(lines, first)
	for _, detail := range details {
		lines = append(lines, "\t"+detail)
	}
	return lines, nil
}

// nestedBlock formats a container's members under a label. The extra tab
// per level comes from the caller's detail indent.
func nestedBlock(label string, members api.ArgMap, name string) ([]string, error) {
	nested, err := Args(members)
	if err != nil {
		return nil, fmt.Errorf("arg %q: %w", name, err)
	}
	return append([]string{label}, nested...), nil
}

// Args formats an ordered mapping of specification nodes as a bulleted
// list: each entry is formatted under its display name and its first line
// gets a leading dash. This is how a whole model's inputs, a CSV's
// columns or rows, a vector's fields, and a directory's contents are all
// documented.
func Args(args api.ArgMap) ([]string, error) {
	var lines []string
	for _, entry := range args {
		nested, err := Arg(entry.DisplayName(), entry.Arg)
		if err != nil {
			return nil, err
		}
		nested[0] = "- " + nested[0]
		lines = append(lines, nested...)
	}
	return lines, nil
}
