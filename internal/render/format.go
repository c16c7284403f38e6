// Package render turns specification nodes into Markdown text. Every
// function is pure: same input, same lines, no shared state.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrianvogl/investspec/api"
)

// inputTypesPage is the shared reference page all type links point into.
const inputTypesPage = "input_types.html"

// geometryOrder is the fixed display order for accepted geometries.
var geometryOrder = []api.Geometry{
	api.Point,
	api.MultiPoint,
	api.LineString,
	api.MultiLineString,
	api.Polygon,
	api.MultiPolygon,
}

// irregular plural forms for the leading unit word
var unitPlurals = map[string]string{
	"foot":           "feet",
	"degree_Celsius": "degrees_Celsius",
}

// TypeLink formats a type tag as a link into the input types reference
// page. Some tags get a friendlier display name than their identifier.
func TypeLink(tag api.Type) string {
	label, anchor := string(tag), string(tag)
	switch tag {
	case api.TypeFreestyleString:
		label, anchor = "text", "text"
	case api.TypeOptionString:
		label, anchor = "option", "option"
	case api.TypeBoolean:
		label, anchor = "true/false", "truefalse"
	case api.TypeCSV:
		label, anchor = "CSV", "csv"
	}
	return fmt.Sprintf("[%s](%s#%s)", label, inputTypesPage, anchor)
}

// TypeLinks formats a set of alternative type tags, sorted so the output
// is stable, joined with " or ".
func TypeLinks(tags []api.Type) string {
	sorted := make([]api.Type, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	links := make([]string, len(sorted))
	for i, tag := range sorted {
		links[i] = TypeLink(tag)
	}
	return strings.Join(links, " or ")
}

// Units formats a unit descriptor as a human phrase: the first unit word
// is pluralized so the sentence reads naturally, word separators become
// spaces, exponents become carets, and division loses its surrounding
// spaces. A dimensionless descriptor formats to the empty string.
func Units(u api.Unit) string {
	if u.IsNone() {
		return ""
	}
	words := strings.Split(string(u), " ")
	if plural, ok := unitPlurals[words[0]]; ok {
		words[0] = plural
	} else {
		words[0] += "s"
	}
	s := strings.Join(words, " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, " ** ", "^")
	s = strings.ReplaceAll(s, " / ", "/")
	return s
}

// Required formats the tri-state required status. The condition of a
// conditionally required arg is assumed to be explained by its about
// text, so it is not repeated here.
func Required(r api.Requirement) string {
	switch {
	case r.IsOptional():
		return "optional"
	case r.IsConditional():
		return "conditionally required"
	default:
		return "required"
	}
}

// Geometries formats a set of accepted geometries in canonical order,
// lower-cased and slash-joined. A geometry outside the canonical order is
// a contract violation and fails rather than sorting arbitrarily.
func Geometries(geometries []api.Geometry) (string, error) {
	ranks := make(map[api.Geometry]int, len(geometryOrder))
	for i, g := range geometryOrder {
		ranks[g] = i
	}
	sorted := make([]api.Geometry, len(geometries))
	copy(sorted, geometries)
	for _, g := range sorted {
		if _, ok := ranks[g]; !ok {
			return "", fmt.Errorf("unknown geometry %q", g)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return ranks[sorted[i]] < ranks[sorted[j]] })

	names := make([]string, len(sorted))
	for i, g := range sorted {
		names[i] = strings.ToLower(string(g))
	}
	return strings.Join(names, "/"), nil
}

// Permissions expands an "rwx"-subset string to full words, always in
// read, write, execute order.
func Permissions(permissions string) string {
	var words []string
	for _, p := range []struct {
		letter string
		word   string
	}{{"r", "read"}, {"w", "write"}, {"x", "execute"}} {
		if strings.Contains(permissions, p.letter) {
			words = append(words, p.word)
		}
	}
	return strings.Join(words, ", ")
}

// Options formats a permitted-values collection. Described options become
// one bullet line each, sorted case-insensitively by name; plain options
// become a single comma-joined line in their given order.
func Options(options api.OptionSet) []string {
	switch o := options.(type) {
	case api.DescribedOptions:
		sorted := make(api.DescribedOptions, len(o))
		copy(sorted, o)
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
		lines := make([]string, len(sorted))
		for i, opt := range sorted {
			lines[i] = fmt.Sprintf("- %s: %s", opt.Name, opt.About)
		}
		return lines
	case api.PlainOptions:
		return []string{strings.Join(o, ", ")}
	}
	return nil
}

// linking words stay lower-case in titles
var titleLowercase = map[string]bool{
	"of":  true,
	"the": true,
}

// Title capitalizes each word of a display name except linking words.
// Words are bounded by spaces and forward slashes, so "a/b of c" becomes
// "A/B of C".
func Title(name string) string {
	words := strings.Split(name, " ")
	for i, word := range words {
		parts := strings.Split(word, "/")
		for j, part := range parts {
			if titleLowercase[part] || part == "" {
				continue
			}
			parts[j] = strings.ToUpper(part[:1]) + part[1:]
		}
		words[i] = strings.Join(parts, "/")
	}
	return strings.Join(words, " ")
}
