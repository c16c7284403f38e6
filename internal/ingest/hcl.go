package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adrianvogl/investspec/api"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// parseHCL decodes one model specification from HCL source. HCL is the
// primary authoring format because its block syntax preserves the order
// the author wrote the args in, which is the order they document in.
func parseHCL(src []byte, filename string) (*api.ModelSpec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse %s: unexpected body type %T", filename, file.Body)
	}

	var spec *api.ModelSpec
	for _, block := range body.Blocks {
		if block.Type != "model" {
			return nil, fmt.Errorf("%s: unexpected block %q, want \"model\"",
				block.DefRange().String(), block.Type)
		}
		if spec != nil {
			return nil, fmt.Errorf("%s: multiple model blocks in one file",
				block.DefRange().String())
		}
		if len(block.Labels) != 1 {
			return nil, fmt.Errorf("%s: model block needs exactly one label (the model id)",
				block.DefRange().String())
		}
		decoded, err := decodeModel(block)
		if err != nil {
			return nil, err
		}
		spec = decoded
	}
	if spec == nil {
		return nil, fmt.Errorf("parse %s: no model block found", filename)
	}
	return spec, nil
}

func decodeModel(block *hclsyntax.Block) (*api.ModelSpec, error) {
	title, _, err := stringAttr(block.Body, "title")
	if err != nil {
		return nil, err
	}

	var args api.ArgMap
	for _, child := range block.Body.Blocks {
		if child.Type != "arg" {
			return nil, fmt.Errorf("%s: unexpected block %q in model, want \"arg\"",
				child.DefRange().String(), child.Type)
		}
		key, arg, err := decodeKeyedArg(child)
		if err != nil {
			return nil, err
		}
		if _, exists := args.Get(key); exists {
			return nil, fmt.Errorf("%s: duplicate arg %q", child.DefRange().String(), key)
		}
		args = append(args, api.ArgEntry{Key: key, Arg: arg})
	}

	return &api.ModelSpec{
		ID:    block.Labels[0],
		Title: title,
		Args:  args,
	}, nil
}

// decodeKeyedArg decodes an arg-shaped block whose single label is its key
// in the parent mapping. The same shape serves arg, field, column, row and
// content blocks.
func decodeKeyedArg(block *hclsyntax.Block) (string, api.Arg, error) {
	if len(block.Labels) != 1 {
		return "", nil, fmt.Errorf("%s: %s block needs exactly one label (its key)",
			block.DefRange().String(), block.Type)
	}
	arg, err := decodeArg(block)
	if err != nil {
		return "", nil, err
	}
	return block.Labels[0], arg, nil
}

func decodeArg(block *hclsyntax.Block) (api.Arg, error) {
	body := block.Body
	where := block.DefRange().String()

	typeTag, ok, err := stringAttr(body, "type")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: missing required attribute \"type\"", where)
	}

	meta, err := decodeMeta(body)
	if err != nil {
		return nil, err
	}

	switch api.Type(typeTag) {
	case api.TypeNumber:
		units, _, err := stringAttr(body, "units")
		if err != nil {
			return nil, err
		}
		expression, _, err := stringAttr(body, "expression")
		if err != nil {
			return nil, err
		}
		return api.Number{Meta: meta, Units: api.Unit(units), Expression: expression}, nil

	case api.TypeFreestyleString:
		regexp, _, err := stringAttr(body, "regexp")
		if err != nil {
			return nil, err
		}
		return api.FreestyleString{Meta: meta, Regexp: regexp}, nil

	case api.TypeOptionString:
		options, err := decodeOptions(block)
		if err != nil {
			return nil, err
		}
		return api.OptionString{Meta: meta, Options: options}, nil

	case api.TypeVector:
		geometries, err := decodeGeometries(body)
		if err != nil {
			return nil, err
		}
		fields, _, err := decodeArgMap(body, "field")
		if err != nil {
			return nil, err
		}
		projected, _, err := boolAttr(body, "projected")
		if err != nil {
			return nil, err
		}
		projectionUnits, _, err := stringAttr(body, "projection_units")
		if err != nil {
			return nil, err
		}
		return api.Vector{
			Meta:            meta,
			Geometries:      geometries,
			Fields:          fields,
			Projected:       projected,
			ProjectionUnits: api.Unit(projectionUnits),
		}, nil

	case api.TypeCSV:
		columns, hasColumns, err := decodeArgMap(body, "column")
		if err != nil {
			return nil, err
		}
		rows, hasRows, err := decodeArgMap(body, "row")
		if err != nil {
			return nil, err
		}
		if hasColumns && hasRows {
			return nil, fmt.Errorf("%s: columns and rows are mutually exclusive", where)
		}
		excelOK, _, err := boolAttr(body, "excel_ok")
		if err != nil {
			return nil, err
		}
		return api.CSV{Meta: meta, Columns: columns, Rows: rows, ExcelOK: excelOK}, nil

	case api.TypeRaster:
		bands, err := decodeBands(block)
		if err != nil {
			return nil, err
		}
		return api.Raster{Meta: meta, Bands: bands}, nil

	case api.TypeDirectory:
		contents, _, err := decodeArgMap(body, "content")
		if err != nil {
			return nil, err
		}
		permissions, _, err := stringAttr(body, "permissions")
		if err != nil {
			return nil, err
		}
		mustExist, _, err := boolAttr(body, "must_exist")
		if err != nil {
			return nil, err
		}
		return api.Directory{
			Meta:        meta,
			Contents:    contents,
			Permissions: permissions,
			MustExist:   mustExist,
		}, nil

	case api.TypeFile:
		permissions, _, err := stringAttr(body, "permissions")
		if err != nil {
			return nil, err
		}
		mustExist, _, err := boolAttr(body, "must_exist")
		if err != nil {
			return nil, err
		}
		return api.File{Meta: meta, Permissions: permissions, MustExist: mustExist}, nil

	default:
		// ratio, percent, integer, boolean and any further primitive tag
		return api.Primitive{Meta: meta, Kind: api.Type(typeTag)}, nil
	}
}

func decodeMeta(body *hclsyntax.Body) (api.Meta, error) {
	name, _, err := stringAttr(body, "name")
	if err != nil {
		return api.Meta{}, err
	}
	about, _, err := stringAttr(body, "about")
	if err != nil {
		return api.Meta{}, err
	}
	required, err := requirementAttr(body)
	if err != nil {
		return api.Meta{}, err
	}
	return api.Meta{Name: name, About: about, Required: required}, nil
}

// decodeArgMap collects a body's blocks of one type (field/column/row/
// content) into an ordered mapping, preserving source order. The second
// return distinguishes "no such blocks" from an empty collection.
func decodeArgMap(body *hclsyntax.Body, blockType string) (api.ArgMap, bool, error) {
	var args api.ArgMap
	found := false
	for _, child := range body.Blocks {
		if child.Type != blockType {
			continue
		}
		found = true
		key, arg, err := decodeKeyedArg(child)
		if err != nil {
			return nil, false, err
		}
		if _, exists := args.Get(key); exists {
			return nil, false, fmt.Errorf("%s: duplicate %s %q",
				child.DefRange().String(), blockType, key)
		}
		args = append(args, api.ArgEntry{Key: key, Arg: arg})
	}
	return args, found, nil
}

// decodeOptions reads either an "options" list attribute (plain options)
// or a sequence of option "name" { about = ... } blocks (described
// options). Declaring both is ambiguous and rejected.
func decodeOptions(block *hclsyntax.Block) (api.OptionSet, error) {
	plain, hasList, err := stringListAttr(block.Body, "options")
	if err != nil {
		return nil, err
	}

	var described api.DescribedOptions
	for _, child := range block.Body.Blocks {
		if child.Type != "option" {
			continue
		}
		if len(child.Labels) != 1 {
			return nil, fmt.Errorf("%s: option block needs exactly one label (the option name)",
				child.DefRange().String())
		}
		about, _, err := stringAttr(child.Body, "about")
		if err != nil {
			return nil, err
		}
		described = append(described, api.DescribedOption{
			Name:  child.Labels[0],
			About: about,
		})
	}

	if hasList && len(described) > 0 {
		return nil, fmt.Errorf("%s: both an options list and option blocks given",
			block.DefRange().String())
	}
	if hasList {
		return api.PlainOptions(plain), nil
	}
	if len(described) > 0 {
		return described, nil
	}
	// absent: dynamically generated, undocumented
	return nil, nil
}

func decodeGeometries(body *hclsyntax.Body) ([]api.Geometry, error) {
	names, _, err := stringListAttr(body, "geometries")
	if err != nil {
		return nil, err
	}
	geometries := make([]api.Geometry, len(names))
	for i, name := range names {
		geometries[i] = api.Geometry(strings.ToUpper(name))
	}
	return geometries, nil
}

func decodeBands(block *hclsyntax.Block) (map[int]api.Arg, error) {
	bands := make(map[int]api.Arg)
	for _, child := range block.Body.Blocks {
		if child.Type != "band" {
			continue
		}
		if len(child.Labels) != 1 {
			return nil, fmt.Errorf("%s: band block needs exactly one label (the band number)",
				child.DefRange().String())
		}
		number, err := strconv.Atoi(child.Labels[0])
		if err != nil {
			return nil, fmt.Errorf("%s: band label %q is not a number",
				child.DefRange().String(), child.Labels[0])
		}
		if _, exists := bands[number]; exists {
			return nil, fmt.Errorf("%s: duplicate band %d", child.DefRange().String(), number)
		}
		arg, err := decodeArg(child)
		if err != nil {
			return nil, err
		}
		bands[number] = arg
	}
	return bands, nil
}

// ----- attribute helpers -----

func stringAttr(body *hclsyntax.Body, name string) (string, bool, error) {
	attr, ok := body.Attributes[name]
	if !ok {
		return "", false, nil
	}
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", false, fmt.Errorf("evaluate %q: %w", name, diags)
	}
	if value.Type() != cty.String {
		return "", false, fmt.Errorf("%s: attribute %q must be a string",
			attr.SrcRange.String(), name)
	}
	return value.AsString(), true, nil
}

func boolAttr(body *hclsyntax.Body, name string) (bool, bool, error) {
	attr, ok := body.Attributes[name]
	if !ok {
		return false, false, nil
	}
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return false, false, fmt.Errorf("evaluate %q: %w", name, diags)
	}
	if value.Type() != cty.Bool {
		return false, false, fmt.Errorf("%s: attribute %q must be a bool",
			attr.SrcRange.String(), name)
	}
	return value.True(), true, nil
}

func stringListAttr(body *hclsyntax.Body, name string) ([]string, bool, error) {
	attr, ok := body.Attributes[name]
	if !ok {
		return nil, false, nil
	}
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, false, fmt.Errorf("evaluate %q: %w", name, diags)
	}
	if !value.Type().IsTupleType() && !value.Type().IsListType() {
		return nil, false, fmt.Errorf("%s: attribute %q must be a list of strings",
			attr.SrcRange.String(), name)
	}
	var items []string
	for _, element := range value.AsValueSlice() {
		if element.Type() != cty.String {
			return nil, false, fmt.Errorf("%s: attribute %q must contain only strings",
				attr.SrcRange.String(), name)
		}
		items = append(items, element.AsString())
	}
	return items, true, nil
}

// requirementAttr accepts a bool (required/optional) or a string (the
// narrative condition for conditional requirement). Absence means
// required.
func requirementAttr(body *hclsyntax.Body) (api.Requirement, error) {
	attr, ok := body.Attributes["required"]
	if !ok {
		return api.Requirement{}, nil
	}
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return api.Requirement{}, fmt.Errorf("evaluate \"required\": %w", diags)
	}
	switch value.Type() {
	case cty.Bool:
		if value.True() {
			return api.Requirement{}, nil
		}
		return api.Optional(), nil
	case cty.String:
		return api.RequiredIf(value.AsString()), nil
	default:
		return api.Requirement{}, fmt.Errorf(
			"%s: \"required\" must be a bool or a condition string", attr.SrcRange.String())
	}
}
