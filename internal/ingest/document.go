package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/adrianvogl/investspec/api"
)

// buildSpec turns a generic parsed document (JSON or YAML) into a model
// specification. Parsed objects are Go maps, so the author's member order
// is gone; members are ordered case-insensitively by key instead, which
// at least keeps the output deterministic.
func buildSpec(doc map[string]any, source string) (*api.ModelSpec, error) {
	id, err := optionalString(doc, "id", source)
	if err != nil {
		return nil, err
	}
	title, err := optionalString(doc, "title", source)
	if err != nil {
		return nil, err
	}

	rawArgs, ok := doc["args"]
	if !ok {
		return nil, fmt.Errorf("%s: missing \"args\" object", source)
	}
	args, err := buildArgMap(rawArgs, source+": args")
	if err != nil {
		return nil, err
	}

	return &api.ModelSpec{ID: id, Title: title, Args: args}, nil
}

func buildArgMap(raw any, where string) (api.ArgMap, error) {
	object, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected an object, got %T", where, raw)
	}
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})

	args := make(api.ArgMap, 0, len(keys))
	for _, key := range keys {
		member, ok := object[key].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.%s: expected an object, got %T", where, key, object[key])
		}
		arg, err := buildArg(member, where+"."+key)
		if err != nil {
			return nil, err
		}
		args = append(args, api.ArgEntry{Key: key, Arg: arg})
	}
	return args, nil
}

func buildArg(object map[string]any, where string) (api.Arg, error) {
	typeTag, err := optionalString(object, "type", where)
	if err != nil {
		return nil, err
	}
	if typeTag == "" {
		return nil, fmt.Errorf("%s: missing \"type\"", where)
	}

	meta, err := buildMeta(object, where)
	if err != nil {
		return nil, err
	}

	switch api.Type(typeTag) {
	case api.TypeNumber:
		units, err := optionalString(object, "units", where)
		if err != nil {
			return nil, err
		}
		expression, err := optionalString(object, "expression", where)
		if err != nil {
			return nil, err
		}
		return api.Number{Meta: meta, Units: api.Unit(units), Expression: expression}, nil

	case api.TypeFreestyleString:
		regexp, err := optionalString(object, "regexp", where)
		if err != nil {
			return nil, err
		}
		return api.FreestyleString{Meta: meta, Regexp: regexp}, nil

	case api.TypeOptionString:
		options, err := buildOptions(object["options"], where+".options")
		if err != nil {
			return nil, err
		}
		return api.OptionString{Meta: meta, Options: options}, nil

	case api.TypeVector:
		geometries, err := buildGeometries(object["geometries"], where+".geometries")
		if err != nil {
			return nil, err
		}
		var fields api.ArgMap
		if raw, ok := object["fields"]; ok {
			fields, err = buildArgMap(raw, where+".fields")
			if err != nil {
				return nil, err
			}
		}
		projected, err := optionalBool(object, "projected", where)
		if err != nil {
			return nil, err
		}
		projectionUnits, err := optionalString(object, "projection_units", where)
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
		var columns, rows api.ArgMap
		if raw, ok := object["columns"]; ok {
			columns, err = buildArgMap(raw, where+".columns")
			if err != nil {
				return nil, err
			}
		}
		if raw, ok := object["rows"]; ok {
			rows, err = buildArgMap(raw, where+".rows")
			if err != nil {
				return nil, err
			}
		}
		if columns != nil && rows != nil {
			return nil, fmt.Errorf("%s: columns and rows are mutually exclusive", where)
		}
		excelOK, err := optionalBool(object, "excel_ok", where)
		if err != nil {
			return nil, err
		}
		return api.CSV{Meta: meta, Columns: columns, Rows: rows, ExcelOK: excelOK}, nil

	case api.TypeRaster:
		bands, err := buildBands(object["bands"], where+".bands")
		if err != nil {
			return nil, err
		}
		return api.Raster{Meta: meta, Bands: bands}, nil

	case api.TypeDirectory:
		var contents api.ArgMap
		if raw, ok := object["contents"]; ok {
			contents, err = buildArgMap(raw, where+".contents")
			if err != nil {
				return nil, err
			}
		}
		permissions, err := optionalString(object, "permissions", where)
		if err != nil {
			return nil, err
		}
		mustExist, err := optionalBool(object, "must_exist", where)
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
		permissions, err := optionalString(object, "permissions", where)
		if err != nil {
			return nil, err
		}
		mustExist, err := optionalBool(object, "must_exist", where)
		if err != nil {
			return nil, err
		}
		return api.File{Meta: meta, Permissions: permissions, MustExist: mustExist}, nil

	default:
		return api.Primitive{Meta: meta, Kind: api.Type(typeTag)}, nil
	}
}

func buildMeta(object map[string]any, where string) (api.Meta, error) {
	name, err := optionalString(object, "name", where)
	if err != nil {
		return api.Meta{}, err
	}
	about, err := optionalString(object, "about", where)
	if err != nil {
		return api.Meta{}, err
	}

	required := api.Requirement{}
	if raw, ok := object["required"]; ok {
		switch v := raw.(type) {
		case bool:
			if !v {
				required = api.Optional()
			}
		case string:
			required = api.RequiredIf(v)
		default:
			return api.Meta{}, fmt.Errorf(
				"%s: \"required\" must be a bool or a condition string, got %T", where, raw)
		}
	}
	return api.Meta{Name: name, About: about, Required: required}, nil
}

// buildOptions maps the document's options polymorphism onto the explicit
// variant: an array is plain options in given order; an object is
// described options, ordered case-insensitively by name.
func buildOptions(raw any, where string) (api.OptionSet, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		plain := make(api.PlainOptions, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: expected a string option, got %T", where, item)
			}
			plain = append(plain, name)
		}
		return plain, nil
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		})
		described := make(api.DescribedOptions, 0, len(names))
		for _, name := range names {
			about, ok := v[name].(string)
			if !ok {
				return nil, fmt.Errorf("%s.%s: expected a string description, got %T",
					where, name, v[name])
			}
			described = append(described, api.DescribedOption{Name: name, About: about})
		}
		return described, nil
	default:
		return nil, fmt.Errorf("%s: expected an array or object, got %T", where, raw)
	}
}

func buildGeometries(raw any, where string) ([]api.Geometry, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected an array, got %T", where, raw)
	}
	geometries := make([]api.Geometry, 0, len(list))
	for _, item := range list {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected a string geometry, got %T", where, item)
		}
		geometries = append(geometries, api.Geometry(strings.ToUpper(name)))
	}
	return geometries, nil
}

// buildBands converts an object keyed by band number. Band keys arrive as
// strings from JSON/YAML and become integers here.
func buildBands(raw any, where string) (map[int]api.Arg, error) {
	if raw == nil {
		return nil, nil
	}
	object, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected an object, got %T", where, raw)
	}
	bands := make(map[int]api.Arg, len(object))
	for key, value := range object {
		number, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%s: band key %q is not a number", where, key)
		}
		member, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.%s: expected an object, got %T", where, key, value)
		}
		arg, err := buildArg(member, where+"."+key)
		if err != nil {
			return nil, err
		}
		bands[number] = arg
	}
	return bands, nil
}

func optionalString(object map[string]any, key, where string) (string, error) {
	raw, ok := object[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: %q must be a string, got %T", where, key, raw)
	}
	return s, nil
}

func optionalBool(object map[string]any, key, where string) (bool, error) {
	raw, ok := object[key]
	if !ok {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s: %q must be a bool, got %T", where, key, raw)
	}
	return b, nil
}
