package api

import (
	"fmt"
	"strconv"
	"strings"
)

// PathError reports a key path segment that could not be resolved.
// Prefix is the dotted path up to and including the failing segment, so
// "foo.bar.baz" failing at "bar" reports Prefix "foo.bar".
type PathError struct {
	Prefix  string
	Segment string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot resolve %q: no key %q", e.Prefix, e.Segment)
}

// Resolve walks the specification tree along a dot-separated key path and
// returns the value at that location: an Arg, an ArgMap, a band mapping,
// or a leaf property (Unit, Type, Requirement, OptionSet, geometry list,
// string, bool). A segment immediately following "bands" is interpreted as
// an integer band number, because band collections are keyed numerically.
func Resolve(spec *ModelSpec, path string) (any, error) {
	var current any = spec.Args
	var consumed []string
	previous := ""
	for _, segment := range strings.Split(path, ".") {
		next, ok := step(current, segment, previous)
		if !ok {
			return nil, &PathError{
				Prefix:  strings.Join(append(consumed, segment), "."),
				Segment: segment,
			}
		}
		consumed = append(consumed, segment)
		previous = segment
		current = next
	}
	return current, nil
}

func step(current any, segment, previous string) (any, bool) {
	if previous == "bands" {
		if bands, ok := current.(map[int]Arg); ok {
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil, false
			}
			band, ok := bands[index]
			return band, ok
		}
	}

	switch v := current.(type) {
	case ArgMap:
		arg, ok := v.Get(segment)
		return arg, ok
	case Arg:
		return argProperty(v, segment)
	}
	return nil, false
}

// argProperty looks up a named property on an Arg: first the fields every
// variant carries, then the variant-specific ones.
func argProperty(arg Arg, key string) (any, bool) {
	switch key {
	case "type":
		return arg.TypeTag(), true
	case "name":
		return arg.Common().Name, true
	case "about":
		return arg.Common().About, true
	case "required":
		return arg.Common().Required, true
	}

	switch v := arg.(type) {
	case Number:
		switch key {
		case "units":
			return v.Units, true
		case "expression":
			return v.Expression, true
		}
	case FreestyleString:
		if key == "regexp" {
			return v.Regexp, true
		}
	case OptionString:
		if key == "options" {
			return v.Options, true
		}
	case Vector:
		switch key {
		case "geometries":
			return v.Geometries, true
		case "fields":
			return v.Fields, true
		case "projected":
			return v.Projected, true
		case "projection_units":
			return v.ProjectionUnits, true
		}
	case CSV:
		switch key {
		case "columns":
			if v.Columns != nil {
				return v.Columns, true
			}
		case "rows":
			if v.Rows != nil {
				return v.Rows, true
			}
		case "excel_ok":
			return v.ExcelOK, true
		}
	case Raster:
		if key == "bands" {
			return v.Bands, true
		}
	case Directory:
		switch key {
		case "contents":
			return v.Contents, true
		case "permissions":
			return v.Permissions, true
		case "must_exist":
			return v.MustExist, true
		}
	case File:
		switch key {
		case "permissions":
			return v.Permissions, true
		case "must_exist":
			return v.MustExist, true
		}
	}
	return nil, false
}
