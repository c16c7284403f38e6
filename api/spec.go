// Package api defines the model input specification tree: the data model
// shared between spec file loaders, the formatters, and the documentation
// role. A specification describes every input a scientific model accepts —
// its type, units, required state, permitted options, and nested structure.
package api

// Type is the discriminator tag carried by every Arg.
type Type string

const (
	TypeNumber          Type = "number"
	TypeRatio           Type = "ratio"
	TypePercent         Type = "percent"
	TypeInteger         Type = "integer"
	TypeBoolean         Type = "boolean"
	TypeFreestyleString Type = "freestyle_string"
	TypeOptionString    Type = "option_string"
	TypeCSV             Type = "csv"
	TypeVector          Type = "vector"
	TypeRaster          Type = "raster"
	TypeDirectory       Type = "directory"
	TypeFile            Type = "file"
)

// Unit is a physical-unit descriptor in pint notation: underscore-separated
// words, " ** " exponents, " / " division (e.g. "cubic_meter / month").
type Unit string

// NoUnits marks a dimensionless quantity. It renders as nothing.
const NoUnits Unit = "none"

// IsNone reports whether the descriptor carries no displayable unit.
func (u Unit) IsNone() bool {
	return u == "" || u == NoUnits
}

// Requirement is the tri-state required/optional/conditional status of an
// arg. The zero value means required, matching specs that omit the field.
type Requirement struct {
	kind      reqKind
	condition string
}

type reqKind int

const (
	reqAlways reqKind = iota
	reqOptional
	reqConditional
)

// Optional returns the Requirement for an explicitly optional arg.
func Optional() Requirement {
	return Requirement{kind: reqOptional}
}

// RequiredIf returns a conditional Requirement. The condition is narrative
// text; it is carried for reference but never evaluated.
func RequiredIf(condition string) Requirement {
	return Requirement{kind: reqConditional, condition: condition}
}

// IsOptional reports whether the arg was explicitly marked optional.
func (r Requirement) IsOptional() bool { return r.kind == reqOptional }

// IsConditional reports whether the arg is required only under a condition.
func (r Requirement) IsConditional() bool { return r.kind == reqConditional }

// Condition returns the narrative condition text, empty unless conditional.
func (r Requirement) Condition() string { return r.condition }

// Geometry classifies the feature shape a vector input accepts.
type Geometry string

const (
	Point           Geometry = "POINT"
	MultiPoint      Geometry = "MULTIPOINT"
	LineString      Geometry = "LINESTRING"
	MultiLineString Geometry = "MULTILINESTRING"
	Polygon         Geometry = "POLYGON"
	MultiPolygon    Geometry = "MULTIPOLYGON"
)

// OptionSet is the permitted-values collection of an option_string arg.
// It is either DescribedOptions (name and description per option) or
// PlainOptions (names only). A nil or empty set means the options are
// generated dynamically and cannot be documented.
type OptionSet interface {
	Empty() bool
	optionSet()
}

// DescribedOption is one documented permitted value.
type DescribedOption struct {
	Name  string
	About string
}

// DescribedOptions is an ordered collection of documented options.
type DescribedOptions []DescribedOption

func (o DescribedOptions) Empty() bool { return len(o) == 0 }
func (DescribedOptions) optionSet()    {}

// PlainOptions is an ordered collection of option names without
// descriptions.
type PlainOptions []string

func (o PlainOptions) Empty() bool { return len(o) == 0 }
func (PlainOptions) optionSet()    {}

// Meta holds the fields every Arg may carry.
type Meta struct {
	// Name is the display label. Empty means the arg goes by its key in
	// the parent mapping.
	Name string
	// About is the free-text description.
	About string
	// Required is the tri-state required status. Zero value = required.
	Required Requirement
}

// Common implements the shared part of the Arg interface for every
// variant that embeds Meta.
func (m Meta) Common() Meta { return m }

// Arg is one node in the specification tree: a model input or a nested
// sub-field. Exactly one variant exists per type tag. Nodes are built by
// the spec owner and never mutated afterwards.
type Arg interface {
	TypeTag() Type
	Common() Meta
}

// ArgEntry is one keyed member of an ArgMap.
type ArgEntry struct {
	Key string
	Arg Arg
}

// DisplayName resolves the label to document the entry under: the arg's
// own Name if set, else its key in the parent mapping.
func (e ArgEntry) DisplayName() string {
	if n := e.Arg.Common().Name; n != "" {
		return n
	}
	return e.Key
}

// ArgMap is an ordered mapping of unique keys to nested Args. Order is
// whatever the spec author wrote, so formatting it is deterministic.
type ArgMap []ArgEntry

// Get returns the arg stored under key.
func (m ArgMap) Get(key string) (Arg, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Arg, true
		}
	}
	return nil, false
}

// Number is a quantity with units, optionally bounded by a narrative
// expression such as "value >= 0".
type Number struct {
	Meta
	Units      Unit
	Expression string
}

func (Number) TypeTag() Type { return TypeNumber }

// Primitive covers the scalar tags that carry no type-specific fields:
// ratio, percent, integer, boolean, and any further primitive tag.
type Primitive struct {
	Meta
	Kind Type
}

func (p Primitive) TypeTag() Type { return p.Kind }

// FreestyleString is unconstrained text, optionally matched by a regexp.
type FreestyleString struct {
	Meta
	Regexp string
}

func (FreestyleString) TypeTag() Type { return TypeFreestyleString }

// OptionString restricts input to a fixed set of values.
type OptionString struct {
	Meta
	Options OptionSet
}

func (OptionString) TypeTag() Type { return TypeOptionString }

// Vector is a GIS vector input with accepted geometries and per-feature
// fields.
type Vector struct {
	Meta
	Geometries      []Geometry
	Fields          ArgMap
	Projected       bool
	ProjectionUnits Unit
}

func (Vector) TypeTag() Type { return TypeVector }

// CSV is a tabular input. Columns and Rows are mutually exclusive; when
// both are absent the table layout is documented by sample data instead.
type CSV struct {
	Meta
	Columns ArgMap
	Rows    ArgMap
	ExcelOK bool
}

func (CSV) TypeTag() Type { return TypeCSV }

// Raster is a GIS raster input. Bands are keyed by band number; band 1 is
// the one consulted for units.
type Raster struct {
	Meta
	Bands map[int]Arg
}

func (Raster) TypeTag() Type { return TypeRaster }

// Directory is a folder input, optionally with documented contents.
type Directory struct {
	Meta
	Contents    ArgMap
	Permissions string
	MustExist   bool
}

func (Directory) TypeTag() Type { return TypeDirectory }

// File is a single-file input outside the GIS and tabular categories.
type File struct {
	Meta
	Permissions string
	MustExist   bool
}

func (File) TypeTag() Type { return TypeFile }

// ModelSpec is the root of one model's specification tree.
type ModelSpec struct {
	// ID is the reference the documentation build resolves the model by.
	ID string
	// Title is the human name of the model.
	Title string
	// Args are the model's top-level inputs.
	Args ArgMap
}
