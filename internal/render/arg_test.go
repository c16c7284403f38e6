package render

import (
	"testing"

	"github.com/adrianvogl/investspec/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgNumber(t *testing.T) {
	arg := api.Number{
		Meta:       api.Meta{Name: "Bar", About: "Description"},
		Units:      "cubic_meter / month",
		Expression: "value >= 0",
	}
	lines, err := Arg("Bar", arg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"**Bar** ([number](input_types.html#number), units: cubic meters/month, required): Description",
	}, lines)
}

func TestArgNumberWithoutUnits(t *testing.T) {
	arg := api.Number{Meta: api.Meta{About: "Description"}, Units: api.NoUnits}
	lines, err := Arg("Bar", arg)
	require.NoError(t, err)
	// a unit-less number gets no units annotation at all
	assert.Equal(t, []string{
		"**Bar** ([number](input_types.html#number), required): Description",
	}, lines)
}

func TestArgPrimitives(t *testing.T) {
	t.Run("ratio", func(t *testing.T) {
		lines, err := Arg("Bar", api.Primitive{
			Meta: api.Meta{About: "Description"}, Kind: api.TypeRatio,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([ratio](input_types.html#ratio), required): Description",
		}, lines)
	})

	t.Run("percent optional", func(t *testing.T) {
		lines, err := Arg("Bar", api.Primitive{
			Meta: api.Meta{About: "Description", Required: api.Optional()},
			Kind: api.TypePercent,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([percent](input_types.html#percent), optional): Description",
		}, lines)
	})

	t.Run("integer conditionally required", func(t *testing.T) {
		lines, err := Arg("Bar", api.Primitive{
			Meta: api.Meta{About: "Description", Required: api.RequiredIf("do_valuation")},
			Kind: api.TypeInteger,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([integer](input_types.html#integer), conditionally required): Description",
		}, lines)
	})

	t.Run("boolean has no required annotation", func(t *testing.T) {
		lines, err := Arg("Bar", api.Primitive{
			Meta: api.Meta{About: "Description"}, Kind: api.TypeBoolean,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([true/false](input_types.html#truefalse)): Description",
		}, lines)
	})
}

func TestArgFreestyleString(t *testing.T) {
	lines, err := Arg("Bar", api.FreestyleString{Meta: api.Meta{About: "Description"}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"**Bar** ([text](input_types.html#text), required): Description",
	}, lines)
}

func TestArgOptionString(t *testing.T) {
	t.Run("described options become an indented bullet list", func(t *testing.T) {
		lines, err := Arg("Bar", api.OptionString{
			Meta: api.Meta{About: "Description"},
			Options: api.DescribedOptions{
				{Name: "option_a", About: "do x"},
				{Name: "Option_b", About: "do y"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([option](input_types.html#option), required): Description",
			"\tOptions:",
			"\t- option_a: do x",
			"\t- Option_b: do y",
		}, lines)
	})

	t.Run("plain options become a single line", func(t *testing.T) {
		lines, err := Arg("Bar", api.OptionString{
			Meta:    api.Meta{About: "Description"},
			Options: api.PlainOptions{"option_a", "Option_b"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([option](input_types.html#option), required): Description",
			"\tOptions: option_a, Option_b",
		}, lines)
	})

	t.Run("empty options render no block", func(t *testing.T) {
		lines, err := Arg("Bar", api.OptionString{Meta: api.Meta{About: "Description"}})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([option](input_types.html#option), required): Description",
		}, lines)
	})
}

func TestArgRaster(t *testing.T) {
	t.Run("integer band carries no units", func(t *testing.T) {
		lines, err := Arg("Bar", api.Raster{
			Meta:  api.Meta{About: "Description"},
			Bands: map[int]api.Arg{1: api.Primitive{Kind: api.TypeInteger}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([raster](input_types.html#raster), required): Description",
		}, lines)
	})

	t.Run("number band contributes its units", func(t *testing.T) {
		lines, err := Arg("Bar", api.Raster{
			Meta:  api.Meta{About: "Description"},
			Bands: map[int]api.Arg{1: api.Number{Units: "millimeter / year"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([raster](input_types.html#raster), units: millimeters/year, required): Description",
		}, lines)
	})

	t.Run("only band 1 is consulted", func(t *testing.T) {
		lines, err := Arg("Bar", api.Raster{
			Meta:  api.Meta{About: "Description"},
			Bands: map[int]api.Arg{2: api.Number{Units: "millimeter / year"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([raster](input_types.html#raster), required): Description",
		}, lines)
	})
}

func TestArgVector(t *testing.T) {
	t.Run("geometries join the annotations", func(t *testing.T) {
		lines, err := Arg("Bar", api.Vector{
			Meta:       api.Meta{About: "Description"},
			Geometries: []api.Geometry{api.MultiPolygon, api.Polygon},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([vector](input_types.html#vector), polygon/multipolygon, required): Description",
		}, lines)
	})

	t.Run("fields become an indented sub-list", func(t *testing.T) {
		lines, err := Arg("Bar", api.Vector{
			Meta:       api.Meta{About: "Description"},
			Geometries: []api.Geometry{api.Polygon},
			Fields: api.ArgMap{
				{Key: "ws_id", Arg: api.Primitive{Meta: api.Meta{About: "Unique watershed id."}, Kind: api.TypeInteger}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([vector](input_types.html#vector), polygon, required): Description",
			"\tFields:",
			"\t- **ws_id** ([integer](input_types.html#integer), required): Unique watershed id.",
		}, lines)
	})
}

func TestArgDirectory(t *testing.T) {
	t.Run("contents become an indented sub-list", func(t *testing.T) {
		lines, err := Arg("Bar", api.Directory{
			Meta: api.Meta{About: "Description"},
			Contents: api.ArgMap{
				{Key: "dem", Arg: api.Raster{Meta: api.Meta{About: "Elevation raster."}}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([directory](input_types.html#directory), required): Description",
			"\tContents:",
			"\t- **dem** ([raster](input_types.html#raster), required): Elevation raster.",
		}, lines)
	})

	t.Run("empty contents render no block", func(t *testing.T) {
		lines, err := Arg("Bar", api.Directory{Meta: api.Meta{About: "Description"}})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([directory](input_types.html#directory), required): Description",
		}, lines)
	})
}

func TestArgNestingRecurses(t *testing.T) {
	// a directory holding a CSV holding columns goes two tabs deep
	lines, err := Arg("Bar", api.Directory{
		Meta: api.Meta{About: "Description"},
		Contents: api.ArgMap{
			{Key: "table", Arg: api.CSV{
				Meta: api.Meta{About: "A table."},
				Columns: api.ArgMap{
					{Key: "lucode", Arg: api.Primitive{Kind: api.TypeInteger}},
				},
			}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"**Bar** ([directory](input_types.html#directory), required): Description",
		"\tContents:",
		"\t- **table** ([CSV](input_types.html#csv), required): A table.",
		"\t\tColumns:",
		"\t\t- **lucode** ([integer](input_types.html#integer), required)",
	}, lines)
}

func TestArgCSV(t *testing.T) {
	t.Run("without columns or rows points at the sample table", func(t *testing.T) {
		lines, err := Arg("Bar", api.CSV{Meta: api.Meta{About: "Description."}})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([CSV](input_types.html#csv), required): Description. " +
				"Please see the sample data table for details on the format.",
		}, lines)
	})

	t.Run("columns become an indented sub-list and suppress the sentence", func(t *testing.T) {
		lines, err := Arg("Bar", api.CSV{
			Meta: api.Meta{About: "Description"},
			Columns: api.ArgMap{
				{Key: "lucode", Arg: api.Primitive{Meta: api.Meta{About: "Land use code."}, Kind: api.TypeInteger}},
				{Key: "b", Arg: api.Primitive{Meta: api.Meta{About: "description"}, Kind: api.TypeRatio}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([CSV](input_types.html#csv), required): Description",
			"\tColumns:",
			"\t- **lucode** ([integer](input_types.html#integer), required): Land use code.",
			"\t- **b** ([ratio](input_types.html#ratio), required): description",
		}, lines)
	})

	t.Run("rows become an indented sub-list", func(t *testing.T) {
		lines, err := Arg("Bar", api.CSV{
			Meta: api.Meta{About: "Description"},
			Rows: api.ArgMap{
				{Key: "depth", Arg: api.Number{Meta: api.Meta{About: "Depth of the layer."}, Units: "meter"}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"**Bar** ([CSV](input_types.html#csv), required): Description",
			"\tRows:",
			"\t- **depth** ([number](input_types.html#number), units: meters, required): Depth of the layer.",
		}, lines)
	})
}

func TestArgDeterministic(t *testing.T) {
	arg := api.Vector{
		Meta:       api.Meta{About: "Description"},
		Geometries: []api.Geometry{api.Polygon, api.Point, api.MultiPoint},
	}
	first, err := Arg("Bar", arg)
	require.NoError(t, err)
	second, err := Arg("Bar", arg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestArgs(t *testing.T) {
	args := api.ArgMap{
		{Key: "n", Arg: api.Number{Meta: api.Meta{Name: "N", About: "A number"}, Units: "meter"}},
		{Key: "flag", Arg: api.Primitive{Meta: api.Meta{About: "A flag"}, Kind: api.TypeBoolean}},
	}
	lines, err := Args(args)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"- **N** ([number](input_types.html#number), units: meters, required): A number",
		"- **flag** ([true/false](input_types.html#truefalse)): A flag",
	}, lines)
}

func TestArgsDisplayNameFallsBackToKey(t *testing.T) {
	args := api.ArgMap{
		{Key: "ws_id", Arg: api.Primitive{Kind: api.TypeInteger}},
	}
	lines, err := Args(args)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"- **ws_id** ([integer](input_types.html#integer), required)",
	}, lines)
}
