package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
)

func TestParseUnwrapsSingleParagraph(t *testing.T) {
	source := []byte("just a short phrase")
	nodes := Parse(source)
	require.NotEmpty(t, nodes)
	// inline nodes, not a block paragraph, so the phrase embeds inline
	for _, node := range nodes {
		assert.Equal(t, ast.TypeInline, node.Type())
	}
}

func TestParseKeepsMultipleBlocks(t *testing.T) {
	source := []byte("first paragraph\n\nsecond paragraph")
	nodes := Parse(source)
	require.Len(t, nodes, 2)
	assert.Equal(t, ast.KindParagraph, nodes[0].Kind())
	assert.Equal(t, ast.KindParagraph, nodes[1].Kind())
}

func TestParseBulletList(t *testing.T) {
	source := []byte("- **a** (x)\n\n- **b** (y)")
	nodes := Parse(source)
	require.NotEmpty(t, nodes)
	assert.Equal(t, ast.KindList, nodes[0].Kind())
}

func TestParseInlineLink(t *testing.T) {
	source := []byte("[number](input_types.html#number)")
	nodes := Parse(source)
	require.Len(t, nodes, 1)
	link, ok := nodes[0].(*ast.Link)
	require.True(t, ok)
	assert.Equal(t, "input_types.html#number", string(link.Destination))
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, Parse([]byte("")))
}
