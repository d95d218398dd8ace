package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeCenter(t *testing.T) {
	node := CanvasNode{X: 100, Y: 200, Width: 50, Height: 80}
	assert.Equal(t, Point{X: 125, Y: 240}, node.Center())
}

func TestEdgeTouches(t *testing.T) {
	edge := CanvasEdge{FromNode: "a", ToNode: "b"}
	assert.True(t, edge.Touches("a"))
	assert.True(t, edge.Touches("b"))
	assert.False(t, edge.Touches("c"))
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name  string
		nodes []CanvasNode
		want  Point
	}{
		{
			name: "empty set yields the origin",
			want: Point{},
		},
		{
			name:  "single node",
			nodes: []CanvasNode{{X: 0, Y: 0, Width: 100, Height: 100}},
			want:  Point{X: 50, Y: 50},
		},
		{
			name: "mean of centers",
			nodes: []CanvasNode{
				{X: 0, Y: 0, Width: 100, Height: 100},
				{X: 200, Y: 0, Width: 100, Height: 100},
			},
			want: Point{X: 150, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Centroid(tt.nodes))
		})
	}
}

func TestParseCanvas(t *testing.T) {
	raw := []byte(`{
		"nodes": [
			{"id": "n1", "type": "file", "file": "People/@I1@.md", "x": 0, "y": 0, "width": 400, "height": 120},
			{"id": "n2", "type": "text", "text": "note", "x": 500, "y": 0, "width": 200, "height": 100}
		],
		"edges": [
			{"id": "e1", "fromNode": "n1", "fromSide": "right", "toNode": "n2", "toSide": "left"}
		]
	}`)

	data, err := ParseCanvas(raw)
	require.NoError(t, err)
	require.Len(t, data.Nodes, 2)
	require.Len(t, data.Edges, 1)

	assert.Equal(t, NodeTypeFile, data.Nodes[0].Type)
	assert.Equal(t, "People/@I1@.md", data.Nodes[0].File)
	assert.Equal(t, SideRight, data.Edges[0].FromSide)

	node := data.NodeByID("n2")
	require.NotNil(t, node)
	assert.Equal(t, "note", node.Text)
	assert.Nil(t, data.NodeByID("n3"))
}

func TestParseCanvasEmptyDocument(t *testing.T) {
	data, err := ParseCanvas([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, data.Nodes)
	assert.NotNil(t, data.Edges)
	assert.Empty(t, data.Nodes)
}

func TestParseCanvasMalformed(t *testing.T) {
	_, err := ParseCanvas([]byte(`{nodes`))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	original := &CanvasData{
		Nodes: []CanvasNode{{ID: "n1", Type: NodeTypeText, Text: "hi", Width: 10, Height: 10}},
		Edges: []CanvasEdge{{ID: "e1", FromNode: "n1", ToNode: "n1"}},
	}

	encoded, err := original.Marshal()
	require.NoError(t, err)

	decoded, err := ParseCanvas(encoded)
	require.NoError(t, err)
	assert.Equal(t, original.Nodes, decoded.Nodes)
	assert.Equal(t, original.Edges, decoded.Edges)
}

func TestSequentialGenerator(t *testing.T) {
	ids := SequentialGenerator("node")
	assert.Equal(t, "node-1", ids())
	assert.Equal(t, "node-2", ids())
}
