package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineage-backend/domain/config"
	"lineage-backend/domain/core/entities"
	"lineage-backend/domain/core/valueobjects"
)

func newGenerator() *NavigationNodeGenerator {
	return NewNavigationNodeGenerator(SequentialGenerator("nav"), config.DefaultDomainConfig())
}

func TestNavDirectionGlyph(t *testing.T) {
	assert.Equal(t, "↑", NavUp.Glyph())
	assert.Equal(t, "↓", NavDown.Glyph())
	assert.Equal(t, "←", NavLeft.Glyph())
	assert.Equal(t, "→", NavRight.Glyph())
	assert.Equal(t, "↑", NavDirection("").Glyph())
}

func TestNewPortalNode(t *testing.T) {
	gen := newGenerator()
	cfg := config.DefaultDomainConfig()

	node := gen.NewPortalNode("Canvases/smith-gen-2.canvas", "Older Generations", Point{X: 10, Y: 20}, NavUp, "12 people")

	assert.Equal(t, "nav-1", node.ID)
	assert.Equal(t, NodeTypeText, node.Type)
	assert.Equal(t, float64(10), node.X)
	assert.Equal(t, float64(20), node.Y)
	assert.Equal(t, cfg.PortalNodeWidth, node.Width)
	assert.Equal(t, cfg.PortalNodeHeight, node.Height)
	assert.Equal(t, cfg.PortalNodeColor, node.Color)

	assert.Equal(t, "↑\n\n**Older Generations**\n12 people\n\n[[smith-gen-2]]", node.Text)
}

func TestNewPortalNodeWithoutInfo(t *testing.T) {
	node := newGenerator().NewPortalNode("other.canvas", "Next", Point{}, NavRight, "")
	assert.Equal(t, "→\n\n**Next**\n\n[[other]]", node.Text)
}

func TestNewPlaceholderNode(t *testing.T) {
	gen := newGenerator()

	person, err := entities.NewPerson(valueobjects.MustCrID("@I1@"), "John Smith")
	require.NoError(t, err)

	node := gen.NewPlaceholderNode(person, "Canvases/smith-branch.canvas", Point{X: 5, Y: 5})

	assert.Equal(t, NodeTypeText, node.Type)
	assert.Equal(t, "**John Smith**\n\nSee [[smith-branch]]", node.Text)
}

func TestNewPlaceholderNodeFallsBackToID(t *testing.T) {
	gen := newGenerator()

	person, err := entities.NewPerson(valueobjects.MustCrID("@I1@"), "")
	require.NoError(t, err)

	node := gen.NewPlaceholderNode(person, "branch.canvas", Point{})
	assert.Contains(t, node.Text, "**@I1@**")
}

func TestNewCanvasLinkNode(t *testing.T) {
	gen := newGenerator()
	cfg := config.DefaultDomainConfig()

	node := gen.NewCanvasLinkNode("sub.canvas", Point{X: 1, Y: 2}, 0, 0)

	assert.Equal(t, NodeTypeFile, node.Type)
	assert.Equal(t, "sub.canvas", node.File)
	assert.Equal(t, cfg.LinkNodeWidth, node.Width)
	assert.Equal(t, cfg.LinkNodeHeight, node.Height)

	sized := gen.NewCanvasLinkNode("sub.canvas", Point{}, 640, 480)
	assert.Equal(t, float64(640), sized.Width)
	assert.Equal(t, float64(480), sized.Height)
}

func TestNewBackToOverviewNode(t *testing.T) {
	node := newGenerator().NewBackToOverviewNode("overview.canvas", Point{})
	assert.Contains(t, node.Text, "↑")
	assert.Contains(t, node.Text, "**Overview**")
	assert.Contains(t, node.Text, "[[overview]]")
}

func TestCanvasDisplayName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "path with directory", path: "Canvases/smith-gen-2.canvas", want: "smith-gen-2"},
		{name: "bare file", path: "tree.canvas", want: "tree"},
		{name: "no extension", path: "tree", want: "tree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanvasDisplayName(tt.path))
		})
	}
}
