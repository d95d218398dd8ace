package canvas

import (
	"fmt"
	"path"
	"strings"

	"lineage-backend/domain/config"
	"lineage-backend/domain/core/entities"
)

// NavDirection is the visual direction a navigation node points toward
type NavDirection string

const (
	NavUp    NavDirection = "up"
	NavDown  NavDirection = "down"
	NavLeft  NavDirection = "left"
	NavRight NavDirection = "right"
)

// Glyph returns the arrow character rendered in a portal node's body
func (d NavDirection) Glyph() string {
	switch d {
	case NavDown:
		return "↓"
	case NavLeft:
		return "←"
	case NavRight:
		return "→"
	default:
		return "↑"
	}
}

// NavigationNodeGenerator synthesizes the portal, placeholder and
// file-link nodes that redirect a viewer to another canvas. It performs no
// graph traversal; each method is pure node construction.
type NavigationNodeGenerator struct {
	ids IDGenerator
	cfg *config.DomainConfig
}

// NewNavigationNodeGenerator creates a generator with the given ID source
func NewNavigationNodeGenerator(ids IDGenerator, cfg *config.DomainConfig) *NavigationNodeGenerator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &NavigationNodeGenerator{ids: ids, cfg: cfg}
}

// NewPortalNode builds a text node advertising a jump to another canvas:
// an arrow glyph, a bold label, an optional info line and a link line
// naming the target canvas.
func (g *NavigationNodeGenerator) NewPortalNode(targetCanvas, label string, position Point, direction NavDirection, info string) CanvasNode {
	var body strings.Builder
	body.WriteString(direction.Glyph())
	body.WriteString("\n\n")
	body.WriteString(fmt.Sprintf("**%s**", label))
	if info != "" {
		body.WriteString("\n")
		body.WriteString(info)
	}
	body.WriteString("\n\n")
	body.WriteString(fmt.Sprintf("[[%s]]", CanvasDisplayName(targetCanvas)))

	return CanvasNode{
		ID:     g.ids(),
		Type:   NodeTypeText,
		Text:   body.String(),
		X:      position.X,
		Y:      position.Y,
		Width:  g.cfg.PortalNodeWidth,
		Height: g.cfg.PortalNodeHeight,
		Color:  g.cfg.PortalNodeColor,
	}
}

// NewPlaceholderNode builds a text node standing in for a person whose
// detail lives on another canvas
func (g *NavigationNodeGenerator) NewPlaceholderNode(person *entities.Person, targetCanvas string, position Point) CanvasNode {
	name := ""
	if person != nil {
		name = person.Name()
		if name == "" {
			name = person.ID().String()
		}
	}

	text := fmt.Sprintf("**%s**\n\nSee [[%s]]", name, CanvasDisplayName(targetCanvas))

	return CanvasNode{
		ID:     g.ids(),
		Type:   NodeTypeText,
		Text:   text,
		X:      position.X,
		Y:      position.Y,
		Width:  g.cfg.PlaceholderNodeWidth,
		Height: g.cfg.PlaceholderNodeHeight,
	}
}

// NewCanvasLinkNode builds a plain file-link node embedding the target
// canvas. Zero width or height falls back to the configured defaults.
func (g *NavigationNodeGenerator) NewCanvasLinkNode(targetCanvas string, position Point, width, height float64) CanvasNode {
	if width <= 0 {
		width = g.cfg.LinkNodeWidth
	}
	if height <= 0 {
		height = g.cfg.LinkNodeHeight
	}

	return CanvasNode{
		ID:     g.ids(),
		Type:   NodeTypeFile,
		File:   targetCanvas,
		X:      position.X,
		Y:      position.Y,
		Width:  width,
		Height: height,
	}
}

// NewBackToOverviewNode is a portal node pointing up at the overview canvas
func (g *NavigationNodeGenerator) NewBackToOverviewNode(targetCanvas string, position Point) CanvasNode {
	return g.NewPortalNode(targetCanvas, "Overview", position, NavUp, "")
}

// CanvasDisplayName derives the link display name for a canvas path by
// stripping the directory and extension
func CanvasDisplayName(canvasPath string) string {
	base := path.Base(canvasPath)
	return strings.TrimSuffix(base, path.Ext(base))
}
