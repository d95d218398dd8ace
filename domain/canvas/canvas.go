package canvas

import (
	"encoding/json"

	pkgerrors "lineage-backend/pkg/errors"
)

// NodeType identifies the kind of content a canvas node carries
type NodeType string

const (
	NodeTypeFile  NodeType = "file"
	NodeTypeText  NodeType = "text"
	NodeTypeLink  NodeType = "link"
	NodeTypeGroup NodeType = "group"
)

// EdgeSide names the side of a node an edge attaches to
type EdgeSide string

const (
	SideTop    EdgeSide = "top"
	SideBottom EdgeSide = "bottom"
	SideLeft   EdgeSide = "left"
	SideRight  EdgeSide = "right"
)

// Point is a coordinate on the canvas plane
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CanvasNode is a generic visual-graph node. The JSON shape is the
// structural contract shared with the canvas persistence layer and is not
// genealogy-specific.
type CanvasNode struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	File   string   `json:"file,omitempty"`
	Text   string   `json:"text,omitempty"`
	URL    string   `json:"url,omitempty"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Color  string   `json:"color,omitempty"`
}

// Center returns the node's center point. Positions are top-left anchored,
// so the center is offset by half the node's size.
func (n CanvasNode) Center() Point {
	return Point{
		X: n.X + n.Width/2,
		Y: n.Y + n.Height/2,
	}
}

// CanvasEdge is a generic visual-graph edge between two node IDs
type CanvasEdge struct {
	ID       string   `json:"id"`
	FromNode string   `json:"fromNode"`
	FromSide EdgeSide `json:"fromSide,omitempty"`
	ToNode   string   `json:"toNode"`
	ToSide   EdgeSide `json:"toSide,omitempty"`
	Color    string   `json:"color,omitempty"`
	Label    string   `json:"label,omitempty"`
}

// Touches reports whether either endpoint of the edge is the given node
func (e CanvasEdge) Touches(nodeID string) bool {
	return e.FromNode == nodeID || e.ToNode == nodeID
}

// CanvasData is a rendered canvas: the node/edge arrays the persistence
// layer reads and writes. Pruning mutates it in place as its documented
// side effect.
type CanvasData struct {
	Nodes  []CanvasNode `json:"nodes"`
	Edges  []CanvasEdge `json:"edges"`
	Groups []CanvasNode `json:"groups,omitempty"`
}

// NodeByID finds a node by ID, nil when absent
func (c *CanvasData) NodeByID(id string) *CanvasNode {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i]
		}
	}
	return nil
}

// Centroid computes the arithmetic mean of the nodes' center points.
// An empty node set yields the origin.
func Centroid(nodes []CanvasNode) Point {
	if len(nodes) == 0 {
		return Point{}
	}

	var sumX, sumY float64
	for _, node := range nodes {
		center := node.Center()
		sumX += center.X
		sumY += center.Y
	}

	count := float64(len(nodes))
	return Point{X: sumX / count, Y: sumY / count}
}

// ParseCanvas decodes canvas bytes into CanvasData. It operates on bytes
// only; reading the file is the persistence layer's job.
func ParseCanvas(data []byte) (*CanvasData, error) {
	var parsed CanvasData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, pkgerrors.NewValidationError("malformed canvas data").WithCause(err)
	}
	if parsed.Nodes == nil {
		parsed.Nodes = []CanvasNode{}
	}
	if parsed.Edges == nil {
		parsed.Edges = []CanvasEdge{}
	}
	return &parsed, nil
}

// Marshal encodes the canvas back to the persisted JSON shape
func (c *CanvasData) Marshal() ([]byte, error) {
	encoded, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to encode canvas").WithCause(err)
	}
	return encoded, nil
}
