package services

import (
	"math"
	"path"
	"strings"

	"go.uber.org/zap"

	"lineage-backend/domain/canvas"
	"lineage-backend/domain/config"
	"lineage-backend/domain/core/valueobjects"
)

// PruneOptions configures one prune operation
type PruneOptions struct {
	// AddNavigationNode synthesizes a portal node at the centroid of the
	// removed content and rewires boundary edges to it
	AddNavigationNode bool
	// TargetCanvas is the canvas the portal points at. Required for
	// navigation; without it no portal is created.
	TargetCanvas string
	// Direction overrides the inferred removal direction when non-empty
	Direction canvas.NavDirection
	// Label is the portal's bold label; defaults to the target canvas
	// display name
	Label string
	// Info is an optional extra line in the portal body
	Info string
}

// DefaultPruneOptions returns options that only remove content
func DefaultPruneOptions() PruneOptions {
	return PruneOptions{}
}

// PruneResult reports everything one prune removed and synthesized
type PruneResult struct {
	RemovedNodes   []canvas.CanvasNode `json:"removedNodes"`
	RemovedEdges   []canvas.CanvasEdge `json:"removedEdges"`
	NavigationNode *canvas.CanvasNode  `json:"navigationNode,omitempty"`
	NewEdges       []canvas.CanvasEdge `json:"newEdges"`
	Centroid       canvas.Point        `json:"centroid"`
	AffectedNodes  []string            `json:"affectedNodes"`
}

// CanvasPruneService removes a node/edge subset from a rendered canvas
// while keeping the remainder visually coherent: the removed content's
// centroid places a synthetic navigation node, the removal direction is
// inferred from the geometry, and boundary edges carry their style hints
// over to the rewired edges.
//
// PruneNodes mutates the canvas passed in as its documented side effect;
// callers must not prune the same canvas concurrently.
type CanvasPruneService struct {
	nav    *canvas.NavigationNodeGenerator
	ids    canvas.IDGenerator
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewCanvasPruneService creates a prune service
func NewCanvasPruneService(ids canvas.IDGenerator, cfg *config.DomainConfig, logger *zap.Logger) *CanvasPruneService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = canvas.UUIDGenerator()
	}
	return &CanvasPruneService{
		nav:    canvas.NewNavigationNodeGenerator(ids, cfg),
		ids:    ids,
		cfg:    cfg,
		logger: logger,
	}
}

// PruneNodes removes the given node IDs and every edge touching them from
// the canvas. Pruning an empty ID set is a valid no-op: nothing is
// removed and no navigation node is created even when requested.
func (s *CanvasPruneService) PruneNodes(data *canvas.CanvasData, nodeIDs []string, opts PruneOptions) *PruneResult {
	result := &PruneResult{
		RemovedNodes:  []canvas.CanvasNode{},
		RemovedEdges:  []canvas.CanvasEdge{},
		NewEdges:      []canvas.CanvasEdge{},
		AffectedNodes: []string{},
	}
	if data == nil || len(nodeIDs) == 0 {
		return result
	}

	removeSet := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		removeSet[id] = true
	}

	// Partition nodes
	var remaining []canvas.CanvasNode
	for _, node := range data.Nodes {
		if removeSet[node.ID] {
			result.RemovedNodes = append(result.RemovedNodes, node)
		} else {
			remaining = append(remaining, node)
		}
	}

	// Partition edges: fully internal edges disappear, boundary edges
	// (exactly one end removed) disappear too but are remembered for
	// rewiring
	var remainingEdges []canvas.CanvasEdge
	var boundaryEdges []canvas.CanvasEdge
	for _, edge := range data.Edges {
		fromRemoved := removeSet[edge.FromNode]
		toRemoved := removeSet[edge.ToNode]

		switch {
		case fromRemoved && toRemoved:
			result.RemovedEdges = append(result.RemovedEdges, edge)
		case fromRemoved || toRemoved:
			boundaryEdges = append(boundaryEdges, edge)
			result.RemovedEdges = append(result.RemovedEdges, edge)
		default:
			remainingEdges = append(remainingEdges, edge)
		}
	}

	result.Centroid = canvas.Centroid(result.RemovedNodes)

	// Affected nodes: the surviving endpoint of every boundary edge
	seen := make(map[string]bool)
	for _, edge := range boundaryEdges {
		survivor := edge.FromNode
		if removeSet[edge.FromNode] {
			survivor = edge.ToNode
		}
		if !seen[survivor] {
			seen[survivor] = true
			result.AffectedNodes = append(result.AffectedNodes, survivor)
		}
	}

	if opts.AddNavigationNode && opts.TargetCanvas != "" && len(result.RemovedNodes) > 0 {
		s.addNavigation(result, &remaining, &remainingEdges, boundaryEdges, opts)
	}

	// The documented in-place mutation
	data.Nodes = remaining
	data.Edges = remainingEdges

	s.logger.Debug("Pruned canvas content",
		zap.Int("removedNodes", len(result.RemovedNodes)),
		zap.Int("removedEdges", len(result.RemovedEdges)),
		zap.Int("affectedNodes", len(result.AffectedNodes)),
		zap.Bool("navigation", result.NavigationNode != nil),
	)

	return result
}

// addNavigation synthesizes the portal node at the removed centroid and
// rewires every affected node to it with one edge that preserves the
// original boundary edge's orientation and side hints.
func (s *CanvasPruneService) addNavigation(
	result *PruneResult,
	remaining *[]canvas.CanvasNode,
	remainingEdges *[]canvas.CanvasEdge,
	boundaryEdges []canvas.CanvasEdge,
	opts PruneOptions,
) {
	direction := opts.Direction
	if direction == "" {
		direction = inferDirection(result.Centroid, canvas.Centroid(*remaining))
	}

	label := opts.Label
	if label == "" {
		label = canvas.CanvasDisplayName(opts.TargetCanvas)
	}

	portal := s.nav.NewPortalNode(opts.TargetCanvas, label, result.Centroid, direction, opts.Info)
	result.NavigationNode = &portal
	*remaining = append(*remaining, portal)

	// Index each affected node's first boundary edge for hint carry-over
	firstBoundary := make(map[string]canvas.CanvasEdge)
	removedSet := make(map[string]bool, len(result.RemovedNodes))
	for _, node := range result.RemovedNodes {
		removedSet[node.ID] = true
	}
	for _, edge := range boundaryEdges {
		survivor := edge.FromNode
		if removedSet[edge.FromNode] {
			survivor = edge.ToNode
		}
		if _, ok := firstBoundary[survivor]; !ok {
			firstBoundary[survivor] = edge
		}
	}

	for _, affected := range result.AffectedNodes {
		original := firstBoundary[affected]

		newEdge := canvas.CanvasEdge{
			ID:       s.ids(),
			FromSide: original.FromSide,
			ToSide:   original.ToSide,
			Color:    s.cfg.NavigationEdgeColor,
		}
		if original.FromNode == affected {
			// Keep the affected node on the from side as it was
			newEdge.FromNode = affected
			newEdge.ToNode = portal.ID
		} else {
			newEdge.FromNode = portal.ID
			newEdge.ToNode = affected
		}

		result.NewEdges = append(result.NewEdges, newEdge)
		*remainingEdges = append(*remainingEdges, newEdge)
	}
}

// PruneNodesByCrID resolves person identities to canvas node IDs by
// parsing each file-backed node's path as ".../{crId}.md", then prunes
// the matches. Unresolvable identities are skipped.
func (s *CanvasPruneService) PruneNodesByCrID(data *canvas.CanvasData, crIDs []valueobjects.CrID, opts PruneOptions) *PruneResult {
	if data == nil {
		return s.PruneNodes(nil, nil, opts)
	}

	wanted := make(map[string]bool, len(crIDs))
	for _, id := range crIDs {
		wanted[id.String()] = true
	}

	var nodeIDs []string
	for _, node := range data.Nodes {
		if node.Type != canvas.NodeTypeFile || node.File == "" {
			continue
		}
		base := path.Base(node.File)
		crID := strings.TrimSuffix(base, ".md")
		if crID != base && wanted[crID] {
			nodeIDs = append(nodeIDs, node.ID)
		}
	}

	return s.PruneNodes(data, nodeIDs, opts)
}

// inferDirection compares the removed content's centroid to the centroid
// of what remains: the dominant axis decides the left/right versus
// up/down pair, the sign decides which of the two. Canvas Y grows
// downward.
func inferDirection(removed, remaining canvas.Point) canvas.NavDirection {
	dx := removed.X - remaining.X
	dy := removed.Y - remaining.Y

	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return canvas.NavRight
		}
		return canvas.NavLeft
	}
	if dy >= 0 {
		return canvas.NavDown
	}
	return canvas.NavUp
}
