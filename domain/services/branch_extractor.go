package services

import (
	"lineage-backend/domain/core/aggregates"
	"lineage-backend/domain/core/entities"
	"lineage-backend/domain/core/valueobjects"
	pkgerrors "lineage-backend/pkg/errors"
)

// BranchType selects which lineage a branch extraction follows
type BranchType string

const (
	BranchPaternal   BranchType = "paternal"
	BranchMaternal   BranchType = "maternal"
	BranchDescendant BranchType = "descendant"
	BranchCustom     BranchType = "custom"
)

// BoundaryCategory names the kind of outward relationship that makes a
// branch member a boundary person
type BoundaryCategory string

const (
	BoundaryPaternal     BoundaryCategory = "paternal"
	BoundaryMaternal     BoundaryCategory = "maternal"
	BoundaryDescendants  BoundaryCategory = "descendants"
	BoundarySpouseFamily BoundaryCategory = "spouse-family"
)

// BranchDefinition describes one lineage subset to extract. ChildID is
// required for descendant branches and AncestorID for custom branches;
// everything else degrades to an empty result instead of failing.
type BranchDefinition struct {
	Type           BranchType        `json:"type"`
	AnchorID       valueobjects.CrID `json:"anchorCrId"`
	Label          string            `json:"label"`
	ChildID        valueobjects.CrID `json:"childCrId,omitempty"`
	AncestorID     valueobjects.CrID `json:"ancestorCrId,omitempty"`
	MaxGenerations int               `json:"maxGenerations,omitempty"` // 0 means unbounded
}

// Validate enforces the caller contract. This is the only hard failure
// mode of branch extraction; it is checked at construction time, never
// deep inside traversal.
func (d BranchDefinition) Validate() error {
	switch d.Type {
	case BranchPaternal, BranchMaternal:
		if d.AnchorID.IsZero() {
			return pkgerrors.NewValidationError("anchorCrId is required")
		}
	case BranchDescendant:
		if d.AnchorID.IsZero() {
			return pkgerrors.NewValidationError("anchorCrId is required")
		}
		if d.ChildID.IsZero() {
			return pkgerrors.NewNotFoundError("childCrId for descendant branch")
		}
	case BranchCustom:
		if d.AnchorID.IsZero() {
			return pkgerrors.NewValidationError("anchorCrId is required")
		}
		if d.AncestorID.IsZero() {
			return pkgerrors.NewNotFoundError("ancestorCrId for custom branch")
		}
	default:
		return pkgerrors.NewValidationError("unknown branch type: " + string(d.Type))
	}
	return nil
}

// BranchExtractionResult is the outcome of one branch extraction
type BranchExtractionResult struct {
	// Members is the set of people belonging to the branch
	Members map[valueobjects.CrID]bool `json:"members"`
	// BranchRoot is the most distant ancestor reached, or the seed child
	// for descendant branches. Zero when the branch is empty.
	BranchRoot valueobjects.CrID `json:"branchRoot"`
	// Boundaries maps each boundary member to the outward relationship
	// categories connecting it to people outside the branch
	Boundaries map[valueobjects.CrID][]BoundaryCategory `json:"boundaries"`
	// GenerationDepth is the maximum traversal depth achieved
	GenerationDepth int `json:"generationDepth"`

	order []valueobjects.CrID
}

// Contains reports branch membership
func (r *BranchExtractionResult) Contains(id valueobjects.CrID) bool {
	return r.Members[id]
}

// Size returns the number of branch members
func (r *BranchExtractionResult) Size() int {
	return len(r.Members)
}

// MemberOrder returns the members in traversal order, spouses appended
// after the lineage members.
func (r *BranchExtractionResult) MemberOrder() []valueobjects.CrID {
	order := make([]valueobjects.CrID, len(r.order))
	copy(order, r.order)
	return order
}

// ExtractOptions tunes one extraction pass
type ExtractOptions struct {
	// IncludeSpouses adds every member's spouse after membership is
	// determined. Spouses are not recursively expanded further.
	IncludeSpouses bool
	// DetectBoundaries records outward relationship categories per member
	DetectBoundaries bool
}

// DefaultExtractOptions returns the standard options: spouses included,
// boundaries detected
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		IncludeSpouses:   true,
		DetectBoundaries: true,
	}
}

// BranchExtractor pulls connected lineage subsets out of a family tree.
// All four branch kinds run a depth-tagged BFS with a visited set, so
// cycles and re-visits are safe and the most direct depth is kept.
type BranchExtractor struct{}

// NewBranchExtractor creates a new branch extractor
func NewBranchExtractor() *BranchExtractor {
	return &BranchExtractor{}
}

type branchVisit struct {
	id    valueobjects.CrID
	depth int
}

// Extract runs one branch extraction. Missing anchors or seeds yield an
// empty result with a zero branch root, never an error; only a definition
// that violates the caller contract fails.
func (s *BranchExtractor) Extract(tree *aggregates.FamilyTree, def BranchDefinition, opts ExtractOptions) (*BranchExtractionResult, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	result := &BranchExtractionResult{
		Members:    make(map[valueobjects.CrID]bool),
		Boundaries: make(map[valueobjects.CrID][]BoundaryCategory),
	}
	if tree == nil {
		return result, nil
	}

	switch def.Type {
	case BranchPaternal:
		s.extractAncestry(tree, def, result, true)
	case BranchMaternal:
		s.extractAncestry(tree, def, result, false)
	case BranchDescendant:
		s.extractDescendants(tree, def, result)
	case BranchCustom:
		s.extractCustom(tree, def, result)
	}

	if opts.IncludeSpouses {
		s.includeSpouses(tree, result)
	}
	if opts.DetectBoundaries {
		s.detectBoundaries(tree, result)
	}

	return result, nil
}

// extractAncestry walks upward from the anchor's father or mother,
// enqueuing both parents of every visited person: the branch collects the
// entire ancestry on that side, not a single line. The branch root is the
// last person visited, which BFS makes the most distant ancestor reached
// before any depth cutoff.
func (s *BranchExtractor) extractAncestry(tree *aggregates.FamilyTree, def BranchDefinition, result *BranchExtractionResult, paternal bool) {
	anchor := tree.Person(def.AnchorID)
	if anchor == nil {
		return
	}

	seed := anchor.MotherID()
	if paternal {
		seed = anchor.FatherID()
	}
	if seed.IsZero() || !tree.Contains(seed) {
		return
	}

	s.walkUp(tree, seed, 1, def.MaxGenerations, result)
}

// extractDescendants walks downward from the seed child at depth zero.
// The branch root is fixed to the seed regardless of traversal.
func (s *BranchExtractor) extractDescendants(tree *aggregates.FamilyTree, def BranchDefinition, result *BranchExtractionResult) {
	if !tree.Contains(def.ChildID) {
		return
	}

	visited := map[valueobjects.CrID]bool{def.ChildID: true}
	queue := []branchVisit{{id: def.ChildID, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		person := tree.Person(current.id)
		if person == nil {
			continue
		}

		result.Members[current.id] = true
		result.order = append(result.order, current.id)
		if current.depth > result.GenerationDepth {
			result.GenerationDepth = current.depth
		}

		for _, childID := range person.ChildIDs() {
			if visited[childID] || !tree.Contains(childID) {
				continue
			}
			if def.MaxGenerations > 0 && current.depth+1 > def.MaxGenerations {
				continue
			}
			visited[childID] = true
			queue = append(queue, branchVisit{id: childID, depth: current.depth + 1})
		}
	}

	result.BranchRoot = def.ChildID
}

// extractCustom reconstructs a target ancestor's own line: it walks upward
// from the ancestor at depth zero, not from the anchor, so the result is
// the ancestor's ancestry rather than the path between anchor and
// ancestor. The branch root is the target ancestor.
func (s *BranchExtractor) extractCustom(tree *aggregates.FamilyTree, def BranchDefinition, result *BranchExtractionResult) {
	if !tree.Contains(def.AncestorID) {
		return
	}

	s.walkUp(tree, def.AncestorID, 0, def.MaxGenerations, result)
	result.BranchRoot = def.AncestorID
}

// walkUp is the shared upward BFS: both parents of every visited person
// are enqueued at depth+1. A person at the cutoff depth is still included;
// only enqueuing past it stops.
func (s *BranchExtractor) walkUp(tree *aggregates.FamilyTree, seed valueobjects.CrID, seedDepth, maxGenerations int, result *BranchExtractionResult) {
	visited := map[valueobjects.CrID]bool{seed: true}
	queue := []branchVisit{{id: seed, depth: seedDepth}}

	var lastVisited valueobjects.CrID

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		person := tree.Person(current.id)
		if person == nil {
			continue
		}

		result.Members[current.id] = true
		result.order = append(result.order, current.id)
		lastVisited = current.id
		if current.depth > result.GenerationDepth {
			result.GenerationDepth = current.depth
		}

		for _, parentID := range person.ParentIDs() {
			if visited[parentID] || !tree.Contains(parentID) {
				continue
			}
			if maxGenerations > 0 && current.depth+1 > maxGenerations {
				continue
			}
			visited[parentID] = true
			queue = append(queue, branchVisit{id: parentID, depth: current.depth + 1})
		}
	}

	if result.BranchRoot.IsZero() {
		result.BranchRoot = lastVisited
	}
}

// includeSpouses adds every member's spouses in one pass. Added spouses
// are not expanded further.
func (s *BranchExtractor) includeSpouses(tree *aggregates.FamilyTree, result *BranchExtractionResult) {
	members := make([]valueobjects.CrID, len(result.order))
	copy(members, result.order)

	for _, id := range members {
		person := tree.Person(id)
		if person == nil {
			continue
		}
		for _, spouseID := range person.SpouseIDs() {
			if result.Members[spouseID] || !tree.Contains(spouseID) {
				continue
			}
			result.Members[spouseID] = true
			result.order = append(result.order, spouseID)
		}
	}
}

// detectBoundaries records, per member, the outward relationship
// categories connecting it to people outside the branch set. A person can
// carry multiple categories.
func (s *BranchExtractor) detectBoundaries(tree *aggregates.FamilyTree, result *BranchExtractionResult) {
	for _, id := range result.order {
		person := tree.Person(id)
		if person == nil {
			continue
		}

		var categories []BoundaryCategory

		if father := person.FatherID(); !father.IsZero() && tree.Contains(father) && !result.Members[father] {
			categories = append(categories, BoundaryPaternal)
		}
		if mother := person.MotherID(); !mother.IsZero() && tree.Contains(mother) && !result.Members[mother] {
			categories = append(categories, BoundaryMaternal)
		}
		for _, childID := range person.ChildIDs() {
			if tree.Contains(childID) && !result.Members[childID] {
				categories = append(categories, BoundaryDescendants)
				break
			}
		}
		for _, spouseID := range person.SpouseIDs() {
			if tree.Contains(spouseID) && !result.Members[spouseID] {
				categories = append(categories, BoundarySpouseFamily)
				break
			}
		}

		if len(categories) > 0 {
			result.Boundaries[id] = categories
		}
	}
}

// DeriveSubBranches produces up to two child branch definitions, paternal
// and maternal, anchored at the completed branch's root. The recursion
// budget is owned by the orchestrator, not the extractor: this is a
// bounded unfolding step, not self-recursion.
func (s *BranchExtractor) DeriveSubBranches(tree *aggregates.FamilyTree, def BranchDefinition, result *BranchExtractionResult) []BranchDefinition {
	if tree == nil || result == nil || result.BranchRoot.IsZero() {
		return nil
	}

	root := tree.Person(result.BranchRoot)
	if root == nil {
		return nil
	}

	var derived []BranchDefinition
	if hasParent(tree, root, true) {
		derived = append(derived, BranchDefinition{
			Type:           BranchPaternal,
			AnchorID:       result.BranchRoot,
			Label:          def.Label + " - Paternal",
			MaxGenerations: def.MaxGenerations,
		})
	}
	if hasParent(tree, root, false) {
		derived = append(derived, BranchDefinition{
			Type:           BranchMaternal,
			AnchorID:       result.BranchRoot,
			Label:          def.Label + " - Maternal",
			MaxGenerations: def.MaxGenerations,
		})
	}
	return derived
}

func hasParent(tree *aggregates.FamilyTree, person *entities.Person, paternal bool) bool {
	id := person.MotherID()
	if paternal {
		id = person.FatherID()
	}
	return !id.IsZero() && tree.Contains(id)
}
