package services

import (
	"lineage-backend/domain/core/aggregates"
	"lineage-backend/domain/core/valueobjects"
)

// GenerationAssignment maps every person reachable from the tree root to a
// relative generation number. Zero is the root; the sign convention of the
// other generations depends on the traversal direction.
type GenerationAssignment struct {
	Generations map[valueobjects.CrID]int      `json:"generations"`
	Bounds      valueobjects.GenerationBounds  `json:"bounds"`
	ByRange     map[string][]valueobjects.CrID `json:"byRange"`

	// visitOrder preserves BFS order for deterministic bucketing
	visitOrder []valueobjects.CrID
}

// GenerationOf looks up a person's generation
func (a *GenerationAssignment) GenerationOf(id valueobjects.CrID) (int, bool) {
	generation, ok := a.Generations[id]
	return generation, ok
}

// VisitOrder returns the people in the order BFS first reached them
func (a *GenerationAssignment) VisitOrder() []valueobjects.CrID {
	order := make([]valueobjects.CrID, len(a.visitOrder))
	copy(order, a.visitOrder)
	return order
}

// GenerationAssigner computes relative generation numbers via a
// direction-aware breadth-first traversal over parent, child and spouse
// relationships. A visited set keyed by CrID guarantees O(people+edges)
// work and terminates relationship cycles; the first visit wins, which is
// the typically-shortest-path generation.
type GenerationAssigner struct{}

// NewGenerationAssigner creates a new generation assigner
func NewGenerationAssigner() *GenerationAssigner {
	return &GenerationAssigner{}
}

type generationVisit struct {
	id         valueobjects.CrID
	generation int
}

// Assign walks the tree from its root and numbers every reachable person.
// Parents move by the direction's parent offset, children by the opposite
// offset and spouses stay on their partner's generation. People
// unreachable from the root are not included; dangling references are
// skipped. A tree with no resolvable root yields an empty assignment with
// zero bounds.
func (s *GenerationAssigner) Assign(tree *aggregates.FamilyTree, direction valueobjects.TraversalDirection) *GenerationAssignment {
	assignment := &GenerationAssignment{
		Generations: make(map[valueobjects.CrID]int),
		ByRange:     make(map[string][]valueobjects.CrID),
	}

	if tree == nil || tree.Root() == nil {
		return assignment
	}
	if !direction.IsValid() {
		direction = valueobjects.DirectionUp
	}

	parentOffset := direction.ParentOffset()

	visited := make(map[valueobjects.CrID]bool)
	queue := []generationVisit{{id: tree.RootID(), generation: 0}}
	visited[tree.RootID()] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		person := tree.Person(current.id)
		if person == nil {
			// Dangling reference that slipped into the queue
			continue
		}

		assignment.Generations[current.id] = current.generation
		assignment.visitOrder = append(assignment.visitOrder, current.id)
		if current.generation < assignment.Bounds.Min {
			assignment.Bounds.Min = current.generation
		}
		if current.generation > assignment.Bounds.Max {
			assignment.Bounds.Max = current.generation
		}

		enqueue := func(id valueobjects.CrID, generation int) {
			if id.IsZero() || visited[id] || !tree.Contains(id) {
				return
			}
			visited[id] = true
			queue = append(queue, generationVisit{id: id, generation: generation})
		}

		enqueue(person.FatherID(), current.generation+parentOffset)
		enqueue(person.MotherID(), current.generation+parentOffset)
		for _, childID := range person.ChildIDs() {
			enqueue(childID, current.generation-parentOffset)
		}
		for _, spouseID := range person.SpouseIDs() {
			enqueue(spouseID, current.generation)
		}
	}

	return assignment
}

// AssignWithRanges assigns generations and eagerly buckets every person
// into the matching range label. ByRange is authoritative only when this
// variant is used; plain Assign leaves it empty and range membership must
// be queried through the generation map.
func (s *GenerationAssigner) AssignWithRanges(
	tree *aggregates.FamilyTree,
	direction valueobjects.TraversalDirection,
	ranges []valueobjects.GenerationRange,
) *GenerationAssignment {
	assignment := s.Assign(tree, direction)

	for _, id := range assignment.visitOrder {
		generation := assignment.Generations[id]
		for _, r := range ranges {
			if r.Contains(generation) {
				assignment.ByRange[r.Label] = append(assignment.ByRange[r.Label], id)
				break
			}
		}
	}

	return assignment
}
