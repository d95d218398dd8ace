package aggregates

import (
	"lineage-backend/domain/core/entities"
	"lineage-backend/domain/core/valueobjects"
	pkgerrors "lineage-backend/pkg/errors"
)

// RelationKind is the type of a relationship edge
type RelationKind string

const (
	RelationParent RelationKind = "parent"
	RelationChild  RelationKind = "child"
	RelationSpouse RelationKind = "spouse"
)

// RelationshipEdge is a typed, directed connection between two people
type RelationshipEdge struct {
	From valueobjects.CrID `json:"from"`
	To   valueobjects.CrID `json:"to"`
	Kind RelationKind      `json:"kind"`
}

// FamilyTree is the aggregate over one connected family graph: a root
// person, every person reachable from it keyed by CrID, and the typed
// relationship edges between them.
//
// The tree tolerates dangling references: an edge or a relationship field
// may name a CrID that has no entry in the people map, and lookups of such
// IDs return nil instead of failing. Graphs are frequently partial or
// hand-edited, so traversals skip misses rather than erroring.
type FamilyTree struct {
	rootID valueobjects.CrID
	people map[valueobjects.CrID]*entities.Person
	edges  []RelationshipEdge
}

// NewFamilyTree creates a tree with the given root person
func NewFamilyTree(root *entities.Person) (*FamilyTree, error) {
	if root == nil {
		return nil, pkgerrors.NewValidationError("root person is required")
	}

	tree := &FamilyTree{
		rootID: root.ID(),
		people: make(map[valueobjects.CrID]*entities.Person),
		edges:  []RelationshipEdge{},
	}
	tree.people[root.ID()] = root

	return tree, nil
}

// RootID returns the root person's identifier
func (t *FamilyTree) RootID() valueobjects.CrID {
	return t.rootID
}

// Root returns the root person, nil when it was never added
func (t *FamilyTree) Root() *entities.Person {
	return t.people[t.rootID]
}

// AddPerson registers a person in the tree. Re-adding the same CrID
// replaces the previous instance.
func (t *FamilyTree) AddPerson(person *entities.Person) error {
	if person == nil {
		return pkgerrors.NewValidationError("person cannot be nil")
	}
	t.people[person.ID()] = person
	return nil
}

// Person resolves a CrID to a person, returning nil for dangling
// references
func (t *FamilyTree) Person(id valueobjects.CrID) *entities.Person {
	return t.people[id]
}

// Contains reports whether the CrID resolves to a known person
func (t *FamilyTree) Contains(id valueobjects.CrID) bool {
	_, ok := t.people[id]
	return ok
}

// PersonCount returns the number of registered people
func (t *FamilyTree) PersonCount() int {
	return len(t.people)
}

// People returns the person map
func (t *FamilyTree) People() map[valueobjects.CrID]*entities.Person {
	// Return a copy to maintain encapsulation
	people := make(map[valueobjects.CrID]*entities.Person, len(t.people))
	for id, person := range t.people {
		people[id] = person
	}
	return people
}

// Edges returns the typed relationship edges
func (t *FamilyTree) Edges() []RelationshipEdge {
	// Return a copy to maintain encapsulation
	edges := make([]RelationshipEdge, len(t.edges))
	copy(edges, t.edges)
	return edges
}

// HasEdge reports whether an identical typed edge was already recorded
func (t *FamilyTree) HasEdge(from, to valueobjects.CrID, kind RelationKind) bool {
	for _, edge := range t.edges {
		if edge.Kind == kind && edge.From.Equals(from) && edge.To.Equals(to) {
			return true
		}
	}
	return false
}

// AddEdge records a typed edge without touching relationship fields.
// Dangling endpoints are allowed; traversals skip them. Recording the
// same edge twice is a no-op so repeated connects stay idempotent.
func (t *FamilyTree) AddEdge(from, to valueobjects.CrID, kind RelationKind) {
	if from.IsZero() || to.IsZero() {
		return
	}
	if t.HasEdge(from, to, kind) {
		return
	}
	t.edges = append(t.edges, RelationshipEdge{From: from, To: to, Kind: kind})
}

// ConnectParentChild records parent and child references on both people
// (when present) and appends the matching typed edges. Either endpoint may
// be dangling.
func (t *FamilyTree) ConnectParentChild(parentID, childID valueobjects.CrID, parentIsFather bool) {
	if parent := t.people[parentID]; parent != nil {
		parent.AddChild(childID)
	}
	if child := t.people[childID]; child != nil {
		if parentIsFather {
			child.SetFather(parentID)
		} else {
			child.SetMother(parentID)
		}
	}
	t.AddEdge(parentID, childID, RelationChild)
	t.AddEdge(childID, parentID, RelationParent)
}

// ConnectSpouses records a symmetric spouse relationship. One spouse edge
// represents the pair, so connecting in either order is idempotent.
func (t *FamilyTree) ConnectSpouses(a, b valueobjects.CrID) {
	if first := t.people[a]; first != nil {
		first.AddSpouse(b)
	}
	if second := t.people[b]; second != nil {
		second.AddSpouse(a)
	}
	if t.HasEdge(b, a, RelationSpouse) {
		return
	}
	t.AddEdge(a, b, RelationSpouse)
}
