package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineage-backend/domain/core/entities"
	"lineage-backend/domain/core/valueobjects"
)

func newPerson(t *testing.T, id, name string) *entities.Person {
	t.Helper()
	person, err := entities.NewPerson(valueobjects.MustCrID(id), name)
	require.NoError(t, err)
	return person
}

func TestNewFamilyTree(t *testing.T) {
	root := newPerson(t, "@I1@", "Root")

	tree, err := NewFamilyTree(root)
	require.NoError(t, err)
	assert.Equal(t, root.ID(), tree.RootID())
	assert.Same(t, root, tree.Root())
	assert.Equal(t, 1, tree.PersonCount())

	_, err = NewFamilyTree(nil)
	assert.Error(t, err)
}

func TestFamilyTreeDanglingLookups(t *testing.T) {
	tree, err := NewFamilyTree(newPerson(t, "@I1@", "Root"))
	require.NoError(t, err)

	missing := valueobjects.MustCrID("@I404@")
	assert.Nil(t, tree.Person(missing))
	assert.False(t, tree.Contains(missing))
}

func TestConnectParentChild(t *testing.T) {
	child := newPerson(t, "@I1@", "Child")
	father := newPerson(t, "@I2@", "Father")
	mother := newPerson(t, "@I3@", "Mother")

	tree, err := NewFamilyTree(child)
	require.NoError(t, err)
	require.NoError(t, tree.AddPerson(father))
	require.NoError(t, tree.AddPerson(mother))

	tree.ConnectParentChild(father.ID(), child.ID(), true)
	tree.ConnectParentChild(mother.ID(), child.ID(), false)

	assert.Equal(t, father.ID(), child.FatherID())
	assert.Equal(t, mother.ID(), child.MotherID())
	assert.Contains(t, father.ChildIDs(), child.ID())
	assert.Contains(t, mother.ChildIDs(), child.ID())

	edges := tree.Edges()
	assert.Len(t, edges, 4)
	assert.Contains(t, edges, RelationshipEdge{From: father.ID(), To: child.ID(), Kind: RelationChild})
	assert.Contains(t, edges, RelationshipEdge{From: child.ID(), To: father.ID(), Kind: RelationParent})
}

func TestConnectParentChildDanglingEndpoint(t *testing.T) {
	child := newPerson(t, "@I1@", "Child")
	tree, err := NewFamilyTree(child)
	require.NoError(t, err)

	ghost := valueobjects.MustCrID("@I99@")
	tree.ConnectParentChild(ghost, child.ID(), true)

	// The reference is recorded even though the parent is unknown
	assert.Equal(t, ghost, child.FatherID())
	assert.Nil(t, tree.Person(ghost))
	assert.Len(t, tree.Edges(), 2)
}

func TestConnectSpouses(t *testing.T) {
	a := newPerson(t, "@I1@", "A")
	b := newPerson(t, "@I2@", "B")

	tree, err := NewFamilyTree(a)
	require.NoError(t, err)
	require.NoError(t, tree.AddPerson(b))

	tree.ConnectSpouses(a.ID(), b.ID())

	assert.Contains(t, a.SpouseIDs(), b.ID())
	assert.Contains(t, b.SpouseIDs(), a.ID())
	assert.Contains(t, tree.Edges(), RelationshipEdge{From: a.ID(), To: b.ID(), Kind: RelationSpouse})
}

func TestConnectSpousesIdempotent(t *testing.T) {
	a := newPerson(t, "@I1@", "A")
	b := newPerson(t, "@I2@", "B")

	tree, err := NewFamilyTree(a)
	require.NoError(t, err)
	require.NoError(t, tree.AddPerson(b))

	// Both spouses listing each other connects the pair from both sides
	tree.ConnectSpouses(a.ID(), b.ID())
	tree.ConnectSpouses(b.ID(), a.ID())

	var spouseEdges []RelationshipEdge
	for _, edge := range tree.Edges() {
		if edge.Kind == RelationSpouse {
			spouseEdges = append(spouseEdges, edge)
		}
	}
	require.Len(t, spouseEdges, 1)
	assert.Equal(t, RelationshipEdge{From: a.ID(), To: b.ID(), Kind: RelationSpouse}, spouseEdges[0])
}

func TestAddEdgeSkipsDuplicates(t *testing.T) {
	tree, err := NewFamilyTree(newPerson(t, "@I1@", "Root"))
	require.NoError(t, err)

	parent := valueobjects.MustCrID("@I1@")
	child := valueobjects.MustCrID("@I2@")
	tree.AddEdge(parent, child, RelationChild)
	tree.AddEdge(parent, child, RelationChild)
	tree.AddEdge(child, parent, RelationParent)

	assert.Len(t, tree.Edges(), 2)
	assert.True(t, tree.HasEdge(parent, child, RelationChild))
	assert.False(t, tree.HasEdge(child, parent, RelationChild))
}

func TestEdgesReturnsCopy(t *testing.T) {
	tree, err := NewFamilyTree(newPerson(t, "@I1@", "Root"))
	require.NoError(t, err)
	tree.AddEdge(valueobjects.MustCrID("@I1@"), valueobjects.MustCrID("@I2@"), RelationChild)

	edges := tree.Edges()
	edges[0].Kind = RelationSpouse

	assert.Equal(t, RelationChild, tree.Edges()[0].Kind)
}
