package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineage-backend/domain/core/aggregates"
	"lineage-backend/domain/core/entities"
	"lineage-backend/domain/core/valueobjects"
	pkgerrors "lineage-backend/pkg/errors"
)

func TestBranchDefinitionValidate(t *testing.T) {
	tests := []struct {
		name     string
		def      BranchDefinition
		wantErr  bool
		notFound bool
	}{
		{
			name: "valid paternal",
			def:  BranchDefinition{Type: BranchPaternal, AnchorID: id("P")},
		},
		{
			name:    "paternal without anchor",
			def:     BranchDefinition{Type: BranchPaternal},
			wantErr: true,
		},
		{
			name:     "descendant without child",
			def:      BranchDefinition{Type: BranchDescendant, AnchorID: id("P")},
			wantErr:  true,
			notFound: true,
		},
		{
			name:     "custom without ancestor",
			def:      BranchDefinition{Type: BranchCustom, AnchorID: id("P")},
			wantErr:  true,
			notFound: true,
		},
		{
			name:    "unknown type",
			def:     BranchDefinition{Type: BranchType("sideways"), AnchorID: id("P")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.notFound {
				assert.True(t, pkgerrors.IsNotFound(err))
			} else {
				assert.True(t, pkgerrors.IsValidation(err))
			}
		})
	}
}

func TestExtractPaternalBranch(t *testing.T) {
	tree := buildSampleTree(t)
	extractor := NewBranchExtractor()

	result, err := extractor.Extract(tree, BranchDefinition{
		Type:     BranchPaternal,
		AnchorID: id("P"),
	}, DefaultExtractOptions())
	require.NoError(t, err)

	// The anchor itself is never a member; the father always is
	assert.False(t, result.Contains(id("P")))
	assert.True(t, result.Contains(id("F")))
	assert.True(t, result.Contains(id("PGF")))
	assert.True(t, result.Contains(id("PGM")))
	assert.Equal(t, 3, result.Size())

	// Last person the upward walk reached
	assert.Equal(t, id("PGM"), result.BranchRoot)
	assert.Equal(t, 2, result.GenerationDepth)

	// F's child P is outside the branch
	assert.Equal(t, []BoundaryCategory{BoundaryDescendants}, result.Boundaries[id("F")])
	_, ok := result.Boundaries[id("PGF")]
	assert.False(t, ok)
}

func TestExtractMaternalBranch(t *testing.T) {
	tree := buildSampleTree(t)

	result, err := NewBranchExtractor().Extract(tree, BranchDefinition{
		Type:     BranchMaternal,
		AnchorID: id("P"),
	}, DefaultExtractOptions())
	require.NoError(t, err)

	assert.True(t, result.Contains(id("M")))
	assert.True(t, result.Contains(id("MGF")))
	assert.Equal(t, 2, result.Size())
	assert.Equal(t, id("MGF"), result.BranchRoot)
}

func TestExtractAncestryRespectsMaxGenerations(t *testing.T) {
	tree := buildSampleTree(t)

	result, err := NewBranchExtractor().Extract(tree, BranchDefinition{
		Type:           BranchPaternal,
		AnchorID:       id("P"),
		MaxGenerations: 1,
	}, DefaultExtractOptions())
	require.NoError(t, err)

	// The father sits at the cutoff depth and stays; the grandparents are
	// past it and are never enqueued
	assert.Equal(t, 1, result.Size())
	assert.True(t, result.Contains(id("F")))
	assert.Equal(t, id("F"), result.BranchRoot)
	assert.Equal(t, 1, result.GenerationDepth)
}

func TestExtractDescendantBranch(t *testing.T) {
	tree := buildSampleTree(t)

	result, err := NewBranchExtractor().Extract(tree, BranchDefinition{
		Type:     BranchDescendant,
		AnchorID: id("P"),
		ChildID:  id("C1"),
	}, DefaultExtractOptions())
	require.NoError(t, err)

	assert.True(t, result.Contains(id("C1")))
	assert.True(t, result.Contains(id("G1")))
	assert.False(t, result.Contains(id("C2")))

	// Descendant branches root at the seed child
	assert.Equal(t, id("C1"), result.BranchRoot)
	assert.Equal(t, 1, result.GenerationDepth)

	// C1's father is the anchor, outside the branch
	assert.Equal(t, []BoundaryCategory{BoundaryPaternal}, result.Boundaries[id("C1")])
}

func TestExtractCustomBranch(t *testing.T) {
	tree := buildSampleTree(t)

	result, err := NewBranchExtractor().Extract(tree, BranchDefinition{
		Type:       BranchCustom,
		AnchorID:   id("P"),
		AncestorID: id("F"),
	}, DefaultExtractOptions())
	require.NoError(t, err)

	// The target ancestor's own line, rooted at the ancestor itself
	assert.True(t, result.Contains(id("F")))
	assert.True(t, result.Contains(id("PGF")))
	assert.True(t, result.Contains(id("PGM")))
	assert.Equal(t, id("F"), result.BranchRoot)
	assert.Equal(t, 1, result.GenerationDepth)
}

func TestExtractMissingAnchorYieldsEmptyResult(t *testing.T) {
	tree := buildSampleTree(t)

	result, err := NewBranchExtractor().Extract(tree, BranchDefinition{
		Type:     BranchPaternal,
		AnchorID: id("@I404@"),
	}, DefaultExtractOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Size())
	assert.True(t, result.BranchRoot.IsZero())
	assert.Empty(t, result.Boundaries)
}

func TestExtractAnchorWithoutFatherYieldsEmptyResult(t *testing.T) {
	root, err := entities.NewPerson(id("A"), "A")
	require.NoError(t, err)
	tree, err := aggregates.NewFamilyTree(root)
	require.NoError(t, err)

	result, err := NewBranchExtractor().Extract(tree, BranchDefinition{
		Type:     BranchPaternal,
		AnchorID: id("A"),
	}, DefaultExtractOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Size())
}

func TestExtractIncludesSpouses(t *testing.T) {
	root, err := entities.NewPerson(id("A"), "A")
	require.NoError(t, err)
	tree, err := aggregates.NewFamilyTree(root)
	require.NoError(t, err)
	spouse, err := entities.NewPerson(id("B"), "B")
	require.NoError(t, err)
	require.NoError(t, tree.AddPerson(spouse))
	tree.ConnectSpouses(id("A"), id("B"))

	extractor := NewBranchExtractor()
	def := BranchDefinition{Type: BranchCustom, AnchorID: id("A"), AncestorID: id("A")}

	withSpouses, err := extractor.Extract(tree, def, ExtractOptions{IncludeSpouses: true, DetectBoundaries: true})
	require.NoError(t, err)
	assert.True(t, withSpouses.Contains(id("B")))
	assert.Empty(t, withSpouses.Boundaries)

	withoutSpouses, err := extractor.Extract(tree, def, ExtractOptions{IncludeSpouses: false, DetectBoundaries: true})
	require.NoError(t, err)
	assert.False(t, withoutSpouses.Contains(id("B")))
	assert.Equal(t, []BoundaryCategory{BoundarySpouseFamily}, withoutSpouses.Boundaries[id("A")])
}

func TestMemberOrderSpousesAppended(t *testing.T) {
	tree := buildSampleTree(t)

	result, err := NewBranchExtractor().Extract(tree, BranchDefinition{
		Type:     BranchDescendant,
		AnchorID: id("P"),
		ChildID:  id("C1"),
	}, DefaultExtractOptions())
	require.NoError(t, err)

	assert.Equal(t, []valueobjects.CrID{id("C1"), id("G1")}, result.MemberOrder())
}

func TestDeriveSubBranches(t *testing.T) {
	tree := buildSampleTree(t)
	extractor := NewBranchExtractor()

	def := BranchDefinition{
		Type:           BranchDescendant,
		AnchorID:       id("P"),
		ChildID:        id("C1"),
		Label:          "First Child Descendants",
		MaxGenerations: 4,
	}
	result, err := extractor.Extract(tree, def, DefaultExtractOptions())
	require.NoError(t, err)

	derived := extractor.DeriveSubBranches(tree, def, result)

	// C1 has a father in the tree but no recorded mother
	require.Len(t, derived, 1)
	assert.Equal(t, BranchPaternal, derived[0].Type)
	assert.Equal(t, id("C1"), derived[0].AnchorID)
	assert.Equal(t, "First Child Descendants - Paternal", derived[0].Label)
	assert.Equal(t, 4, derived[0].MaxGenerations)
}

func TestDeriveSubBranchesEmptyResult(t *testing.T) {
	tree := buildSampleTree(t)
	extractor := NewBranchExtractor()

	assert.Nil(t, extractor.DeriveSubBranches(tree, BranchDefinition{}, &BranchExtractionResult{}))
	assert.Nil(t, extractor.DeriveSubBranches(nil, BranchDefinition{}, nil))
}
