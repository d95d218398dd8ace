package services

import (
	"fmt"
	"sort"

	"lineage-backend/domain/core/aggregates"
	"lineage-backend/domain/core/valueobjects"
)

// GenerationSide distinguishes which half of the numbering a label
// describes. Labels drop the sign, so the side only documents intent.
type GenerationSide string

const (
	SideAncestors   GenerationSide = "ancestors"
	SideDescendants GenerationSide = "descendants"
)

// RangePartitioner slices a generation assignment into labeled ranges and
// answers range-membership, boundary-person and crossing-edge queries.
type RangePartitioner struct{}

// NewRangePartitioner creates a new range partitioner
func NewRangePartitioner() *RangePartitioner {
	return &RangePartitioner{}
}

// BuildRanges covers [0, bounds.Max] walking upward in steps of
// generationsPerCanvas, then covers the negative side walking away from
// zero with ranges prepended, so the returned list is sorted ascending by
// Start. A non-positive step is coerced to 1.
func (s *RangePartitioner) BuildRanges(bounds valueobjects.GenerationBounds, generationsPerCanvas int) []valueobjects.GenerationRange {
	if generationsPerCanvas < 1 {
		generationsPerCanvas = 1
	}

	var ranges []valueobjects.GenerationRange

	// Ancestor side, generation zero first
	for start := 0; start <= bounds.Max; start += generationsPerCanvas {
		end := start + generationsPerCanvas - 1
		if end > bounds.Max {
			end = bounds.Max
		}
		ranges = append(ranges, valueobjects.GenerationRange{
			Start: start,
			End:   end,
			Label: FormatGenerationLabel(start, end, SideAncestors),
		})
	}

	// Descendant side, walking away from zero but prepending so the list
	// stays sorted
	for end := -1; end >= bounds.Min; end -= generationsPerCanvas {
		start := end - generationsPerCanvas + 1
		if start < bounds.Min {
			start = bounds.Min
		}
		r := valueobjects.GenerationRange{
			Start: start,
			End:   end,
			Label: FormatGenerationLabel(start, end, SideDescendants),
		}
		ranges = append([]valueobjects.GenerationRange{r}, ranges...)
	}

	return ranges
}

// NormalizeRanges prepares a caller-supplied range list: spans are
// reordered so Start <= End, the list is sorted ascending by Start and
// missing labels are filled in.
func (s *RangePartitioner) NormalizeRanges(ranges []valueobjects.GenerationRange) []valueobjects.GenerationRange {
	normalized := make([]valueobjects.GenerationRange, len(ranges))
	copy(normalized, ranges)

	for i := range normalized {
		if normalized[i].Start > normalized[i].End {
			normalized[i].Start, normalized[i].End = normalized[i].End, normalized[i].Start
		}
		if normalized[i].Label == "" {
			side := SideAncestors
			if normalized[i].End < 0 {
				side = SideDescendants
			}
			normalized[i].Label = FormatGenerationLabel(normalized[i].Start, normalized[i].End, side)
		}
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Start < normalized[j].Start
	})

	return normalized
}

// FormatGenerationLabel derives the display label for a generation span.
// Signs are dropped, so the label reads the same on either side of the
// root.
func FormatGenerationLabel(start, end int, side GenerationSide) string {
	if start == 0 && end == 0 {
		return "Root"
	}
	if start == end {
		return fmt.Sprintf("Gen %d", abs(start))
	}
	if start == 0 || end == 0 {
		n := abs(start)
		if abs(end) > n {
			n = abs(end)
		}
		return fmt.Sprintf("Root to Gen %d", n)
	}

	a, b := abs(start), abs(end)
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("Gen %d-%d", a, b)
}

// PeopleInRange returns the people whose generation falls inside the
// range, in BFS visit order
func (s *RangePartitioner) PeopleInRange(assignment *GenerationAssignment, r valueobjects.GenerationRange) []valueobjects.CrID {
	if assignment == nil {
		return nil
	}

	var people []valueobjects.CrID
	for _, id := range assignment.VisitOrder() {
		if r.Contains(assignment.Generations[id]) {
			people = append(people, id)
		}
	}
	return people
}

// NonEmptyRanges drops ranges no assigned person falls into. Empty ranges
// are retained for previews and counts but never materialize a canvas.
func (s *RangePartitioner) NonEmptyRanges(assignment *GenerationAssignment, ranges []valueobjects.GenerationRange) []valueobjects.GenerationRange {
	var kept []valueobjects.GenerationRange
	for _, r := range ranges {
		if len(s.PeopleInRange(assignment, r)) > 0 {
			kept = append(kept, r)
		}
	}
	return kept
}

// FindBoundaryPeople locates every person sitting on a range edge with a
// directly connected parent or child in a different range. Spouses are
// co-generational and excluded from this check. The result maps each
// boundary person to the deduplicated labels of the adjacent ranges their
// relatives reach.
func (s *RangePartitioner) FindBoundaryPeople(
	tree *aggregates.FamilyTree,
	assignment *GenerationAssignment,
	ranges []valueobjects.GenerationRange,
) map[valueobjects.CrID][]string {
	boundaries := make(map[valueobjects.CrID][]string)
	if tree == nil || assignment == nil {
		return boundaries
	}

	for _, id := range assignment.VisitOrder() {
		person := tree.Person(id)
		if person == nil {
			continue
		}

		generation := assignment.Generations[id]
		home := rangeContaining(ranges, generation)
		if home == nil || (generation != home.Start && generation != home.End) {
			continue
		}

		seen := make(map[string]bool)
		relatives := append(person.ParentIDs(), person.ChildIDs()...)
		for _, relativeID := range relatives {
			relativeGen, ok := assignment.GenerationOf(relativeID)
			if !ok {
				continue
			}
			other := rangeContaining(ranges, relativeGen)
			if other == nil || other.Label == home.Label || seen[other.Label] {
				continue
			}
			seen[other.Label] = true
			boundaries[id] = append(boundaries[id], other.Label)
		}
	}

	return boundaries
}

// CrossingEdges returns the relationship edges with one endpoint's
// generation in range a and the other endpoint's in range b, in either
// orientation.
func (s *RangePartitioner) CrossingEdges(
	tree *aggregates.FamilyTree,
	assignment *GenerationAssignment,
	a, b valueobjects.GenerationRange,
) []aggregates.RelationshipEdge {
	if tree == nil || assignment == nil {
		return nil
	}

	var crossing []aggregates.RelationshipEdge
	for _, edge := range tree.Edges() {
		fromGen, fromOK := assignment.GenerationOf(edge.From)
		toGen, toOK := assignment.GenerationOf(edge.To)
		if !fromOK || !toOK {
			continue
		}

		if (a.Contains(fromGen) && b.Contains(toGen)) || (b.Contains(fromGen) && a.Contains(toGen)) {
			crossing = append(crossing, edge)
		}
	}
	return crossing
}

func rangeContaining(ranges []valueobjects.GenerationRange, generation int) *valueobjects.GenerationRange {
	for i := range ranges {
		if ranges[i].Contains(generation) {
			return &ranges[i]
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
