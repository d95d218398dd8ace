package valueobjects

// TraversalDirection controls the sign convention of generation numbering.
// With DirectionUp ancestors move away from generation zero in the positive
// sense; with DirectionDown descendants do.
type TraversalDirection string

const (
	DirectionUp   TraversalDirection = "up"
	DirectionDown TraversalDirection = "down"
)

// IsValid checks whether the direction is one of the two known values
func (d TraversalDirection) IsValid() bool {
	return d == DirectionUp || d == DirectionDown
}

// ParentOffset returns the generation offset applied when stepping from a
// person to a parent. Children always move by the opposite offset and
// spouses stay co-generational.
func (d TraversalDirection) ParentOffset() int {
	if d == DirectionDown {
		return -1
	}
	return 1
}

// GenerationBounds holds the observed minimum and maximum generation
// numbers of an assignment. An assignment over an empty tree has {0, 0}.
type GenerationBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GenerationRange is an inclusive, contiguous span of generations carrying
// a display label. Ranges within one partition never overlap.
type GenerationRange struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Contains reports whether the generation falls inside the range
func (r GenerationRange) Contains(generation int) bool {
	return generation >= r.Start && generation <= r.End
}

// Span returns the number of generations covered by the range
func (r GenerationRange) Span() int {
	return r.End - r.Start + 1
}
