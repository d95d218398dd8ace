package config

// DomainConfig holds all configurable business rules and constraints for
// the decomposition engine
type DomainConfig struct {
	// Generation partitioning
	DefaultGenerationsPerCanvas int
	MaxGenerationsPerCanvas     int

	// Branch extraction
	DefaultMaxGenerations int // 0 means unbounded
	MaxBranchRecursion    int
	IncludeSpouses        bool

	// Navigation node geometry
	PortalNodeWidth       float64
	PortalNodeHeight      float64
	PlaceholderNodeWidth  float64
	PlaceholderNodeHeight float64
	LinkNodeWidth         float64
	LinkNodeHeight        float64

	// Canvas styling
	NavigationEdgeColor string
	PortalNodeColor     string

	// Canvas naming
	DefaultCanvasPattern string
}

// DefaultDomainConfig returns the default domain configuration.
// Every field is set explicitly so partial construction can never drop a
// nested default.
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Generation partitioning
		DefaultGenerationsPerCanvas: 3,
		MaxGenerationsPerCanvas:     10,

		// Branch extraction
		DefaultMaxGenerations: 0, // unbounded
		MaxBranchRecursion:    3,
		IncludeSpouses:        true,

		// Navigation node geometry
		PortalNodeWidth:       280,
		PortalNodeHeight:      120,
		PlaceholderNodeWidth:  260,
		PlaceholderNodeHeight: 100,
		LinkNodeWidth:         400,
		LinkNodeHeight:        300,

		// Canvas styling
		NavigationEdgeColor: "5",
		PortalNodeColor:     "5",

		// Canvas naming
		DefaultCanvasPattern: "{name}-{type}-{date}",
	}
}
