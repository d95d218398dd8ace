package services

import (
	"time"

	"go.uber.org/zap"

	"lineage-backend/domain/canvas"
	"lineage-backend/domain/config"
	"lineage-backend/domain/core/aggregates"
	"lineage-backend/domain/core/valueobjects"
	domainservices "lineage-backend/domain/services"
)

// GenerationSplitOptions configures a split by generation ranges
type GenerationSplitOptions struct {
	Direction            valueobjects.TraversalDirection
	GenerationsPerCanvas int
	// Ranges, when non-empty, overrides range construction with a
	// caller-supplied list
	Ranges []valueobjects.GenerationRange
	// DropEmptyRanges removes ranges no person falls into; previews keep
	// them
	DropEmptyRanges bool
	// BaseName feeds the {name} token of generated canvas names
	BaseName string
}

// DefaultGenerationSplitOptions returns the standard generation split
func DefaultGenerationSplitOptions() GenerationSplitOptions {
	cfg := config.DefaultDomainConfig()
	return GenerationSplitOptions{
		Direction:            valueobjects.DirectionUp,
		GenerationsPerCanvas: cfg.DefaultGenerationsPerCanvas,
		DropEmptyRanges:      true,
	}
}

// GenerationSplitResult is a complete generation decomposition
type GenerationSplitResult struct {
	Assignment     *domainservices.GenerationAssignment          `json:"assignment"`
	Ranges         []valueobjects.GenerationRange                `json:"ranges"`
	PeopleByRange  map[string][]valueobjects.CrID                `json:"peopleByRange"`
	BoundaryPeople map[valueobjects.CrID][]string                `json:"boundaryPeople"`
	CanvasNames    map[string]string                             `json:"canvasNames"`
}

// BranchSplitOptions configures a split into lineage branches
type BranchSplitOptions struct {
	Extract domainservices.ExtractOptions
	// RecursionDepth is how many levels of paternal/maternal sub-branches
	// to derive from each completed branch's root. The orchestrator
	// decrements the budget; the extractor never recurses on its own.
	RecursionDepth int
	// BaseName feeds the {name} token of generated canvas names
	BaseName string
}

// DefaultBranchSplitOptions returns a non-recursive branch split
func DefaultBranchSplitOptions() BranchSplitOptions {
	return BranchSplitOptions{
		Extract:        domainservices.DefaultExtractOptions(),
		RecursionDepth: 0,
	}
}

// BranchCanvas pairs one extracted branch with its definition and target
// canvas name
type BranchCanvas struct {
	Definition domainservices.BranchDefinition        `json:"definition"`
	Result     *domainservices.BranchExtractionResult `json:"result"`
	CanvasName string                                 `json:"canvasName"`
}

// BranchSplitResult is a complete branch decomposition, root branches
// first followed by derived sub-branches in unfolding order
type BranchSplitResult struct {
	Branches []BranchCanvas `json:"branches"`
}

// SplitOrchestrator composes the generation assigner with the range
// partitioner, or drives the branch extractor through its bounded
// recursive unfolding, to turn one family tree into a set of linked
// canvas-sized sub-graphs.
type SplitOrchestrator struct {
	assigner    *domainservices.GenerationAssigner
	partitioner *domainservices.RangePartitioner
	extractor   *domainservices.BranchExtractor
	namer       *canvas.CanvasNamer
	cfg         *config.DomainConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewSplitOrchestrator creates an orchestrator over fresh domain services
func NewSplitOrchestrator(cfg *config.DomainConfig, logger *zap.Logger) *SplitOrchestrator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SplitOrchestrator{
		assigner:    domainservices.NewGenerationAssigner(),
		partitioner: domainservices.NewRangePartitioner(),
		extractor:   domainservices.NewBranchExtractor(),
		namer:       canvas.NewCanvasNamer(cfg.DefaultCanvasPattern),
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the time source used for canvas names. Intended for
// tests.
func (s *SplitOrchestrator) WithClock(now func() time.Time) *SplitOrchestrator {
	s.now = now
	return s
}

// SplitByGenerations assigns generations, builds (or normalizes) the
// range list, buckets every person, finds boundary people and names one
// canvas per surviving range.
func (s *SplitOrchestrator) SplitByGenerations(tree *aggregates.FamilyTree, opts GenerationSplitOptions) *GenerationSplitResult {
	if !opts.Direction.IsValid() {
		opts.Direction = valueobjects.DirectionUp
	}
	if opts.GenerationsPerCanvas < 1 {
		opts.GenerationsPerCanvas = s.cfg.DefaultGenerationsPerCanvas
	}
	if opts.GenerationsPerCanvas > s.cfg.MaxGenerationsPerCanvas {
		opts.GenerationsPerCanvas = s.cfg.MaxGenerationsPerCanvas
	}

	assignment := s.assigner.Assign(tree, opts.Direction)

	var ranges []valueobjects.GenerationRange
	if len(opts.Ranges) > 0 {
		ranges = s.partitioner.NormalizeRanges(opts.Ranges)
	} else {
		ranges = s.partitioner.BuildRanges(assignment.Bounds, opts.GenerationsPerCanvas)
	}
	if opts.DropEmptyRanges {
		ranges = s.partitioner.NonEmptyRanges(assignment, ranges)
	}

	result := &GenerationSplitResult{
		Assignment:     assignment,
		Ranges:         ranges,
		PeopleByRange:  make(map[string][]valueobjects.CrID),
		BoundaryPeople: s.partitioner.FindBoundaryPeople(tree, assignment, ranges),
		CanvasNames:    make(map[string]string),
	}

	baseName := opts.BaseName
	if baseName == "" && tree != nil && tree.Root() != nil {
		baseName = tree.Root().Name()
	}

	date := s.now()
	for _, r := range ranges {
		people := s.partitioner.PeopleInRange(assignment, r)
		result.PeopleByRange[r.Label] = people
		assignment.ByRange[r.Label] = people
		result.CanvasNames[r.Label] = s.namer.FileName(baseName+" "+r.Label, "generations", date)
	}

	s.logger.Info("Split tree by generations",
		zap.String("direction", string(opts.Direction)),
		zap.Int("people", len(assignment.Generations)),
		zap.Int("ranges", len(ranges)),
		zap.Int("boundaryPeople", len(result.BoundaryPeople)),
	)

	return result
}

// SplitByBranches extracts every given branch definition, then unfolds
// paternal/maternal sub-branches from each branch root until the
// recursion budget runs out. The unfolding is an iterative queue, not
// recursion, so deep trees cannot exhaust the stack.
func (s *SplitOrchestrator) SplitByBranches(tree *aggregates.FamilyTree, defs []domainservices.BranchDefinition, opts BranchSplitOptions) (*BranchSplitResult, error) {
	if opts.RecursionDepth > s.cfg.MaxBranchRecursion {
		opts.RecursionDepth = s.cfg.MaxBranchRecursion
	}

	type pendingBranch struct {
		def    domainservices.BranchDefinition
		budget int
	}

	queue := make([]pendingBranch, 0, len(defs))
	for _, def := range defs {
		queue = append(queue, pendingBranch{def: def, budget: opts.RecursionDepth})
	}

	result := &BranchSplitResult{Branches: []BranchCanvas{}}
	date := s.now()

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		extraction, err := s.extractor.Extract(tree, current.def, opts.Extract)
		if err != nil {
			return nil, err
		}

		name := s.namer.FileName(branchCanvasBase(opts.BaseName, current.def), "branch", date)
		result.Branches = append(result.Branches, BranchCanvas{
			Definition: current.def,
			Result:     extraction,
			CanvasName: name,
		})

		if current.budget > 0 {
			for _, derived := range s.extractor.DeriveSubBranches(tree, current.def, extraction) {
				queue = append(queue, pendingBranch{def: derived, budget: current.budget - 1})
			}
		}
	}

	s.logger.Info("Split tree by branches",
		zap.Int("requested", len(defs)),
		zap.Int("produced", len(result.Branches)),
		zap.Int("recursionDepth", opts.RecursionDepth),
	)

	return result, nil
}

// DefaultBranchPlan builds the standard decomposition around an anchor:
// the paternal and maternal ancestries plus one descendant branch per
// child of the anchor.
func (s *SplitOrchestrator) DefaultBranchPlan(tree *aggregates.FamilyTree, anchorID valueobjects.CrID) []domainservices.BranchDefinition {
	if tree == nil {
		return nil
	}
	anchor := tree.Person(anchorID)
	if anchor == nil {
		return nil
	}

	anchorName := anchor.Name()
	if anchorName == "" {
		anchorName = anchorID.String()
	}

	var defs []domainservices.BranchDefinition
	defs = append(defs,
		domainservices.BranchDefinition{
			Type:           domainservices.BranchPaternal,
			AnchorID:       anchorID,
			Label:          anchorName + " Paternal",
			MaxGenerations: s.cfg.DefaultMaxGenerations,
		},
		domainservices.BranchDefinition{
			Type:           domainservices.BranchMaternal,
			AnchorID:       anchorID,
			Label:          anchorName + " Maternal",
			MaxGenerations: s.cfg.DefaultMaxGenerations,
		},
	)

	for _, childID := range anchor.ChildIDs() {
		if !tree.Contains(childID) {
			continue
		}
		childName := childID.String()
		if child := tree.Person(childID); child != nil && child.Name() != "" {
			childName = child.Name()
		}
		defs = append(defs, domainservices.BranchDefinition{
			Type:           domainservices.BranchDescendant,
			AnchorID:       anchorID,
			ChildID:        childID,
			Label:          childName + " Descendants",
			MaxGenerations: s.cfg.DefaultMaxGenerations,
		})
	}

	return defs
}

func branchCanvasBase(baseName string, def domainservices.BranchDefinition) string {
	if def.Label != "" {
		if baseName != "" {
			return baseName + " " + def.Label
		}
		return def.Label
	}
	if baseName != "" {
		return baseName
	}
	return def.AnchorID.String() + " " + string(def.Type)
}
