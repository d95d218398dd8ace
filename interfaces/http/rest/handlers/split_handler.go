package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"lineage-backend/application/services"
	"lineage-backend/domain/core/valueobjects"
	domainservices "lineage-backend/domain/services"
	"lineage-backend/pkg/common"
	pkgerrors "lineage-backend/pkg/errors"
	"lineage-backend/pkg/observability"
	"lineage-backend/pkg/utils"
)

const maxRequestBody = 4 << 20 // 4 MiB of tree JSON is thousands of people

// SplitHandler exposes tree decomposition over HTTP
type SplitHandler struct {
	orchestrator *services.SplitOrchestrator
	errorHandler *pkgerrors.ErrorHandler
	metrics      *observability.Collector
	logger       *zap.Logger
}

// NewSplitHandler creates a new split handler
func NewSplitHandler(
	orchestrator *services.SplitOrchestrator,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *SplitHandler {
	return &SplitHandler{
		orchestrator: orchestrator,
		errorHandler: errorHandler,
		metrics:      metrics,
		logger:       logger,
	}
}

// GenerationSplitRequest asks for a decomposition by generation ranges
type GenerationSplitRequest struct {
	Tree                 FamilyTreeDTO                  `json:"tree" validate:"required"`
	Direction            string                         `json:"direction,omitempty" validate:"omitempty,oneof=up down"`
	GenerationsPerCanvas int                            `json:"generationsPerCanvas,omitempty" validate:"omitempty,min=1"`
	Ranges               []valueobjects.GenerationRange `json:"ranges,omitempty"`
	KeepEmptyRanges      bool                           `json:"keepEmptyRanges,omitempty"`
	BaseName             string                         `json:"baseName,omitempty"`
}

// SplitByGenerations handles POST /api/v1/split/generations
func (h *SplitHandler) SplitByGenerations(w http.ResponseWriter, r *http.Request) {
	var req GenerationSplitRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	tree, err := req.Tree.ToDomain()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	opts := services.DefaultGenerationSplitOptions()
	if req.Direction != "" {
		opts.Direction = valueobjects.TraversalDirection(req.Direction)
	}
	if req.GenerationsPerCanvas > 0 {
		opts.GenerationsPerCanvas = req.GenerationsPerCanvas
	}
	opts.Ranges = req.Ranges
	opts.DropEmptyRanges = !req.KeepEmptyRanges
	opts.BaseName = req.BaseName

	start := time.Now()
	result := h.orchestrator.SplitByGenerations(tree, opts)
	h.metrics.GenerationSplits.Inc()
	h.metrics.ObserveSplit("generations", time.Since(start))

	common.RespondJSON(w, http.StatusOK, result)
}

// BranchSplitRequest asks for a decomposition into lineage branches.
// With no definitions the default plan for the tree root is used.
type BranchSplitRequest struct {
	Tree             FamilyTreeDTO                     `json:"tree" validate:"required"`
	Definitions      []domainservices.BranchDefinition `json:"definitions,omitempty"`
	IncludeSpouses   *bool                             `json:"includeSpouses,omitempty"`
	DetectBoundaries *bool                             `json:"detectBoundaries,omitempty"`
	RecursionDepth   int                               `json:"recursionDepth,omitempty" validate:"omitempty,min=0,max=10"`
	BaseName         string                            `json:"baseName,omitempty"`
}

// SplitByBranches handles POST /api/v1/split/branches
func (h *SplitHandler) SplitByBranches(w http.ResponseWriter, r *http.Request) {
	var req BranchSplitRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	tree, err := req.Tree.ToDomain()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	defs := req.Definitions
	if len(defs) == 0 {
		defs = h.orchestrator.DefaultBranchPlan(tree, tree.RootID())
	}

	opts := services.DefaultBranchSplitOptions()
	if req.IncludeSpouses != nil {
		opts.Extract.IncludeSpouses = *req.IncludeSpouses
	}
	if req.DetectBoundaries != nil {
		opts.Extract.DetectBoundaries = *req.DetectBoundaries
	}
	opts.RecursionDepth = req.RecursionDepth
	opts.BaseName = req.BaseName

	start := time.Now()
	result, err := h.orchestrator.SplitByBranches(tree, defs, opts)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.metrics.BranchSplits.Inc()
	h.metrics.ObserveSplit("branches", time.Since(start))

	common.RespondJSON(w, http.StatusOK, result)
}
