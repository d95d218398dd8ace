package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"lineage-backend/application/services"
	"lineage-backend/domain/canvas"
	"lineage-backend/domain/core/valueobjects"
	"lineage-backend/pkg/common"
	pkgerrors "lineage-backend/pkg/errors"
	"lineage-backend/pkg/observability"
	"lineage-backend/pkg/utils"
)

// PruneHandler exposes canvas pruning over HTTP
type PruneHandler struct {
	pruner       *services.CanvasPruneService
	errorHandler *pkgerrors.ErrorHandler
	metrics      *observability.Collector
	logger       *zap.Logger
}

// NewPruneHandler creates a new prune handler
func NewPruneHandler(
	pruner *services.CanvasPruneService,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *PruneHandler {
	return &PruneHandler{
		pruner:       pruner,
		errorHandler: errorHandler,
		metrics:      metrics,
		logger:       logger,
	}
}

// PruneRequest asks for a subset of canvas nodes to be removed. Exactly
// one of NodeIDs or CrIDs selects the nodes; CrIDs match file nodes whose
// file name is the CR-ID.
type PruneRequest struct {
	Canvas            canvas.CanvasData `json:"canvas" validate:"required"`
	NodeIDs           []string          `json:"nodeIds,omitempty"`
	CrIDs             []string          `json:"crIds,omitempty"`
	AddNavigationNode bool              `json:"addNavigationNode,omitempty"`
	TargetCanvas      string            `json:"targetCanvas,omitempty"`
	Direction         string            `json:"direction,omitempty" validate:"omitempty,oneof=up down left right"`
	Label             string            `json:"label,omitempty"`
	Info              string            `json:"info,omitempty"`
}

// PruneResponse pairs the mutated canvas with the prune report
type PruneResponse struct {
	Canvas *canvas.CanvasData    `json:"canvas"`
	Result *services.PruneResult `json:"result"`
}

// Prune handles POST /api/v1/canvas/prune
func (h *PruneHandler) Prune(w http.ResponseWriter, r *http.Request) {
	var req PruneRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}
	if len(req.NodeIDs) > 0 && len(req.CrIDs) > 0 {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("nodeIds and crIds are mutually exclusive"))
		return
	}

	opts := services.PruneOptions{
		AddNavigationNode: req.AddNavigationNode,
		TargetCanvas:      req.TargetCanvas,
		Direction:         canvas.NavDirection(req.Direction),
		Label:             req.Label,
		Info:              req.Info,
	}

	data := req.Canvas
	var result *services.PruneResult
	if len(req.CrIDs) > 0 {
		crIDs := make([]valueobjects.CrID, 0, len(req.CrIDs))
		for _, raw := range req.CrIDs {
			id, err := valueobjects.NewCrID(raw)
			if err != nil {
				h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("crIds entries must be non-empty"))
				return
			}
			crIDs = append(crIDs, id)
		}
		result = h.pruner.PruneNodesByCrID(&data, crIDs, opts)
	} else {
		result = h.pruner.PruneNodes(&data, req.NodeIDs, opts)
	}

	h.metrics.Prunes.Inc()
	h.metrics.PrunedNodes.Add(float64(len(result.RemovedNodes)))

	common.RespondJSON(w, http.StatusOK, PruneResponse{Canvas: &data, Result: result})
}
