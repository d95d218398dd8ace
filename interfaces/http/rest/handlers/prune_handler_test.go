package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lineage-backend/application/services"
	"lineage-backend/domain/canvas"
	"lineage-backend/domain/config"
	"lineage-backend/pkg/common"
	pkgerrors "lineage-backend/pkg/errors"
	"lineage-backend/pkg/observability"
)

func newPruneHandler(t *testing.T) *PruneHandler {
	t.Helper()
	observability.ResetForTesting()
	logger := zap.NewNop()
	return NewPruneHandler(
		services.NewCanvasPruneService(canvas.SequentialGenerator("new"), config.DefaultDomainConfig(), logger),
		pkgerrors.NewErrorHandler(logger, true),
		observability.NewCollector("test"),
		logger,
	)
}

func sampleCanvas() canvas.CanvasData {
	return canvas.CanvasData{
		Nodes: []canvas.CanvasNode{
			{ID: "A", Type: canvas.NodeTypeFile, File: "People/@I1@.md", X: 0, Y: 0, Width: 100, Height: 100},
			{ID: "B", Type: canvas.NodeTypeFile, File: "People/@I2@.md", X: 200, Y: 0, Width: 100, Height: 100},
		},
		Edges: []canvas.CanvasEdge{
			{ID: "e1", FromNode: "A", FromSide: canvas.SideRight, ToNode: "B", ToSide: canvas.SideLeft},
		},
	}
}

func decodePruneResponse(t *testing.T, body []byte) PruneResponse {
	t.Helper()
	var response common.APIResponse
	require.NoError(t, json.Unmarshal(body, &response))
	require.True(t, response.Success)

	payload, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result PruneResponse
	require.NoError(t, json.Unmarshal(payload, &result))
	return result
}

func TestPruneEndpointByNodeID(t *testing.T) {
	handler := newPruneHandler(t)

	recorder := postJSON(t, handler.Prune, PruneRequest{
		Canvas:            sampleCanvas(),
		NodeIDs:           []string{"B"},
		AddNavigationNode: true,
		TargetCanvas:      "gen-2.canvas",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	result := decodePruneResponse(t, recorder.Body.Bytes())

	require.Len(t, result.Result.RemovedNodes, 1)
	assert.Equal(t, "B", result.Result.RemovedNodes[0].ID)
	require.NotNil(t, result.Result.NavigationNode)
	assert.Equal(t, []string{"A"}, result.Result.AffectedNodes)

	// The returned canvas is the mutated one: survivor plus portal
	require.Len(t, result.Canvas.Nodes, 2)
	assert.Equal(t, "A", result.Canvas.Nodes[0].ID)
	require.Len(t, result.Canvas.Edges, 1)
	assert.Equal(t, "A", result.Canvas.Edges[0].FromNode)
}

func TestPruneEndpointByCrID(t *testing.T) {
	handler := newPruneHandler(t)

	recorder := postJSON(t, handler.Prune, PruneRequest{
		Canvas: sampleCanvas(),
		CrIDs:  []string{"@I2@"},
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	result := decodePruneResponse(t, recorder.Body.Bytes())

	require.Len(t, result.Result.RemovedNodes, 1)
	assert.Equal(t, "B", result.Result.RemovedNodes[0].ID)
}

func TestPruneEndpointRejectsBothSelectors(t *testing.T) {
	handler := newPruneHandler(t)

	recorder := postJSON(t, handler.Prune, PruneRequest{
		Canvas:  sampleCanvas(),
		NodeIDs: []string{"A"},
		CrIDs:   []string{"@I2@"},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPruneEndpointEmptySelectionIsNoOp(t *testing.T) {
	handler := newPruneHandler(t)

	recorder := postJSON(t, handler.Prune, PruneRequest{Canvas: sampleCanvas()})

	require.Equal(t, http.StatusOK, recorder.Code)
	result := decodePruneResponse(t, recorder.Body.Bytes())
	assert.Empty(t, result.Result.RemovedNodes)
	assert.Len(t, result.Canvas.Nodes, 2)
}

func TestPruneEndpointRejectsBadDirection(t *testing.T) {
	handler := newPruneHandler(t)

	recorder := postJSON(t, handler.Prune, PruneRequest{
		Canvas:    sampleCanvas(),
		NodeIDs:   []string{"B"},
		Direction: "diagonal",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
