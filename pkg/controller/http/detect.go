package http

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DetectHandler serves the ledger status and the async detection trigger.
type DetectHandler struct {
	detectionUC interfaces.DetectionUseCase
	running     atomic.Bool
}

// NewDetectHandler creates a new DetectHandler
func NewDetectHandler(detectionUC interfaces.DetectionUseCase) *DetectHandler {
	return &DetectHandler{
		detectionUC: detectionUC,
	}
}

// Status returns a read-only summary of the persisted ledger.
func (h *DetectHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	status, err := h.detectionUC.Status(ctx)
	if err != nil {
		logger.Error("Failed to load ledger status", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Trigger starts a detection run in the background and responds 202 with a
// run ID. Runs are serialized: a second trigger while one is active gets a
// 409, since the ledger assumes a single active invocation.
func (h *DetectHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if !h.running.CompareAndSwap(false, true) {
		writeError(w, goerr.New("a detection run is already in progress"), http.StatusConflict)
		return
	}

	runID := async.Dispatch(r.Context(), "", func(ctx context.Context) error {
		defer h.running.Store(false)

		result, err := h.detectionUC.Detect(ctx)
		if err != nil {
			return err
		}

		ctxlog.From(ctx).Info("Triggered detection run finished",
			"has_new", result.HasNew,
			"new_releases", len(result.NewReleases),
			"matrix_jobs", len(result.Matrix.Include),
		)
		return nil
	})

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"run_id": runID,
	})
}
