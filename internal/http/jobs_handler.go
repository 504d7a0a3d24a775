package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"membership-system/internal/expiry"
	"membership-system/internal/platform/apperr"
)

const jobUserExpiry = "user-expiry"

type jobStatus struct {
	Name     string            `json:"name"`
	Running  bool              `json:"running"`
	Interval string            `json:"interval"`
	LastRun  *expiry.RunReport `json:"last_run,omitempty"`
}

func (h *Handler) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []jobStatus{
		{
			Name:     jobUserExpiry,
			Running:  h.mgr.Running(),
			Interval: h.interval.String(),
			LastRun:  h.mgr.LastReport(),
		},
	})
}

// handleRunJob triggers a job synchronously and returns its report, so
// an operator poking the endpoint sees exactly what the run did.
func (h *Handler) handleRunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != jobUserExpiry {
		errorResponse(w, apperr.NotFound("unknown_job", "unknown job: "+name, nil))
		return
	}

	report, err := h.mgr.Run(r.Context())
	if errors.Is(err, expiry.ErrRunInProgress) {
		errorResponse(w, apperr.Conflict("run_in_progress", "a run is already in progress", err))
		return
	}
	if err != nil {
		h.log.Error("manual expiry run failed", "error", err)
		errorResponse(w, apperr.Internal("run_failed", "expiry run failed", err))
		return
	}

	writeJSON(w, http.StatusOK, report)
}
