package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/folio/internal/scheduler"
	"github.com/wonny/folio/pkg/logger"
)

// historyLimit 잡 상세 조회 시 반환할 최근 실행 기록 수
const historyLimit = 20

// JobHandler handles scheduled job status endpoints
type JobHandler struct {
	scheduler *scheduler.Scheduler
	logger    *logger.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(sched *scheduler.Scheduler, log *logger.Logger) *JobHandler {
	return &JobHandler{
		scheduler: sched,
		logger:    log,
	}
}

// ListJobs returns execution statistics for all registered jobs
// GET /api/jobs
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	stats := h.scheduler.Stats()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(stats),
		"jobs":  stats,
	})
}

// GetJobHistory returns recent execution results for a job
// GET /api/jobs/{name}
func (h *JobHandler) GetJobHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	results, err := h.scheduler.History(name, historyLimit)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job":     name,
		"count":   len(results),
		"results": results,
	})
}

// RunJob triggers a job immediately, outside its schedule
// POST /api/jobs/{name}/run
func (h *JobHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.scheduler.RunNow(name); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.WithField("job", name).Info("Job triggered via API")

	respondJSON(w, http.StatusAccepted, map[string]string{
		"job":    name,
		"status": "triggered",
	})
}
