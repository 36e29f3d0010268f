package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/scheduler"
	"github.com/wonny/folio/pkg/logger"
)

// signalJob 실행 시 채널로 알리는 테스트용 잡
type signalJob struct {
	name     string
	schedule string
	ran      chan struct{}
}

func (j *signalJob) Name() string     { return j.name }
func (j *signalJob) Schedule() string { return j.schedule }
func (j *signalJob) Run(ctx context.Context) error {
	close(j.ran)
	return nil
}

func newJobFixture(t *testing.T) (http.Handler, *signalJob) {
	t.Helper()

	sched := scheduler.New(logger.NewNop())
	job := &signalJob{
		name:     "price-refresh",
		schedule: "0 30 22 * * MON-FRI",
		ran:      make(chan struct{}),
	}
	require.NoError(t, sched.AddJob(job))

	h := NewJobHandler(sched, logger.NewNop())

	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", h.ListJobs).Methods("GET")
	router.HandleFunc("/api/jobs/{name}", h.GetJobHistory).Methods("GET")
	router.HandleFunc("/api/jobs/{name}/run", h.RunJob).Methods("POST")

	return router, job
}

func TestListJobs(t *testing.T) {
	router, _ := newJobFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int                           `json:"count"`
		Jobs  map[string]scheduler.JobStats `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)

	stats, ok := body.Jobs["price-refresh"]
	require.True(t, ok)
	assert.Equal(t, "0 30 22 * * MON-FRI", stats.Schedule)
	assert.Equal(t, 0, stats.TotalRuns)
	assert.Nil(t, stats.LastRun)
}

func TestGetJobHistory(t *testing.T) {
	router, _ := newJobFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/price-refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Job     string                `json:"job"`
		Count   int                   `json:"count"`
		Results []scheduler.JobResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "price-refresh", body.Job)
	assert.Equal(t, 0, body.Count)
	assert.Empty(t, body.Results)
}

func TestGetJobHistoryUnknownJob(t *testing.T) {
	router, _ := newJobFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunJobTriggersExecution(t *testing.T) {
	router, job := newJobFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs/price-refresh/run", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "triggered", body["status"])

	// 비동기 실행 완료 대기
	select {
	case <-job.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job was not executed")
	}
}

func TestRunJobUnknownJob(t *testing.T) {
	router, _ := newJobFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs/missing/run", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
