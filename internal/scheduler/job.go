package scheduler

import (
	"context"
	"time"
)

// Job 스케줄 등록 대상 작업
// ⭐ SSOT: 잡 인터페이스는 여기서만 정의
type Job interface {
	// Name returns the job name
	Name() string

	// Schedule returns the cron expression (초 필드 포함 6필드)
	// Example: "0 30 22 * * MON-FRI"
	Schedule() string

	// Run executes the job
	Run(ctx context.Context) error
}

// historyCap 잡별 보관 실행 기록 수
const historyCap = 100

// JobResult 단일 실행 결과
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// JobHistory 잡별 실행 기록 (최근 historyCap개만 유지)
type JobHistory struct {
	results []JobResult
}

func (h *JobHistory) add(result JobResult) {
	h.results = append(h.results, result)
	if len(h.results) > historyCap {
		h.results = h.results[len(h.results)-historyCap:]
	}
}

// Recent returns a copy of the latest n results, oldest first
func (h *JobHistory) Recent(n int) []JobResult {
	if n > len(h.results) {
		n = len(h.results)
	}
	out := make([]JobResult, n)
	copy(out, h.results[len(h.results)-n:])
	return out
}

// SuccessRate returns the fraction of successful runs (0.0 - 1.0)
func (h *JobHistory) SuccessRate() float64 {
	if len(h.results) == 0 {
		return 0.0
	}

	success := 0
	for _, result := range h.results {
		if result.Success {
			success++
		}
	}
	return float64(success) / float64(len(h.results))
}
