package jobs

import (
	"context"

	"github.com/wonny/folio/internal/marketdata"
)

// PriceRefreshJob 가격 캐시 일일 갱신 잡
// serve 모드에서 장 마감 후 캐시된 전 종목을 재수집
type PriceRefreshJob struct {
	cache    *marketdata.Cache
	schedule string
}

// NewPriceRefreshJob creates the daily price cache refresh job
func NewPriceRefreshJob(cache *marketdata.Cache, schedule string) *PriceRefreshJob {
	return &PriceRefreshJob{
		cache:    cache,
		schedule: schedule,
	}
}

// Name returns the job name
func (j *PriceRefreshJob) Name() string {
	return "price-refresh"
}

// Schedule returns the cron schedule expression
func (j *PriceRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the job
func (j *PriceRefreshJob) Run(ctx context.Context) error {
	return j.cache.Refresh(ctx)
}
