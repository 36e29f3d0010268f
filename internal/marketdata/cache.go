package marketdata

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/folio/pkg/logger"
)

// Cache in-memory 가격 캐시 (serve 모드 전용)
// cron 스케줄로 일 1회 갱신, 핸들러는 읽기만 수행
type Cache struct {
	mu          sync.RWMutex
	series      map[string]*PriceSeries
	refreshedAt time.Time

	client *Client
	period string
	logger *logger.Logger
}

// NewCache creates a price cache backed by the given client
func NewCache(client *Client, period string, log *logger.Logger) *Cache {
	return &Cache{
		series: make(map[string]*PriceSeries),
		client: client,
		period: period,
		logger: log,
	}
}

// Get returns a cached series, fetching on miss
// 같은 티커의 동시 미스는 중복 조회될 수 있음 (마지막 쓰기 승리, 내용 동일)
func (c *Cache) Get(ctx context.Context, ticker string) (*PriceSeries, error) {
	c.mu.RLock()
	series, ok := c.series[ticker]
	c.mu.RUnlock()

	if ok {
		return series, nil
	}

	series, err := c.client.FetchDaily(ctx, ticker, c.period)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.series[ticker] = series
	c.mu.Unlock()

	return series, nil
}

// GetAll returns cached series for the tickers, fetching misses
func (c *Cache) GetAll(ctx context.Context, tickers []string) (map[string]*PriceSeries, error) {
	data := make(map[string]*PriceSeries, len(tickers))
	for _, ticker := range tickers {
		series, err := c.Get(ctx, ticker)
		if err != nil {
			return nil, err
		}
		data[ticker] = series
	}
	return data, nil
}

// Refresh re-fetches every cached ticker (cron 잡에서 호출)
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.RLock()
	tickers := make([]string, 0, len(c.series))
	for ticker := range c.series {
		tickers = append(tickers, ticker)
	}
	c.mu.RUnlock()

	refreshed := 0
	for _, ticker := range tickers {
		series, err := c.client.FetchDaily(ctx, ticker, c.period)
		if err != nil {
			// 개별 실패는 기존 캐시 유지
			c.logger.WithError(err).WithField("ticker", ticker).Warn("Cache refresh failed for ticker")
			continue
		}

		c.mu.Lock()
		c.series[ticker] = series
		c.mu.Unlock()
		refreshed++
	}

	c.mu.Lock()
	c.refreshedAt = time.Now()
	c.mu.Unlock()

	c.logger.WithFields(map[string]interface{}{
		"tickers":   len(tickers),
		"refreshed": refreshed,
	}).Info("Price cache refreshed")

	return nil
}

// RefreshedAt returns the last successful refresh time
func (c *Cache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}
