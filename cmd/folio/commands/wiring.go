package commands

import (
	"fmt"

	"github.com/wonny/folio/internal/analytics"
	"github.com/wonny/folio/internal/assets"
	"github.com/wonny/folio/internal/brain"
	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/internal/portfolio"
	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/logger"
)

// stack 커맨드 공통 의존성 묶음
type stack struct {
	config       *config.Config
	logger       *logger.Logger
	catalog      *assets.Catalog
	cache        *marketdata.Cache // serve 모드에서만 사용 (cron 갱신 대상)
	orchestrator *brain.Orchestrator
}

// buildStack 설정 로드 + 컴포넌트 조립
// --data-dir이 있으면 Yahoo 대신 로컬 CSV 디렉터리에서 읽음
func buildStack() (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	catalog := assets.NewCatalog()
	if assetsFile != "" {
		if err := catalog.LoadOverrides(assetsFile); err != nil {
			return nil, fmt.Errorf("load asset overrides: %w", err)
		}
	}

	var source brain.PriceSource
	var cache *marketdata.Cache
	if dataDir != "" {
		source = marketdata.NewDirLoader(dataDir, log)
		log.WithField("dir", dataDir).Info("Using local CSV price data")
	} else {
		client := marketdata.NewClient(cfg, log)
		cache = marketdata.NewCache(client, cfg.Market.DefaultPeriod, log)
		source = cache
	}

	engine := analytics.NewEngine(cfg.Analysis.RiskFreeRate, cfg.Analysis.BenchmarkTicker, catalog)

	return &stack{
		config:       cfg,
		logger:       log,
		catalog:      catalog,
		cache:        cache,
		orchestrator: brain.New(source, engine, cfg, log),
	}, nil
}

// resolvePortfolio --strategy 또는 --tickers/--weights로 포트폴리오 구성
func resolvePortfolio(strategyName, tickerCSV, weightCSV string) (*portfolio.Portfolio, error) {
	if strategyName != "" {
		strategy, err := assets.FindStrategy(strategyName)
		if err != nil {
			return nil, err
		}
		tickers, weights := strategy.TickersAndWeights()
		return portfolio.New(tickers, weights)
	}
	if tickerCSV == "" {
		return nil, fmt.Errorf("either --strategy or --tickers is required")
	}
	return portfolio.Parse(tickerCSV, weightCSV)
}
