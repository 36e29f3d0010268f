package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/api"
	"github.com/wonny/folio/internal/api/handlers"
	"github.com/wonny/folio/internal/montecarlo"
	"github.com/wonny/folio/internal/scheduler"
	"github.com/wonny/folio/internal/scheduler/jobs"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 가격 캐시 일일 갱신 스케줄 등록
- 분석/시뮬레이션 엔드포인트 제공

Endpoints:
  GET  /health                  - Health check
  GET  /api/assets              - 자산 카탈로그
  GET  /api/strategies          - 배분 템플릿 목록
  GET  /api/prices/{ticker}     - 일봉 조회
  POST /api/analyze             - 포트폴리오 분석
  POST /api/simulate            - Monte Carlo 시뮬레이션
  GET  /api/forecast/{ticker}   - 종가 예측
  POST /api/scenarios/run       - 시나리오 적용
  GET  /api/jobs                - 스케줄 잡 실행 통계
  POST /api/jobs/{name}/run     - 잡 수동 실행

Example:
  go run ./cmd/folio serve
  go run ./cmd/folio serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본: 설정값)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== folio API Server ===")

	s, err := buildStack()
	if err != nil {
		return err
	}
	if servePort != "" {
		s.config.Port = servePort
	}
	log := s.logger

	// serve 모드는 Yahoo 캐시 전제 (--data-dir와 병행 불가)
	if s.cache == nil {
		return fmt.Errorf("serve mode requires live market data (remove --data-dir)")
	}

	defaultSim := montecarlo.Config{
		Horizon:        s.config.Simulation.HorizonYears * 252,
		NumSimulations: s.config.Simulation.NumSimulations,
		Seed:           0,
	}

	// 가격 캐시 일일 갱신 스케줄
	sched := scheduler.New(log)
	refreshJob := jobs.NewPriceRefreshJob(s.cache, s.config.Market.RefreshCron)
	if err := sched.AddJob(refreshJob); err != nil {
		return fmt.Errorf("schedule cache refresh: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// Handlers
	assetHandler := handlers.NewAssetHandler(s.catalog, log)
	priceHandler := handlers.NewPriceHandler(s.cache, log)
	analysisHandler := handlers.NewAnalysisHandler(s.orchestrator, log)
	simulationHandler := handlers.NewSimulationHandler(s.orchestrator, defaultSim, log)
	jobHandler := handlers.NewJobHandler(sched, log)

	// Router & server
	router := api.NewRouter(assetHandler, priceHandler, analysisHandler, simulationHandler, jobHandler, log)
	server := api.New(s.config, log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", s.config.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
