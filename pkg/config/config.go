package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Market data
	Market MarketConfig

	// Analysis
	Analysis AnalysisConfig

	// Simulation
	Simulation SimulationConfig

	// Charts
	Charts ChartsConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// MarketConfig holds market data source configuration
type MarketConfig struct {
	BaseURL       string        // Yahoo chart API base URL
	Timeout       time.Duration // HTTP 요청 타임아웃
	RatePerSecond float64       // 초당 요청 수 제한
	DataDir       string        // 로컬 CSV 데이터 디렉토리 (오프라인용)
	RefreshCron   string        // serve 모드 가격 캐시 갱신 스케줄
	DefaultPeriod string        // 기본 조회 기간 (예: 2y, 5y, 10y)
}

// AnalysisConfig holds portfolio analytics configuration
type AnalysisConfig struct {
	RiskFreeRate    float64 // 연환산 무위험 수익률 (기본: 0.02)
	BenchmarkTicker string  // 베타 계산용 시장 프록시 (기본: SPY)
}

// SimulationConfig holds Monte Carlo defaults
type SimulationConfig struct {
	NumSimulations int     // 기본 시뮬레이션 횟수
	HorizonYears   int     // 기본 시뮬레이션 기간 (년)
	DriftCap       float64 // 일별 드리프트 상한 (과도한 낙관 방지)
}

// ChartsConfig holds chart rendering configuration
type ChartsConfig struct {
	Enabled   bool
	OutputDir string // PNG 출력 디렉토리
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		// Market data
		Market: MarketConfig{
			BaseURL:       getEnv("MARKET_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			Timeout:       getEnvAsDuration("MARKET_TIMEOUT", "30s"),
			RatePerSecond: getEnvAsFloat("MARKET_RATE_PER_SECOND", 2.0),
			DataDir:       getEnv("MARKET_DATA_DIR", ""),
			RefreshCron:   getEnv("MARKET_REFRESH_CRON", "0 30 22 * * MON-FRI"),
			DefaultPeriod: getEnv("MARKET_DEFAULT_PERIOD", "2y"),
		},

		// Analysis
		Analysis: AnalysisConfig{
			RiskFreeRate:    getEnvAsFloat("RISK_FREE_RATE", 0.02),
			BenchmarkTicker: getEnv("BENCHMARK_TICKER", "SPY"),
		},

		// Simulation
		Simulation: SimulationConfig{
			NumSimulations: getEnvAsInt("SIM_NUM_SIMULATIONS", 5000),
			HorizonYears:   getEnvAsInt("SIM_HORIZON_YEARS", 1),
			DriftCap:       getEnvAsFloat("SIM_DRIFT_CAP", 0.0003),
		},

		// Charts
		Charts: ChartsConfig{
			Enabled:   getEnvAsBool("CHARTS_ENABLED", true),
			OutputDir: getEnv("CHARTS_OUTPUT_DIR", "charts"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Analysis.RiskFreeRate < 0 || c.Analysis.RiskFreeRate >= 1 {
		return fmt.Errorf("RISK_FREE_RATE must be in [0, 1)")
	}

	if c.Simulation.NumSimulations <= 0 {
		return fmt.Errorf("SIM_NUM_SIMULATIONS must be > 0")
	}

	if c.Simulation.HorizonYears <= 0 {
		return fmt.Errorf("SIM_HORIZON_YEARS must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
