package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/folio/internal/api/handlers"
	"github.com/wonny/folio/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(
	assetHandler *handlers.AssetHandler,
	priceHandler *handlers.PriceHandler,
	analysisHandler *handlers.AnalysisHandler,
	simulationHandler *handlers.SimulationHandler,
	jobHandler *handlers.JobHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Asset catalog & strategy templates
	api.HandleFunc("/assets", assetHandler.ListAssets).Methods("GET")
	api.HandleFunc("/strategies", assetHandler.ListStrategies).Methods("GET")
	api.HandleFunc("/strategies/{name}", assetHandler.GetStrategy).Methods("GET")

	// Price data
	api.HandleFunc("/prices/{ticker}", priceHandler.GetDaily).Methods("GET")

	// Analytics & simulation
	api.HandleFunc("/analyze", analysisHandler.Analyze).Methods("POST")
	api.HandleFunc("/simulate", simulationHandler.Simulate).Methods("POST")
	api.HandleFunc("/forecast/{ticker}", simulationHandler.Forecast).Methods("GET")
	api.HandleFunc("/scenarios", simulationHandler.ListScenarios).Methods("GET")
	api.HandleFunc("/scenarios/run", simulationHandler.RunScenarios).Methods("POST")

	// Scheduled job status
	api.HandleFunc("/jobs", jobHandler.ListJobs).Methods("GET")
	api.HandleFunc("/jobs/{name}", jobHandler.GetJobHistory).Methods("GET")
	api.HandleFunc("/jobs/{name}/run", jobHandler.RunJob).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "folio-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
