package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/folio/internal/assets"
	"github.com/wonny/folio/pkg/logger"
)

// AssetHandler handles asset catalog and strategy template endpoints
// ⭐ SSOT: 자산 메타데이터 API 핸들러는 이 구조체에서만
type AssetHandler struct {
	catalog *assets.Catalog
	logger  *logger.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(catalog *assets.Catalog, log *logger.Logger) *AssetHandler {
	return &AssetHandler{
		catalog: catalog,
		logger:  log,
	}
}

// AssetResponse represents a catalog entry for API response
type AssetResponse struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// ListAssets returns the full asset catalog
// GET /api/assets
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	tickers := h.catalog.Tickers()

	result := make([]AssetResponse, len(tickers))
	for i, ticker := range tickers {
		info := h.catalog.Lookup(ticker)
		result[i] = AssetResponse{
			Ticker:   ticker,
			Name:     info.Name,
			Type:     info.Type,
			Category: info.Category,
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(result),
		"assets": result,
	})
}

// ListStrategies returns all built-in strategy templates
// GET /api/strategies
func (h *AssetHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": assets.Strategies(),
	})
}

// GetStrategy returns a single strategy template by name
// GET /api/strategies/{name}
func (h *AssetHandler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	strategy, err := assets.FindStrategy(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, strategy)
}
