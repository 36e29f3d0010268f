package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/assets"
	"github.com/wonny/folio/internal/brain"
	"github.com/wonny/folio/internal/montecarlo"
	"github.com/wonny/folio/pkg/logger"
)

func TestListAssets(t *testing.T) {
	h := NewAssetHandler(assets.NewCatalog(), logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	rec := httptest.NewRecorder()
	h.ListAssets(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count  int             `json:"count"`
		Assets []AssetResponse `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Greater(t, body.Count, 0)
	assert.Equal(t, body.Count, len(body.Assets))
}

func TestGetStrategy(t *testing.T) {
	h := NewAssetHandler(assets.NewCatalog(), logger.NewNop())

	router := mux.NewRouter()
	router.HandleFunc("/api/strategies/{name}", h.GetStrategy).Methods("GET")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/strategies/"+url.PathEscape("Golden Butterfly"), nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/strategies/no-such", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunScenarios(t *testing.T) {
	orchestrator := brain.New(nil, nil, nil, logger.NewNop())
	h := NewSimulationHandler(orchestrator, montecarlo.DefaultConfig(), logger.NewNop())

	body := `{"tickers": ["SPY", "TLT"], "weights": [0.6, 0.4]}`
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RunScenarios(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			Scenario struct {
				Name string `json:"name"`
			} `json:"scenario"`
			Impact float64 `json:"impact"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "CRASH", resp.Results[1].Scenario.Name)
	assert.InDelta(t, -0.15, resp.Results[1].Impact, 1e-9)
}

func TestRunScenariosBadRequest(t *testing.T) {
	orchestrator := brain.New(nil, nil, nil, logger.NewNop())
	h := NewSimulationHandler(orchestrator, montecarlo.DefaultConfig(), logger.NewNop())

	// 비중 합 0 → 포트폴리오 생성 실패
	body := `{"tickers": ["SPY"], "weights": [0]}`
	rec := httptest.NewRecorder()
	h.RunScenarios(rec, httptest.NewRequest(http.MethodPost, "/api/scenarios/run", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.RunScenarios(rec, httptest.NewRequest(http.MethodPost, "/api/scenarios/run", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNumSentinel(t *testing.T) {
	assert.Nil(t, num(math.NaN()))

	v := num(1.5)
	require.NotNil(t, v)
	assert.Equal(t, 1.5, *v)

	out := nums([]float64{1, math.NaN(), 3})
	assert.NotNil(t, out[0])
	assert.Nil(t, out[1])
}
