package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/report"
	"github.com/wonny/fundscope/internal/reportconfig"
	"github.com/wonny/fundscope/internal/source"
	"github.com/wonny/fundscope/pkg/logger"
)

type fakeInvalidator struct {
	codes []string
	err   error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, code string) error {
	f.codes = append(f.codes, code)
	return f.err
}

func newTestRouter(t *testing.T, cache CacheInvalidator) *mux.Router {
	t.Helper()

	mem := source.NewMemory()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	values := []float64{1.00, 1.10, 1.05, 1.20, 0.90}
	obs := make([]contracts.Observation, len(values))
	for i, v := range values {
		obs[i] = contracts.Observation{Date: start.AddDate(0, 0, i), Value: v}
	}
	ts, err := contracts.NewTimeSeries(obs)
	require.NoError(t, err)
	mem.Put(contracts.FundInfo{Code: "110011", Name: "Growth Mixed"}, ts)

	// a 400x jump in one day overflows the annualized return
	spike, err := contracts.NewTimeSeries([]contracts.Observation{
		{Date: start, Value: 1.0},
		{Date: start.AddDate(0, 0, 1), Value: 400.0},
	})
	require.NoError(t, err)
	mem.Put(contracts.FundInfo{Code: "999999", Name: "Spike"}, spike)

	assembler, err := report.NewAssembler(reportconfig.Default(), logger.Nop())
	require.NoError(t, err)

	h := NewReportHandler(report.NewService(mem, assembler, logger.Nop()), cache, logger.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	r.HandleFunc("/api/funds/{code}/report", h.GetReport).Methods(http.MethodGet)
	r.HandleFunc("/api/funds/{code}/cache", h.InvalidateCache).Methods(http.MethodDelete)
	r.HandleFunc("/api/report", h.PostReport).Methods(http.MethodPost)
	r.HandleFunc("/api/presets", h.GetPresets).Methods(http.MethodGet)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func TestGetReport(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, body := do(t, router, http.MethodGet, "/api/funds/110011/report", "")
	require.Equal(t, http.StatusOK, rec.Code)

	metrics := body["metrics"].(map[string]interface{})
	standard := metrics["standard"].(map[string]interface{})
	assert.InDelta(t, 25.0, standard["max_drawdown"], 1e-9)
	assert.Equal(t, "standard", metrics["kind"])
	assert.NotContains(t, body, "series")

	rec, body = do(t, router, http.MethodGet, "/api/funds/110011/report?start=2025-01-02&end=2025-01-04&include_series=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["series"], 5)
	standard = body["metrics"].(map[string]interface{})["standard"].(map[string]interface{})
	assert.Equal(t, float64(3), standard["trading_days"])
}

func TestGetReport_Errors(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"unknown fund", "/api/funds/999999/report", http.StatusNotFound},
		{"bad date", "/api/funds/110011/report?start=2025-99-01", http.StatusBadRequest},
		{"start after end", "/api/funds/110011/report?start=2025-01-04&end=2025-01-02", http.StatusBadRequest},
		{"outside span", "/api/funds/110011/report?start=2024-12-01", http.StatusBadRequest},
		{"unknown preset", "/api/funds/110011/report?preset=9Y", http.StatusBadRequest},
		{"single observation", "/api/funds/110011/report?start=2025-01-03&end=2025-01-03", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, router, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPostReport(t *testing.T) {
	router := newTestRouter(t, nil)

	payload := `{
		"fund": {"code": "000198", "name": "Cash Plus", "is_money_fund": true},
		"series": [
			{"date": "2025-01-01", "value": "0.5"}, {"date": "2025-01-02", "value": "0.5"},
			{"date": "2025-01-03", "value": "0.5"}, {"date": "2025-01-04", "value": "0.5"},
			{"date": "2025-01-05", "value": "0.5"}, {"date": "2025-01-06", "value": "0.5"},
			{"date": "2025-01-07", "value": "0.5"}
		],
		"preset": "ALL"
	}`

	rec, body := do(t, router, http.MethodPost, "/api/report", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	metrics := body["metrics"].(map[string]interface{})
	money := metrics["money"].(map[string]interface{})
	assert.InDelta(t, 0.035, money["cumulative_yield"], 1e-9)
	assert.InDelta(t, 1.85, money["annualized_yield"], 0.01)
	assert.NotNil(t, metrics["money_stats"])
}

func TestPostReport_BadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"no series", `{"fund":{"code":"x"}}`},
		{"unsorted series", `{"fund":{"code":"x"},"series":[{"date":"2025-01-01","value":1},{"date":"2025-01-01","value":1}]}`},
		{"preset and dates", `{"fund":{"code":"x"},"series":[{"date":"2025-01-01","value":1}],"preset":"1M","start":"2025-01-01"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, router, http.MethodPost, "/api/report", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestInvalidateCache(t *testing.T) {
	rec, _ := do(t, newTestRouter(t, nil), http.MethodDelete, "/api/funds/110011/cache", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	inv := &fakeInvalidator{}
	rec, body := do(t, newTestRouter(t, inv), http.MethodDelete, "/api/funds/110011/cache", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["invalidated"])
	assert.Equal(t, []string{"110011"}, inv.codes)

	inv = &fakeInvalidator{err: errors.New("redis down")}
	rec, _ = do(t, newTestRouter(t, inv), http.MethodDelete, "/api/funds/110011/cache", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetPresets(t *testing.T) {
	rec, body := do(t, newTestRouter(t, nil), http.MethodGet, "/api/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALL", body["default"])
	assert.Len(t, body["presets"], 7)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", contracts.ErrFundNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", contracts.ErrInvalidRange), http.StatusBadRequest},
		{contracts.ErrEmptyRange, http.StatusBadRequest},
		{contracts.ErrUnknownPreset, http.StatusBadRequest},
		{contracts.ErrInsufficientData, http.StatusUnprocessableEntity},
		{fmt.Errorf("x: %w", contracts.ErrNonFinite), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestGetReport_NonFiniteMetrics(t *testing.T) {
	router := newTestRouter(t, nil)

	rec, body := do(t, router, http.MethodGet, "/api/funds/999999/report", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["error"], "non-finite")
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]float64{"value": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Contains(t, decoded["error"], "encode response")
}
