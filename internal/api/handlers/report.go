package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/report"
	"github.com/wonny/fundscope/internal/source"
	"github.com/wonny/fundscope/pkg/logger"
)

// CacheInvalidator drops cached data of one fund
type CacheInvalidator interface {
	Invalidate(ctx context.Context, code string) error
}

// ReportHandler handles fund report endpoints
// ⭐ SSOT: 리포트 API 핸들러는 이 구조체에서만
type ReportHandler struct {
	service *report.Service
	cache   CacheInvalidator
	logger  *logger.Logger
}

// NewReportHandler creates a report handler. cache may be nil when no cache is configured.
func NewReportHandler(service *report.Service, cache CacheInvalidator, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		cache:   cache,
		logger:  log,
	}
}

// reportResponse is the wire shape of a report; the series is opt-in
type reportResponse struct {
	Fund    contracts.FundInfo       `json:"fund"`
	Metrics *contracts.MetricsResult `json:"metrics"`
	Series  *contracts.TimeSeries    `json:"series,omitempty"`
}

func newReportResponse(rep *report.Report, includeSeries bool) reportResponse {
	resp := reportResponse{Fund: rep.Fund, Metrics: rep.Metrics}
	if includeSeries {
		resp.Series = &rep.Series
	}
	return resp
}

// GetReport computes the report of a fund from the configured source
// GET /api/funds/{code}/report?start=&end=|preset=&include_series=
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	q := r.URL.Query()

	sel, err := report.ParseSelection(q.Get("start"), q.Get("end"), q.Get("preset"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	includeSeries, _ := strconv.ParseBool(q.Get("include_series"))

	rep, err := h.service.Generate(r.Context(), code, sel)
	if err != nil {
		h.fail(w, err, code)
		return
	}

	respondJSON(w, http.StatusOK, newReportResponse(rep, includeSeries))
}

// postReportRequest carries a series inline instead of a fund code
type postReportRequest struct {
	Fund          contracts.FundInfo `json:"fund"`
	Series        json.RawMessage    `json:"series"`
	Start         string             `json:"start"`
	End           string             `json:"end"`
	Preset        string             `json:"preset"`
	IncludeSeries bool               `json:"include_series"`
}

// PostReport computes a report over a series supplied in the request body
// POST /api/report
func (h *ReportHandler) PostReport(w http.ResponseWriter, r *http.Request) {
	var req postReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Series) == 0 {
		respondError(w, http.StatusBadRequest, "series is required")
		return
	}

	ts, err := source.ReadJSON(bytes.NewReader(req.Series))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sel, err := report.ParseSelection(req.Start, req.End, req.Preset)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.service.Build(req.Fund, ts, sel)
	if err != nil {
		h.fail(w, err, req.Fund.Code)
		return
	}

	respondJSON(w, http.StatusOK, newReportResponse(rep, req.IncludeSeries))
}

// InvalidateCache drops the cached series and metadata of a fund
// DELETE /api/funds/{code}/cache
func (h *ReportHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if h.cache == nil {
		respondError(w, http.StatusNotImplemented, "Cache is not configured")
		return
	}

	if err := h.cache.Invalidate(r.Context(), code); err != nil {
		h.logger.WithError(err).WithField("fund_code", code).Error("Failed to invalidate cache")
		respondError(w, http.StatusInternalServerError, "Failed to invalidate cache")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fund_code":   code,
		"invalidated": true,
	})
}

// GetPresets lists the quick ranges
// GET /api/presets
func (h *ReportHandler) GetPresets(w http.ResponseWriter, r *http.Request) {
	a := h.service.Assembler()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"default": a.DefaultPreset(),
		"presets": a.Presets(),
	})
}

func (h *ReportHandler) fail(w http.ResponseWriter, err error, code string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithField("fund_code", code).Error("Failed to build report")
		respondError(w, status, "Failed to build report")
		return
	}
	respondError(w, status, err.Error())
}
