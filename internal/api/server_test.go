package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consilium/internal/agents"
	"consilium/internal/frameworks"
	"consilium/internal/project"
	"consilium/internal/report"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
)

type stubAnalyzer struct {
	result *agents.ConsolidatedResult
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ *project.Input) (*agents.ConsolidatedResult, error) {
	return s.result, s.err
}

func testResult() *agents.ConsolidatedResult {
	market := &agents.MarketPayload{Result: frameworks.AnalyzeMarket(&project.MarketData{
		MarketSize: 60_000_000_000,
		GrowthRate: 8,
	})}
	return &agents.ConsolidatedResult{
		RunID:      uuid.New(),
		ClientName: "Acme Corp",
		Results: []agents.Result{
			{Role: agents.RoleMarket, Status: agents.StatusSuccess, Payload: market},
			{Role: agents.RoleFinancial, Status: agents.StatusSkipped, SkipNote: "no data"},
		},
		Summary:   agents.Summary{TotalAgents: 2, Successful: 1, Skipped: 1, SuccessRate: 50.0},
		CreatedAt: time.Now().UTC(),
	}
}

func newTestHandler(analyzer Analyzer) *AnalyzeHandler {
	return NewAnalyzeHandler(analyzer, report.NewGenerator(), logger.Get())
}

func TestHandleAnalyze_Success(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{result: testResult()})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"client_name":"Acme Corp"}`))
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Acme Corp", resp.ClientName)
	assert.Equal(t, 50.0, resp.Summary.SuccessRate)
	require.Len(t, resp.Agents, 2)
	assert.Equal(t, "success", resp.Agents[0].Status)
	assert.Equal(t, "skipped", resp.Agents[1].Status)
	assert.Contains(t, resp.Report, "# Integrated Strategy Consulting Report")
	assert.False(t, resp.DialogueOccurred)
}

func TestHandleAnalyze_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{result: testResult()})

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleAnalyze_BadBody(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{result: testResult()})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", errors.Wrap(errors.ErrInvalidInput, "client name is required"), http.StatusBadRequest},
		{"no agents", errors.ErrNoAgentsEnabled, http.StatusServiceUnavailable},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubAnalyzer{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"client_name":"Acme"}`))
			rec := httptest.NewRecorder()
			h.HandleAnalyze(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleAnalyze_AllAgentsFailedRendersReport(t *testing.T) {
	result := &agents.ConsolidatedResult{
		RunID:      uuid.New(),
		ClientName: "Acme Corp",
		Results: []agents.Result{
			{Role: agents.RoleMarket, Status: agents.StatusFailed, Err: errors.New("boom")},
			{Role: agents.RoleFinancial, Status: agents.StatusFailed, Err: errors.New("boom")},
		},
		Summary:   agents.Summary{TotalAgents: 2, Failed: 2, SuccessRate: 0.0},
		CreatedAt: time.Now().UTC(),
	}
	h := newTestHandler(&stubAnalyzer{result: result})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"client_name":"Acme Corp"}`))
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Summary.SuccessRate)
	assert.Contains(t, resp.Report, "Analyses Not Included")
	assert.Contains(t, resp.Report, "No analysis could be completed")
}

func TestHandleAnalyze_DialogueInResponse(t *testing.T) {
	result := testResult()
	result.Dialogue = &agents.DialogueResult{
		Occurred:       true,
		ConsensusItems: []string{"agree on focus"},
		ActionItems:    []string{"do the thing"},
	}
	h := newTestHandler(&stubAnalyzer{result: result})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"client_name":"Acme"}`))
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.DialogueOccurred)
	assert.Equal(t, []string{"agree on focus"}, resp.ConsensusItems)
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler(logger.Get(), "consilium", "test", false)

	rec := httptest.NewRecorder()
	h.HandleLiveness(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")

	rec = httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "not configured", status.Checks["llm"])
}
