package api

import (
	"context"
	"encoding/json"
	"net/http"

	"consilium/internal/agents"
	"consilium/internal/project"
	"consilium/internal/report"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
)

// Analyzer runs one multi-agent analysis.
type Analyzer interface {
	Analyze(ctx context.Context, in *project.Input) (*agents.ConsolidatedResult, error)
}

// AnalyzeHandler serves the analysis endpoint.
type AnalyzeHandler struct {
	analyzer Analyzer
	reports  *report.Generator
	log      *logger.Logger
}

// NewAnalyzeHandler creates the analysis handler.
func NewAnalyzeHandler(analyzer Analyzer, reports *report.Generator, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, reports: reports, log: log}
}

type agentOutcome struct {
	Role     string `json:"role"`
	Status   string `json:"status"`
	SkipNote string `json:"skip_note,omitempty"`
	Error    string `json:"error,omitempty"`
}

type summaryBody struct {
	TotalAgents int     `json:"total_agents"`
	Successful  int     `json:"successful"`
	Skipped     int     `json:"skipped"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

type analyzeResponse struct {
	RunID            string         `json:"run_id"`
	ClientName       string         `json:"client_name"`
	Industry         string         `json:"industry,omitempty"`
	Challenge        string         `json:"challenge,omitempty"`
	Summary          summaryBody    `json:"summary"`
	Agents           []agentOutcome `json:"agents"`
	DialogueOccurred bool           `json:"dialogue_occurred"`
	ConsensusItems   []string       `json:"consensus_items,omitempty"`
	ActionItems      []string       `json:"action_items,omitempty"`
	Report           string         `json:"report_markdown"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleAnalyze runs a full analysis for the posted engagement and returns
// the consolidated outcome with the rendered Markdown report.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var in project.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), &in)
	if err != nil {
		h.log.Errorw("Analysis request failed", "client", in.ClientName, "error", err)
		switch {
		case errors.Is(err, errors.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, errors.ErrNoAgentsEnabled):
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, h.buildResponse(result))
}

func (h *AnalyzeHandler) buildResponse(result *agents.ConsolidatedResult) analyzeResponse {
	resp := analyzeResponse{
		RunID:      result.RunID.String(),
		ClientName: result.ClientName,
		Industry:   result.Industry,
		Challenge:  result.Challenge,
		Summary: summaryBody{
			TotalAgents: result.Summary.TotalAgents,
			Successful:  result.Summary.Successful,
			Skipped:     result.Summary.Skipped,
			Failed:      result.Summary.Failed,
			SuccessRate: result.Summary.SuccessRate,
		},
		Report: h.reports.Generate(result),
	}

	for _, r := range result.Results {
		outcome := agentOutcome{Role: string(r.Role), Status: string(r.Status), SkipNote: r.SkipNote}
		if r.Err != nil {
			outcome.Error = r.Err.Error()
		}
		resp.Agents = append(resp.Agents, outcome)
	}

	if result.Dialogue != nil && result.Dialogue.Occurred {
		resp.DialogueOccurred = true
		resp.ConsensusItems = result.Dialogue.ConsensusItems
		resp.ActionItems = result.Dialogue.ActionItems
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
