package agents

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Role identifies one analyst agent.
type Role string

const (
	RoleMarket    Role = "market"
	RoleFinancial Role = "financial"
	RoleStrategy  Role = "strategy"
)

// Roles in canonical order. Results are always reported in this order
// regardless of completion order.
var Roles = []Role{RoleMarket, RoleFinancial, RoleStrategy}

// Status is the outcome of one agent run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Payload is the typed output of a successful agent run.
type Payload interface {
	// Summary returns a one-line digest for dialogue and summaries.
	Summary() string
	// Recommendations returns the agent's recommended actions.
	Recommendations() []string
	// Render returns the full formatted analysis for reports.
	Render() string
}

// Result is the outcome of one agent run. Exactly one of Payload, Err or
// SkipNote is meaningful depending on Status.
type Result struct {
	Role     Role
	Status   Status
	Payload  Payload
	Err      error
	SkipNote string
	Duration time.Duration
}

// DialoguePhase identifies one phase of the inter-agent dialogue.
type DialoguePhase string

const (
	PhaseShareInsights     DialoguePhase = "share_insights"
	PhaseIdentifyConflicts DialoguePhase = "identify_conflicts"
	PhaseBuildConsensus    DialoguePhase = "build_consensus"
)

// DialogueTurn is the record of one completed dialogue phase.
type DialogueTurn struct {
	Phase DialoguePhase
	// Contributions holds per-role statements for the insight sharing phase.
	Contributions map[Role]string
	// Synthesis is the facilitator's output for the phase.
	Synthesis string
}

// DialogueResult is the transcript and outcome of the dialogue stage.
type DialogueResult struct {
	Occurred bool
	// Note explains why the dialogue did not occur or stopped early.
	Note           string
	Turns          []DialogueTurn
	ConsensusItems []string
	ActionItems    []string
	// FullConsensus is the raw consensus phase output.
	FullConsensus string
}

// Summary aggregates run outcomes across agents.
type Summary struct {
	TotalAgents int
	Successful  int
	Skipped     int
	Failed      int
	// SuccessRate is a percentage rounded to one decimal place.
	SuccessRate float64
}

// ConsolidatedResult is the full outcome of one orchestrated analysis run.
type ConsolidatedResult struct {
	RunID      uuid.UUID
	ClientName string
	Industry   string
	Challenge  string
	Results    []Result
	Dialogue   *DialogueResult
	Summary    Summary
	CreatedAt  time.Time
}

// ResultFor returns the result for the given role, or nil.
func (c *ConsolidatedResult) ResultFor(role Role) *Result {
	for i := range c.Results {
		if c.Results[i].Role == role {
			return &c.Results[i]
		}
	}
	return nil
}

func summarize(results []Result) Summary {
	s := Summary{TotalAgents: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			s.Successful++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	if s.TotalAgents > 0 {
		rate := float64(s.Successful) / float64(s.TotalAgents) * 100
		s.SuccessRate = math.Round(rate*10) / 10
	}
	return s
}
