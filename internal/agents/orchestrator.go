package agents

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"consilium/internal/metrics"
	"consilium/internal/project"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
)

// Options configures the orchestrator.
type Options struct {
	// AgentTimeout bounds each agent run. Zero means no per-agent timeout.
	AgentTimeout time.Duration
	// EnableDialogue turns on the inter-agent dialogue stage.
	EnableDialogue bool
}

// Orchestrator fans the engagement out to all agents in parallel, aggregates
// their results with partial-failure tolerance, and optionally runs the
// dialogue stage over the successful ones.
type Orchestrator struct {
	agents   []Agent
	dialogue *DialogueManager
	profiler *Profiler
	opts     Options
	tracker  errors.Tracker
	log      *logger.Logger
}

// NewOrchestrator creates the orchestrator. dialogue and profiler may be nil.
func NewOrchestrator(agentList []Agent, dialogue *DialogueManager, profiler *Profiler, tracker errors.Tracker, opts Options) *Orchestrator {
	return &Orchestrator{
		agents:   agentList,
		dialogue: dialogue,
		profiler: profiler,
		opts:     opts,
		tracker:  tracker,
		log:      logger.Get().With("component", "orchestrator"),
	}
}

// Analyze runs the full multi-agent analysis. The returned result carries
// per-agent outcomes even when agents fail, including a run where every
// agent failed; the error is non-nil only for configuration problems (no
// agents enabled, invalid input).
func (o *Orchestrator) Analyze(ctx context.Context, in *project.Input) (*ConsolidatedResult, error) {
	if len(o.agents) == 0 {
		metrics.AnalysisRuns.WithLabelValues("rejected").Inc()
		return nil, errors.ErrNoAgentsEnabled
	}
	if err := in.Normalize(); err != nil {
		metrics.AnalysisRuns.WithLabelValues("rejected").Inc()
		return nil, err
	}

	start := time.Now()
	runID := uuid.New()
	log := o.log.With("run_id", runID.String(), "client", in.ClientName)
	log.Infow("Starting multi-agent analysis", "agents", len(o.agents))

	if o.profiler != nil {
		o.profiler.Enrich(ctx, in)
	}

	results := o.runAgents(ctx, in)

	consolidated := &ConsolidatedResult{
		RunID:      runID,
		ClientName: in.ClientName,
		Industry:   in.Industry,
		Challenge:  in.Challenge,
		Results:    results,
		Summary:    summarize(results),
		CreatedAt:  time.Now().UTC(),
	}

	for _, r := range results {
		metrics.ObserveAgentRun(string(r.Role), string(r.Status), r.Duration)
		if r.Status == StatusFailed && o.tracker != nil {
			o.tracker.CaptureError(ctx, r.Err, map[string]string{
				"run_id": runID.String(),
				"agent":  string(r.Role),
			})
		}
	}

	// An all-failed run is still a valid result: the caller renders the
	// excluded-agents report with success rate 0 instead of getting an error.
	if consolidated.Summary.Successful == 0 && consolidated.Summary.Failed > 0 {
		log.Warnw("Every agent failed", "failed", consolidated.Summary.Failed)
	}

	if o.opts.EnableDialogue && o.dialogue != nil {
		consolidated.Dialogue = o.dialogue.Facilitate(ctx, in, results)
	}

	metrics.AnalysisRuns.WithLabelValues("completed").Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	log.Infow("Analysis finished",
		"successful", consolidated.Summary.Successful,
		"skipped", consolidated.Summary.Skipped,
		"failed", consolidated.Summary.Failed,
		"duration", time.Since(start))

	return consolidated, nil
}

// runAgents fans out to all agents and joins on completion. Results come back
// in canonical role order.
func (o *Orchestrator) runAgents(ctx context.Context, in *project.Input) []Result {
	resultCh := make(chan Result, len(o.agents))

	var wg sync.WaitGroup
	for _, agent := range o.agents {
		wg.Add(1)
		go func(agent Agent) {
			defer wg.Done()
			resultCh <- o.runOne(ctx, agent, in)
		}(agent)
	}
	wg.Wait()
	close(resultCh)

	byRole := make(map[Role]Result, len(o.agents))
	for r := range resultCh {
		byRole[r.Role] = r
	}

	ordered := make([]Result, 0, len(byRole))
	for _, role := range Roles {
		if r, ok := byRole[role]; ok {
			ordered = append(ordered, r)
			delete(byRole, role)
		}
	}
	for _, agent := range o.agents {
		if r, ok := byRole[agent.Role()]; ok {
			ordered = append(ordered, r)
			delete(byRole, agent.Role())
		}
	}

	return ordered
}

// runOne executes a single agent with timeout and panic isolation. A panic
// or error never propagates past this boundary.
func (o *Orchestrator) runOne(ctx context.Context, agent Agent, in *project.Input) (res Result) {
	start := time.Now()
	res = Result{Role: agent.Role()}

	defer func() {
		res.Duration = time.Since(start)
		if rec := recover(); rec != nil {
			o.log.Errorw("Agent panicked", "agent", agent.Role(), "panic", rec)
			res.Status = StatusFailed
			res.Payload = nil
			res.Err = errors.Newf("agent %s panicked: %v", agent.Role(), rec)
		}
	}()

	runCtx := ctx
	if o.opts.AgentTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, o.opts.AgentTimeout)
		defer cancel()
	}

	payload, err := agent.Analyze(runCtx, in)
	switch {
	case err == nil:
		res.Status = StatusSuccess
		res.Payload = payload
	case errors.Is(err, errors.ErrMissingProjectData):
		res.Status = StatusSkipped
		res.SkipNote = err.Error()
		o.log.Infow("Agent skipped", "agent", agent.Role(), "reason", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		res.Status = StatusFailed
		res.Err = errors.Wrapf(errors.ErrTimeout, "agent %s timeout after %s", agent.Role(), o.opts.AgentTimeout)
		o.log.Errorw("Agent timed out", "agent", agent.Role(), "timeout", o.opts.AgentTimeout)
	default:
		res.Status = StatusFailed
		res.Err = err
		o.log.Errorw("Agent failed", "agent", agent.Role(), "error", err)
	}

	return res
}
