package agents

import (
	"context"
	"strings"
	"unicode"

	"consilium/internal/adapters/ai"
	"consilium/internal/metrics"
	"consilium/internal/project"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
	"consilium/pkg/templates"
)

const (
	conflictsSystemPrompt = "You are a critical-thinking analyst who identifies contradictions and disagreements between analyses."
	consensusSystemPrompt = "You are an experienced strategy consultant who integrates different perspectives into actionable agreements."

	maxConsensusItems = 5
	maxActionItems    = 3
)

// DialogueManager runs the three-phase dialogue between successful agents:
// insight sharing, conflict identification and consensus building. The first
// phase is assembled locally from agent payloads; the later two call the LLM
// with elevated temperature.
type DialogueManager struct {
	client      ai.Client
	registry    *templates.Registry
	temperature float64
	log         *logger.Logger
}

// NewDialogueManager creates the dialogue facilitator. temperature applies to
// the LLM phases; zero falls back to the client default.
func NewDialogueManager(client ai.Client, temperature float64) *DialogueManager {
	return &DialogueManager{
		client:      client,
		registry:    templates.Get(),
		temperature: temperature,
		log:         logger.Get().With("component", "dialogue"),
	}
}

// Facilitate runs the dialogue over the agent results. It needs at least two
// successful results; otherwise it reports Occurred=false. A phase failure
// stops the dialogue but keeps the completed turns.
func (m *DialogueManager) Facilitate(ctx context.Context, in *project.Input, results []Result) *DialogueResult {
	successful := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Status == StatusSuccess {
			successful = append(successful, r)
		}
	}

	if len(successful) < 2 {
		return &DialogueResult{
			Occurred: false,
			Note:     "not enough successful analyses for a dialogue",
		}
	}
	if m.client == nil {
		return &DialogueResult{
			Occurred: false,
			Note:     errors.ErrDialogueUnavailable.Error(),
		}
	}

	out := &DialogueResult{Occurred: true}

	// Phase 1 is local: each agent states its key insights.
	shareTurn := m.shareInsights(successful)
	out.Turns = append(out.Turns, shareTurn)
	metrics.DialoguePhases.WithLabelValues(string(PhaseShareInsights), "completed").Inc()

	conflictsTurn, err := m.identifyConflicts(ctx, in, successful)
	if err != nil {
		metrics.DialoguePhases.WithLabelValues(string(PhaseIdentifyConflicts), "failed").Inc()
		m.log.Warnw("Conflict identification failed, keeping partial transcript", "error", err)
		out.Note = "dialogue stopped during conflict identification: " + err.Error()
		return out
	}
	out.Turns = append(out.Turns, conflictsTurn)
	metrics.DialoguePhases.WithLabelValues(string(PhaseIdentifyConflicts), "completed").Inc()

	consensusTurn, err := m.buildConsensus(ctx, in, shareTurn, conflictsTurn)
	if err != nil {
		metrics.DialoguePhases.WithLabelValues(string(PhaseBuildConsensus), "failed").Inc()
		m.log.Warnw("Consensus building failed, keeping partial transcript", "error", err)
		out.Note = "dialogue stopped during consensus building: " + err.Error()
		return out
	}
	out.Turns = append(out.Turns, consensusTurn)
	metrics.DialoguePhases.WithLabelValues(string(PhaseBuildConsensus), "completed").Inc()

	out.FullConsensus = consensusTurn.Synthesis
	out.ConsensusItems, out.ActionItems = extractAgreements(consensusTurn.Synthesis)

	return out
}

func (m *DialogueManager) shareInsights(successful []Result) DialogueTurn {
	turn := DialogueTurn{
		Phase:         PhaseShareInsights,
		Contributions: make(map[Role]string, len(successful)),
	}

	var lines []string
	for _, r := range successful {
		statement := r.Payload.Summary()
		turn.Contributions[r.Role] = statement
		lines = append(lines, string(r.Role)+": "+statement)
	}
	turn.Synthesis = strings.Join(lines, "\n")

	return turn
}

type dialogueStatement struct {
	Role      string
	Statement string
}

func (m *DialogueManager) identifyConflicts(ctx context.Context, in *project.Input, successful []Result) (DialogueTurn, error) {
	statements := make([]dialogueStatement, 0, len(successful))
	for _, r := range successful {
		recs := r.Payload.Recommendations()
		if len(recs) > 3 {
			recs = recs[:3]
		}
		statements = append(statements, dialogueStatement{
			Role:      string(r.Role),
			Statement: strings.Join(recs, "\n"),
		})
	}

	prompt, err := m.registry.Render("prompts/dialogue_conflicts", map[string]any{
		"ClientName": in.ClientName,
		"Industry":   in.Industry,
		"Challenge":  in.Challenge,
		"Statements": statements,
	})
	if err != nil {
		return DialogueTurn{}, err
	}

	synthesis, err := m.complete(ctx, conflictsSystemPrompt, prompt, string(PhaseIdentifyConflicts))
	if err != nil {
		return DialogueTurn{}, err
	}

	return DialogueTurn{Phase: PhaseIdentifyConflicts, Synthesis: synthesis}, nil
}

func (m *DialogueManager) buildConsensus(ctx context.Context, in *project.Input, insights, conflicts DialogueTurn) (DialogueTurn, error) {
	prompt, err := m.registry.Render("prompts/dialogue_consensus", map[string]any{
		"ClientName": in.ClientName,
		"Industry":   in.Industry,
		"Challenge":  in.Challenge,
		"Insights":   insights.Synthesis,
		"Conflicts":  conflicts.Synthesis,
	})
	if err != nil {
		return DialogueTurn{}, err
	}

	synthesis, err := m.complete(ctx, consensusSystemPrompt, prompt, string(PhaseBuildConsensus))
	if err != nil {
		return DialogueTurn{}, err
	}

	return DialogueTurn{Phase: PhaseBuildConsensus, Synthesis: synthesis}, nil
}

func (m *DialogueManager) complete(ctx context.Context, system, prompt, phase string) (string, error) {
	completion, err := m.client.Complete(ctx, ai.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: m.temperature,
	})
	if err != nil {
		metrics.LLMCalls.WithLabelValues("dialogue", "error").Inc()
		return "", errors.Wrapf(err, "dialogue phase %s", phase)
	}

	metrics.LLMCalls.WithLabelValues("dialogue", "success").Inc()
	metrics.LLMTokens.WithLabelValues("dialogue", "input").Add(float64(completion.Usage.PromptTokens))
	metrics.LLMTokens.WithLabelValues("dialogue", "output").Add(float64(completion.Usage.CompletionTokens))

	return completion.Text, nil
}

// extractAgreements pulls consensus and action items out of the consensus
// phase text by tracking section headers and list markers.
func extractAgreements(text string) (consensus, actions []string) {
	var section string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "consensus"):
			section = "consensus"
			continue
		case strings.Contains(lower, "action"):
			section = "action"
			continue
		case strings.Contains(lower, "risk"):
			section = ""
			continue
		}

		item, ok := listItem(line)
		if !ok {
			continue
		}
		switch section {
		case "consensus":
			consensus = append(consensus, item)
		case "action":
			actions = append(actions, item)
		}
	}

	if len(consensus) > maxConsensusItems {
		consensus = consensus[:maxConsensusItems]
	}
	if len(actions) > maxActionItems {
		actions = actions[:maxActionItems]
	}
	return consensus, actions
}

// listItem strips bullet or numbered list markers. Returns false for lines
// that are not list items.
func listItem(line string) (string, bool) {
	if line == "" {
		return "", false
	}

	isList := strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "•") || unicode.IsDigit(rune(line[0]))
	if !isList {
		return "", false
	}

	item := strings.TrimLeft(line, "-*•0123456789. \t")
	item = strings.TrimSpace(item)
	if item == "" {
		return "", false
	}
	return item, true
}
