package agents

import (
	"context"
	"strings"

	"consilium/internal/adapters/ai"
	"consilium/internal/metrics"
	"consilium/internal/project"
	"consilium/pkg/logger"
	"consilium/pkg/templates"
)

const profileSystemPrompt = "You are a corporate research specialist preparing consulting engagement briefs from public information."

// ClientProfile is the enrichment produced before the analysis run.
type ClientProfile struct {
	Industry  string
	Challenge string
	Position  string
}

// Profiler enriches sparse engagement inputs with an LLM-drafted client
// profile. It is best effort: any failure leaves the input untouched.
type Profiler struct {
	client   ai.Client
	registry *templates.Registry
	log      *logger.Logger
}

// NewProfiler creates the client profiler.
func NewProfiler(client ai.Client) *Profiler {
	return &Profiler{
		client:   client,
		registry: templates.Get(),
		log:      logger.Get().With("component", "profiler"),
	}
}

// Enrich fills the input's missing industry and challenge from an LLM-drafted
// profile. Inputs that already carry both fields are returned unchanged
// without an LLM call.
func (p *Profiler) Enrich(ctx context.Context, in *project.Input) *ClientProfile {
	if p.client == nil {
		return nil
	}
	if in.Industry != "" && in.Challenge != "" && in.Challenge != project.DefaultChallenge {
		return nil
	}

	prompt, err := p.registry.Render("prompts/client_profile", map[string]any{
		"ClientName": in.ClientName,
		"Industry":   in.Industry,
		"Challenge":  in.Challenge,
	})
	if err != nil {
		p.log.Warnw("Failed to render profile prompt", "error", err)
		return nil
	}

	completion, err := p.client.Complete(ctx, ai.CompletionRequest{
		System: profileSystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		metrics.LLMCalls.WithLabelValues("profiler", "error").Inc()
		p.log.Warnw("Client profiling failed, continuing without enrichment", "error", err)
		return nil
	}
	metrics.LLMCalls.WithLabelValues("profiler", "success").Inc()

	profile := parseProfile(completion.Text)
	if profile == nil {
		p.log.Warnw("Client profile response had no labeled lines")
		return nil
	}

	if in.Industry == "" && profile.Industry != "" {
		in.Industry = profile.Industry
	}
	if (in.Challenge == "" || in.Challenge == project.DefaultChallenge) && profile.Challenge != "" {
		in.Challenge = profile.Challenge
	}

	return profile
}

// parseProfile extracts the labeled lines from the model response. Returns
// nil when no label was found.
func parseProfile(text string) *ClientProfile {
	profile := &ClientProfile{}
	found := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for label, dst := range map[string]*string{
			"Industry:":  &profile.Industry,
			"Challenge:": &profile.Challenge,
			"Position:":  &profile.Position,
		} {
			if rest, ok := strings.CutPrefix(line, label); ok {
				*dst = strings.TrimSpace(rest)
				found = true
			}
		}
	}

	if !found {
		return nil
	}
	return profile
}
