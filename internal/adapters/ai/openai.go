package ai

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"

	"consilium/pkg/errors"
	"consilium/pkg/logger"
)

// Ensure OpenAIClient implements Client
var _ Client = (*OpenAIClient)(nil)

// OpenAIClient implements chat completions using the official OpenAI Go SDK
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
	timeout     time.Duration
	limiter     *rate.Limiter
	log         *logger.Logger
}

// OpenAIOptions configures the OpenAI client.
type OpenAIOptions struct {
	APIKey            string
	Model             string
	Temperature       float64
	MaxTokens         int64
	Timeout           time.Duration
	RequestsPerMinute float64
}

// NewOpenAIClient creates a new OpenAI chat client using the official SDK
func NewOpenAIClient(opts OpenAIOptions) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "openai API key is required")
	}

	if opts.Model == "" {
		opts.Model = openai.ChatModelGPT4o
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 60
	}

	burst := int(opts.RequestsPerMinute / 10)
	if burst < 1 {
		burst = 1
	}

	client := openai.NewClient(
		option.WithAPIKey(opts.APIKey),
	)

	return &OpenAIClient{
		client:      client,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		timeout:     opts.Timeout,
		limiter:     rate.NewLimiter(rate.Limit(opts.RequestsPerMinute/60.0), burst),
		log:         logger.Get().With("component", "openai_chat", "model", opts.Model),
	}, nil
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Complete sends a chat completion request to the OpenAI API
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	if req.Prompt == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "prompt cannot be empty")
	}

	// Wait for rate limiter before spending quota
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait cancelled")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	}
	if temperature > 0 {
		params.Temperature = openai.Float(temperature)
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(maxTokens)
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "openai API call failed")
	}

	if len(resp.Choices) == 0 {
		return nil, errors.Wrap(errors.ErrExternal, "openai returned no choices")
	}

	c.log.Debugw("Chat completion finished",
		"duration", time.Since(start),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return &Completion{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
