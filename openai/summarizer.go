// Package openai implements newsgenie.Summarizer using OpenAI chat completions.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/newsgenie"
	"github.com/openai/openai-go/v2"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.ChatModelGPT4oMini

const (
	temperature = 0.2
	maxTokens   = 450
)

// Ensure Summarizer implements newsgenie.Summarizer at compile time.
var _ newsgenie.Summarizer = (*Summarizer)(nil)

// Summarizer implements newsgenie.Summarizer using OpenAI.
type Summarizer struct {
	client openai.Client
	model  openai.ChatModel
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.model = openai.ChatModel(model)
		}
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client openai.Client, opts ...Option) *Summarizer {
	s := &Summarizer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize asks the model for five bullets and normalizes its answer.
func (s *Summarizer) Summarize(ctx context.Context, text string) (*newsgenie.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, newsgenie.Errorf(newsgenie.EINVALID, "article text required")
	}

	resp, err := s.client.Chat.Completions.New(ctx, BuildParams(s.model, text))
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, newsgenie.Errorf(newsgenie.EINTERNAL, "openai returned no choices")
	}

	summary := newsgenie.NormalizeBullets(resp.Choices[0].Message.Content)
	return &summary, nil
}

// BuildParams returns the chat completion request for text.
func BuildParams(model openai.ChatModel, text string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(newsgenie.BuildSummaryPrompt(text)),
		},
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxTokens),
	}
}
