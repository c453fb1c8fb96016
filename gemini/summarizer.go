// Package gemini implements newsgenie.Summarizer using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/newsgenie"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const (
	temperature     = 0.2
	maxOutputTokens = 450
)

// Ensure Summarizer implements newsgenie.Summarizer at compile time.
var _ newsgenie.Summarizer = (*Summarizer)(nil)

// Summarizer implements newsgenie.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client, opts ...Option) *Summarizer {
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

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		BuildContents(text),
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, newsgenie.Errorf(newsgenie.EINTERNAL, "gemini returned nil result")
	}

	summary := newsgenie.NormalizeBullets(result.Text())
	return &summary, nil
}

// BuildConfig returns the GenerateContentConfig for summary requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(temperature)
	return &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: maxOutputTokens,
	}
}

// BuildContents wraps the summary prompt for text in a single user turn.
func BuildContents(text string) []*genai.Content {
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: newsgenie.BuildSummaryPrompt(text)}},
	}}
}
