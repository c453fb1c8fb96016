package mock

import (
	"context"

	"github.com/fwojciec/newsgenie"
)

var _ newsgenie.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of newsgenie.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text string) (*newsgenie.Summary, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (*newsgenie.Summary, error) {
	return s.SummarizeFn(ctx, text)
}

var _ newsgenie.ArticleSummarizer = (*ArticleSummarizer)(nil)

// ArticleSummarizer is a mock implementation of newsgenie.ArticleSummarizer.
type ArticleSummarizer struct {
	SummarizeArticleFn func(ctx context.Context, req newsgenie.SummarizeRequest) (*newsgenie.Summary, error)
}

func (s *ArticleSummarizer) SummarizeArticle(ctx context.Context, req newsgenie.SummarizeRequest) (*newsgenie.Summary, error) {
	return s.SummarizeArticleFn(ctx, req)
}
