package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsgenie"
)

// Ensure LoggingSummarizer implements newsgenie.Summarizer.
var _ newsgenie.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   newsgenie.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next newsgenie.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the operation.
func (s *LoggingSummarizer) Summarize(ctx context.Context, text string) (summary *newsgenie.Summary, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, text)
}

// Ensure LoggingArticleSummarizer implements newsgenie.ArticleSummarizer.
var _ newsgenie.ArticleSummarizer = (*LoggingArticleSummarizer)(nil)

// LoggingArticleSummarizer wraps an ArticleSummarizer with logging.
type LoggingArticleSummarizer struct {
	next   newsgenie.ArticleSummarizer
	logger *slog.Logger
}

// NewLoggingArticleSummarizer creates a new LoggingArticleSummarizer.
func NewLoggingArticleSummarizer(next newsgenie.ArticleSummarizer, logger *slog.Logger) *LoggingArticleSummarizer {
	return &LoggingArticleSummarizer{next: next, logger: logger}
}

// SummarizeArticle delegates to the wrapped service and logs whether a
// summary was produced.
func (s *LoggingArticleSummarizer) SummarizeArticle(ctx context.Context, req newsgenie.SummarizeRequest) (summary *newsgenie.Summary, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize article",
			"url", req.URL,
			"content_chars", utf8.RuneCountInString(req.Content),
			"bullets", bulletCount(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SummarizeArticle(ctx, req)
}

func bulletCount(s *newsgenie.Summary) int {
	if s == nil {
		return 0
	}
	return len(s.Bullets)
}
