// Package digest turns article URLs and supplied content into summaries.
// It coordinates fetching, text extraction and summarization.
package digest

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsgenie"
)

// Ensure Service implements newsgenie.ArticleSummarizer at compile time.
var _ newsgenie.ArticleSummarizer = (*Service)(nil)

// Service orchestrates article summarization and batch extraction.
type Service struct {
	Fetcher     newsgenie.Fetcher
	Extractor   newsgenie.TextExtractor
	Summarizer  newsgenie.Summarizer
	RateLimiter newsgenie.DomainLimiter // optional, used by ExtractAll
	Logger      *slog.Logger            // optional
	Concurrency int                     // ExtractAll workers, defaults to DefaultConcurrency
	RetryDelays []time.Duration         // ExtractAll fetch backoff, defaults to DefaultRetryDelays
}

// SummarizeArticle summarizes req.Content when it is long enough, otherwise
// the article fetched from req.URL. When no usable text is found the
// summarizer is not called and UnavailableSummary is returned.
func (s *Service) SummarizeArticle(ctx context.Context, req newsgenie.SummarizeRequest) (*newsgenie.Summary, error) {
	content := strings.TrimSpace(req.Content)
	pageURL := strings.TrimSpace(req.URL)
	if content == "" && pageURL == "" {
		return nil, newsgenie.Errorf(newsgenie.EINVALID, "Missing content or URL")
	}

	text := content
	if !usable(text) && pageURL != "" {
		html, err := s.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger().Warn("fetch article", "url", pageURL, "err", err)
			html = ""
		}
		text = s.Extractor.ExtractText(pageURL, html)
	}

	if !usable(text) {
		return newsgenie.UnavailableSummary(), nil
	}

	return s.Summarizer.Summarize(ctx, text)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// usable reports whether text is long enough to be worth summarizing.
func usable(text string) bool {
	return utf8.RuneCountInString(text) >= newsgenie.MinArticleLength
}
