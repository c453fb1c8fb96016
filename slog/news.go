package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsgenie"
)

// Ensure LoggingNewsService implements newsgenie.NewsService.
var _ newsgenie.NewsService = (*LoggingNewsService)(nil)

// LoggingNewsService wraps a NewsService with logging.
type LoggingNewsService struct {
	next   newsgenie.NewsService
	logger *slog.Logger
}

// NewLoggingNewsService creates a new LoggingNewsService.
func NewLoggingNewsService(next newsgenie.NewsService, logger *slog.Logger) *LoggingNewsService {
	return &LoggingNewsService{next: next, logger: logger}
}

// TopHeadlines delegates to the wrapped service and logs the operation.
func (s *LoggingNewsService) TopHeadlines(ctx context.Context, category string) (list *newsgenie.ArticleList, err error) {
	defer func(begin time.Time) {
		s.logger.Info("top headlines",
			"category", category,
			"count", articleCount(list),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.TopHeadlines(ctx, category)
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingNewsService) Search(ctx context.Context, query string) (list *newsgenie.ArticleList, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"count", articleCount(list),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

func articleCount(l *newsgenie.ArticleList) int {
	if l == nil {
		return 0
	}
	return len(l.Articles)
}
