package mock

import (
	"context"

	"github.com/fwojciec/newsgenie"
)

var _ newsgenie.NewsService = (*NewsService)(nil)

// NewsService is a mock implementation of newsgenie.NewsService.
type NewsService struct {
	TopHeadlinesFn func(ctx context.Context, category string) (*newsgenie.ArticleList, error)
	SearchFn       func(ctx context.Context, query string) (*newsgenie.ArticleList, error)
}

func (s *NewsService) TopHeadlines(ctx context.Context, category string) (*newsgenie.ArticleList, error) {
	return s.TopHeadlinesFn(ctx, category)
}

func (s *NewsService) Search(ctx context.Context, query string) (*newsgenie.ArticleList, error) {
	return s.SearchFn(ctx, query)
}
