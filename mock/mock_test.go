package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/newsgenie"
	"github.com/fwojciec/newsgenie/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleSummarizer_SummarizeArticle(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SummarizeArticleFn", func(t *testing.T) {
		t.Parallel()

		var calledWith newsgenie.SummarizeRequest
		s := &mock.ArticleSummarizer{
			SummarizeArticleFn: func(_ context.Context, req newsgenie.SummarizeRequest) (*newsgenie.Summary, error) {
				calledWith = req
				return newsgenie.UnavailableSummary(), nil
			},
		}

		req := newsgenie.SummarizeRequest{URL: "https://example.com/a", Content: "body"}
		got, err := s.SummarizeArticle(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, req, calledWith)
		assert.Equal(t, newsgenie.UnavailableMessage, got.Summary)
	})
}
