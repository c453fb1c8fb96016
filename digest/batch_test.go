package digest_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/newsgenie"
	"github.com/fwojciec/newsgenie/digest"
	"github.com/fwojciec/newsgenie/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ExtractAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://a.example.com/1",
			"https://b.example.com/2",
			"https://c.example.com/3",
		}
		svc := &digest.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == urls[0] {
						time.Sleep(20 * time.Millisecond)
					}
					return url, nil
				},
			},
			Extractor: &mock.TextExtractor{
				ExtractTextFn: func(pageURL, html string) string { return "text of " + html },
			},
			Concurrency: 3,
		}

		results := svc.ExtractAll(context.Background(), urls, nil)

		require.Len(t, results, 3)
		for i, r := range results {
			assert.Equal(t, urls[i], r.URL)
			assert.Equal(t, "text of "+urls[i], r.Text)
			assert.NoError(t, r.Err)
		}
	})

	t.Run("reports failures without stopping the batch", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("connection reset")
		svc := &digest.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://bad.example.com/" {
						return "", fetchErr
					}
					return "<html></html>", nil
				},
			},
			Extractor: &mock.TextExtractor{
				ExtractTextFn: func(string, string) string { return "" },
			},
			RetryDelays: []time.Duration{time.Millisecond},
		}

		var mu sync.Mutex
		var events []digest.ProgressEvent
		results := svc.ExtractAll(context.Background(), []string{
			"https://bad.example.com/",
			"not a url",
			"https://good.example.com/",
		}, func(e digest.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.Len(t, results, 3)
		assert.ErrorIs(t, results[0].Err, fetchErr)
		assert.Equal(t, newsgenie.EINVALID, newsgenie.ErrorCode(results[1].Err))
		assert.NoError(t, results[2].Err)
		assert.Empty(t, results[2].Text)

		require.Len(t, events, 5)
		assert.Equal(t, digest.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		assert.Equal(t, digest.ProgressFinished, events[4].Type)
		assert.Equal(t, 3, events[4].Completed)

		var failed int
		for _, e := range events[1:4] {
			if e.Type == digest.ProgressFailed {
				failed++
			}
		}
		assert.Equal(t, 2, failed)
	})

	t.Run("waits on the domain limiter per host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		svc := &digest.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "", nil },
			},
			Extractor: &mock.TextExtractor{
				ExtractTextFn: func(string, string) string { return "" },
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					mu.Lock()
					defer mu.Unlock()
					domains = append(domains, domain)
					return nil
				},
			},
			Concurrency: 1,
		}

		svc.ExtractAll(context.Background(), []string{"https://news.example.com:8443/a", "https://other.example.org/b"}, nil)

		assert.ElementsMatch(t, []string{"news.example.com", "other.example.org"}, domains)
	})

	t.Run("handles an empty batch", func(t *testing.T) {
		t.Parallel()

		results := (&digest.Service{}).ExtractAll(context.Background(), nil, nil)

		assert.Empty(t, results)
	})
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		var retried []int
		html, err := digest.FetchWithRetryDelays(context.Background(), "https://example.com",
			func(context.Context, string) (string, error) {
				attempts++
				if attempts < 3 {
					return "", errors.New("temporary")
				}
				return "<html></html>", nil
			},
			func(_ string, attempt int, _ error) { retried = append(retried, attempt) },
			[]time.Duration{time.Millisecond, time.Millisecond},
		)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, []int{2, 3}, retried)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		_, err := digest.FetchWithRetryDelays(context.Background(), "https://example.com",
			func(context.Context, string) (string, error) {
				attempts++
				return "", errors.New("down")
			},
			nil,
			[]time.Duration{time.Millisecond},
		)

		require.EqualError(t, err, "down")
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry invalid requests", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		_, err := digest.FetchWithRetryDelays(context.Background(), "ftp://example.com",
			func(context.Context, string) (string, error) {
				attempts++
				return "", newsgenie.Errorf(newsgenie.EINVALID, "unsupported URL scheme")
			},
			nil,
			[]time.Duration{time.Millisecond},
		)

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := digest.FetchWithRetryDelays(ctx, "https://example.com",
			func(context.Context, string) (string, error) {
				cancel()
				return "", errors.New("down")
			},
			nil,
			[]time.Duration{time.Hour},
		)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
