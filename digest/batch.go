package digest

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/fwojciec/newsgenie"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once by ExtractAll.
const DefaultConcurrency = 4

// ExtractResult holds the outcome of extracting one URL.
// Text is empty when the page held no recognizable article.
type ExtractResult struct {
	URL  string
	Text string
	Err  error
}

// ProgressEvent reports progress during ExtractAll.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress. Calls are serialized.
type ProgressFunc func(event ProgressEvent)

type indexedResult struct {
	position int
	result   ExtractResult
}

// ExtractAll fetches and extracts every URL and returns the results in input
// order. A failing URL is reported in its result and never stops the batch.
// The progress callback, if provided, receives events as URLs finish.
func (s *Service) ExtractAll(ctx context.Context, urls []string, progress ProgressFunc) []ExtractResult {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan indexedResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- indexedResult{position: i, result: s.extractOne(gctx, u)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]ExtractResult, total)
	for r := range resultCh {
		results[r.position] = r.result
		done := int(completed.Add(1))

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: done,
			Total:     total,
			URL:       r.result.URL,
		}
		if r.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.result.Err
		}
		progress(event)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})
	return results
}

func (s *Service) extractOne(ctx context.Context, rawURL string) ExtractResult {
	result := ExtractResult{URL: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		result.Err = newsgenie.Errorf(newsgenie.EINVALID, "invalid URL %q", rawURL)
		return result
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			result.Err = err
			return result
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, s.logRetry, delays)
	if err != nil {
		result.Err = err
		return result
	}

	result.Text = s.Extractor.ExtractText(rawURL, html)
	return result
}

func (s *Service) logRetry(url string, attempt int, err error) {
	s.logger().Debug("retry fetch", "url", url, "attempt", attempt, "err", err)
}
