package main

import (
	nghttp "github.com/fwojciec/newsgenie/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := nghttp.NewServer()
	s.Addr = c.Addr
	s.Logger = deps.Logger
	s.NewsService = deps.News
	s.ArticleSummarizer = deps.Summarizer
	s.TrustProxy = c.TrustProxy
	if c.Rate > 0 {
		s.SummarizeLimiter = nghttp.NewClientLimiter(c.Rate, c.Burst)
	}

	if err := s.Open(); err != nil {
		return err
	}
	deps.Logger.Info("listening",
		"url", s.URL(),
		"news", s.NewsService != nil,
		"summarizer", s.ArticleSummarizer != nil,
	)

	<-deps.Ctx.Done()
	return s.Close()
}
