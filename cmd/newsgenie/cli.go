package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsgenie"
	"github.com/fwojciec/newsgenie/digest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Digest     *digest.Service
	Summarizer newsgenie.ArticleSummarizer // nil without a provider key
	News       newsgenie.NewsService       // nil without NEWSAPI_KEY
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug        bool          `help:"Enable debug logging" env:"NEWSGENIE_DEBUG"`
	Provider     string        `enum:"auto,openai,gemini" default:"auto" env:"NEWSGENIE_PROVIDER" help:"Summarization provider (auto, openai, gemini)"`
	Model        string        `env:"NEWSGENIE_MODEL" help:"Override the provider's default model"`
	Heuristic    string        `enum:"readability,trafilatura" default:"readability" env:"NEWSGENIE_HEURISTIC" help:"Content heuristic used when selectors find nothing"`
	Browser      bool          `help:"Fetch pages with headless Chrome"`
	FetchTimeout time.Duration `default:"15s" help:"Timeout for fetching one article"`
	NewsAPIKey   string        `name:"newsapi-key" env:"NEWSAPI_KEY" help:"newsapi.org API key"`
	OpenAIKey    string        `name:"openai-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	GeminiKey    string        `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key"`

	Serve     ServeCmd     `cmd:"" help:"Run the HTTP API server"`
	Extract   ExtractCmd   `cmd:"" help:"Print the article text found at each URL"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize an article into five bullets"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr         string  `default:":7300" env:"NEWSGENIE_ADDR" help:"Listen address"`
	Rate         float64 `default:"1" help:"Summarize requests per second per client"`
	Burst        int     `default:"5" help:"Summarize request burst per client"`
	AllowPrivate bool    `help:"Allow fetching articles from private network addresses"`
	TrustProxy   bool    `env:"NEWSGENIE_TRUST_PROXY" help:"Take client addresses from X-Forwarded-For (only behind a trusted proxy)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	URL     string `arg:"" optional:"" help:"Article URL"`
	Content string `help:"Article text to summarize instead of fetching"`
}
