package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsgenie"
	"github.com/fwojciec/newsgenie/digest"
	"github.com/fwojciec/newsgenie/gemini"
	"github.com/fwojciec/newsgenie/goquery"
	nghttp "github.com/fwojciec/newsgenie/http"
	"github.com/fwojciec/newsgenie/newsapi"
	"github.com/fwojciec/newsgenie/openai"
	"github.com/fwojciec/newsgenie/readability"
	"github.com/fwojciec/newsgenie/rod"
	ngslog "github.com/fwojciec/newsgenie/slog"
	"github.com/fwojciec/newsgenie/trafilatura"
	openaisdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher used by the commands. Closed by Close.
	Fetcher newsgenie.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsgenie"),
		kong.Description("News headlines and five-bullet article summaries."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsgenie --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	cmd := kongCtx.Command()

	// Pages named on the command line come from the operator, so only the
	// server restricts fetches to public addresses.
	allowPrivate := cmd != "serve" || cli.Serve.AllowPrivate

	if err := m.openFetcher(cli, allowPrivate); err != nil {
		return err
	}
	defer m.Close()

	heuristic, err := NewHeuristic(cli.Heuristic)
	if err != nil {
		return err
	}
	extractor := goquery.NewExtractor(
		goquery.WithHeuristic(heuristic),
		goquery.WithLogger(logger),
	)

	summarizer, err := m.openSummarizer(ctx, cli)
	if err != nil {
		return err
	}

	deps.Digest = &digest.Service{
		Fetcher:     ngslog.NewLoggingFetcher(m.Fetcher, logger),
		Extractor:   ngslog.NewLoggingTextExtractor(extractor, logger),
		RateLimiter: digest.NewDomainLimiter(1.0),
		Logger:      logger,
	}
	if summarizer != nil {
		deps.Digest.Summarizer = ngslog.NewLoggingSummarizer(summarizer, logger)
		deps.Summarizer = ngslog.NewLoggingArticleSummarizer(deps.Digest, logger)
	}

	if cli.NewsAPIKey != "" {
		deps.News = ngslog.NewLoggingNewsService(newsapi.NewClient(cli.NewsAPIKey), logger)
	}

	return kongCtx.Run(deps)
}

// openFetcher refuses the browser fetcher when private addresses must be
// blocked, since Chrome resolves and loads URLs outside our dialer.
func (m *Main) openFetcher(cli *CLI, allowPrivate bool) error {
	if cli.Browser {
		if !allowPrivate {
			return newsgenie.Errorf(newsgenie.EINVALID, "--browser cannot block private network addresses; add --allow-private to serve with it")
		}
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.FetchTimeout))
		if err != nil {
			return fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		m.Fetcher = fetcher
		return nil
	}

	m.Fetcher = nghttp.NewFetcher(
		nghttp.WithTimeout(cli.FetchTimeout),
		nghttp.WithPrivateNetworks(allowPrivate),
	)
	return nil
}

// openSummarizer returns nil when no provider key is configured.
func (m *Main) openSummarizer(ctx context.Context, cli *CLI) (newsgenie.Summarizer, error) {
	provider, err := ResolveProvider(cli.Provider, cli.OpenAIKey, cli.GeminiKey)
	if err != nil || provider == "" {
		return nil, err
	}

	switch provider {
	case ProviderOpenAI:
		client := openaisdk.NewClient(option.WithAPIKey(cli.OpenAIKey))
		return openai.NewSummarizer(client, openai.WithModel(cli.Model)), nil
	default:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewSummarizer(client, gemini.WithModel(cli.Model)), nil
	}
}

// Summarization providers.
const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ResolveProvider picks the summarization provider. With "auto", OpenAI is
// preferred when its key is set. An empty result means none is configured.
func ResolveProvider(provider, openaiKey, geminiKey string) (string, error) {
	switch provider {
	case ProviderOpenAI:
		if openaiKey == "" {
			return "", newsgenie.Errorf(newsgenie.EINVALID, "OPENAI_API_KEY not set")
		}
		return ProviderOpenAI, nil
	case ProviderGemini:
		if geminiKey == "" {
			return "", newsgenie.Errorf(newsgenie.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		return ProviderGemini, nil
	case ProviderAuto, "":
		switch {
		case openaiKey != "":
			return ProviderOpenAI, nil
		case geminiKey != "":
			return ProviderGemini, nil
		}
		return "", nil
	}
	return "", newsgenie.Errorf(newsgenie.EINVALID, "unknown provider %q", provider)
}

// NewHeuristic returns the content heuristic with the given name.
func NewHeuristic(name string) (newsgenie.ContentHeuristic, error) {
	switch name {
	case "", "readability":
		return readability.NewHeuristic(), nil
	case "trafilatura":
		return trafilatura.NewHeuristic(), nil
	}
	return nil, newsgenie.Errorf(newsgenie.EINVALID, "unknown heuristic %q", name)
}
