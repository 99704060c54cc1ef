package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/peekay/feedex"
	"github.com/peekay/feedex/gemini"
	"github.com/peekay/feedex/goquery"
	"github.com/peekay/feedex/mhtml"
	"github.com/peekay/feedex/openai"
	"github.com/peekay/feedex/rate"
	"github.com/peekay/feedex/retry"
	feedexslog "github.com/peekay/feedex/slog"
	"github.com/peekay/feedex/sqlite"
	goopenai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the result store.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ResultService feedex.ResultService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Config: cfg,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("feedex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'feedex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The parse command works without a database; everything else
	// needs the result store.
	if cmd != "parse" {
		m.DB = sqlite.NewDB(cfg.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FEEDEX_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
		}
		defer m.Close()

		m.ResultService = sqlite.NewResultService(m.DB)
		deps.DB = m.DB
		deps.Results = m.ResultService
	}

	if cmd == "parse" || cmd == "serve" {
		provider := cfg.Provider
		if cmd == "parse" && cli.Parse.Provider != "" {
			provider, err = feedex.ParseProvider(cli.Parse.Provider)
			if err != nil {
				return err
			}
		}

		enricher, err := newEnricher(ctx, cfg, provider, logger)
		if err != nil {
			return err
		}

		deps.Pipeline = &feedex.Pipeline{
			Archive:   mhtml.NewReader(),
			Extractor: feedexslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
			Enricher:  enricher,
			Logger:    logger,
		}
	}

	return kongCtx.Run(deps)
}

// newEnricher constructs the configured enrichment backend, wrapped
// with logging, a request rate limit, and retries for transient
// provider failures. Returns nil for ProviderNone.
func newEnricher(ctx context.Context, cfg Config, provider feedex.Provider, logger *slog.Logger) (feedex.Enricher, error) {
	var enricher feedex.Enricher

	switch provider {
	case feedex.ProviderNone:
		return nil, nil

	case feedex.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, feedex.Errorf(feedex.EINVALID, "OPENAI_API_KEY not set")
		}
		client := goopenai.NewClient(cfg.OpenAIAPIKey)
		enricher = openai.NewEnricher(client, cfg.Model)

	case feedex.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, feedex.Errorf(feedex.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		enricher = gemini.NewEnricher(client, cfg.Model)
	}

	// Retries sit outermost so each attempt goes back through the
	// rate limiter.
	return retry.NewEnricher(rate.NewEnricher(feedexslog.NewLoggingEnricher(enricher, logger), cfg.EnrichRPS)), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "feedex.db"
	}
	dir := filepath.Join(home, ".feedex")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "feedex.db")
}
