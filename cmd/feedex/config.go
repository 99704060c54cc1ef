package main

import (
	"os"
	"strconv"

	"github.com/peekay/feedex"
)

// Config carries process-wide settings. It is loaded once per
// invocation, from the environment (a .env file is honored when
// present), and immutable afterwards.
type Config struct {
	DBPath       string
	Provider     feedex.Provider
	OpenAIAPIKey string
	GeminiAPIKey string
	Model        string
	EnrichRPS    float64
	Debug        bool
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	provider, err := feedex.ParseProvider(os.Getenv("FEEDEX_PROVIDER"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:       os.Getenv("FEEDEX_DB"),
		Provider:     provider,
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Model:        os.Getenv("FEEDEX_MODEL"),
		EnrichRPS:    1.0,
		Debug:        os.Getenv("FEEDEX_DEBUG") != "",
	}

	if v := os.Getenv("FEEDEX_ENRICH_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, feedex.Errorf(feedex.EINVALID, "invalid FEEDEX_ENRICH_RPS %q", v)
		}
		cfg.EnrichRPS = rps
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	return cfg, nil
}
