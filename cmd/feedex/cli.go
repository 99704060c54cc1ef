package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/peekay/feedex"
	"github.com/peekay/feedex/sqlite"
)

// Dependencies holds all services and configuration for command
// execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   Config
	DB       *sqlite.DB
	Results  feedex.ResultService
	Pipeline *feedex.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Parse   ParseCmd   `cmd:"" help:"Extract posts from an MHTML activity export"`
	Serve   ServeCmd   `cmd:"" help:"Run the web upload interface"`
	Results ResultsCmd `cmd:"" help:"List stored results"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored result"`
	Cleanup CleanupCmd `cmd:"" help:"Remove expired results"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File     string `arg:"" help:"Path to the .mhtml/.mht export"`
	Provider string `short:"p" help:"Enrichment provider (none|openai|gemini), overrides FEEDEX_PROVIDER"`
	Format   string `short:"f" default:"table" enum:"table,csv,json" help:"Output format"`
	Output   string `short:"o" help:"Write output to a file instead of stdout"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `default:":8080" env:"FEEDEX_ADDR" help:"Listen address"`
	UploadDir string `default:"uploads" env:"FEEDEX_UPLOAD_DIR" help:"Directory for per-request temporary uploads"`
}

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	Limit int `default:"20" help:"Maximum results to list"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Result ID"`
}

// CleanupCmd is the "cleanup" subcommand.
type CleanupCmd struct{}
