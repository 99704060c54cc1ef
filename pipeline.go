package feedex

import (
	"context"
	"log/slog"
	"time"
)

// Pipeline runs one file start to finish: archive decode, fragment
// extraction, optional enrichment, quality analysis. Each call is
// independent; a Pipeline holds no per-file state and is safe for
// concurrent use when its collaborators are.
type Pipeline struct {
	Archive   ArchiveReader
	Extractor PostExtractor

	// Enricher is optional. When nil the enrichment stage is skipped.
	Enricher Enricher

	// Logger receives enrichment failures, which never abort an
	// already-parsed result. Defaults to slog.Default.
	Logger *slog.Logger
}

// ProcessOutput is the outcome of a pipeline run.
type ProcessOutput struct {
	Extraction *ExtractionResult
	Report     *QualityReport
}

// ProcessFile decodes, extracts and optionally enriches a single file.
// An unreadable archive fails the whole file; a document with zero
// post fragments is an empty success; enrichment errors are logged and
// the parsed records stand.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*ProcessOutput, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	html, err := p.Archive.ReadHTML(path)
	if err != nil {
		return nil, err
	}

	records, err := p.Extractor.ExtractPosts(html)
	if err != nil {
		return nil, err
	}

	extraction := &ExtractionResult{
		Records:    records,
		Stage:      StageParsed,
		SourceFile: path,
		ParsedAt:   time.Now().UTC(),
	}

	extraction.Stage = p.enrich(ctx, logger, records)

	return &ProcessOutput{
		Extraction: extraction,
		Report:     AnalyzeRecords(records),
	}, nil
}

// enrich runs the optional enrichment stage in prompt-sized batches.
// A failed batch leaves its records unenriched and does not stop the
// remaining batches.
func (p *Pipeline) enrich(ctx context.Context, logger *slog.Logger, records []*Record) Stage {
	if p.Enricher == nil || len(records) == 0 {
		return StageEnrichmentSkipped
	}

	enriched := 0
	for _, batch := range BatchRecords(records, EnrichmentPromptBudget) {
		if err := p.Enricher.Enrich(ctx, batch); err != nil {
			logger.Warn("enrichment batch failed",
				"records", len(batch),
				"error", err,
			)
			continue
		}
		enriched += len(batch)
	}

	if enriched == 0 {
		return StageEnrichmentSkipped
	}
	return StageEnriched
}
