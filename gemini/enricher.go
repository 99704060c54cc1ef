// Package gemini provides record enrichment using Google Gemini.
package gemini

import (
	"context"

	"github.com/peekay/feedex"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Enricher implements feedex.Enricher at compile time.
var _ feedex.Enricher = (*Enricher)(nil)

// Enricher implements feedex.Enricher using the Gemini API.
type Enricher struct {
	client *genai.Client
	model  string
}

// NewEnricher creates a new Enricher. An empty model selects
// DefaultModel.
func NewEnricher(client *genai.Client, model string) *Enricher {
	if model == "" {
		model = DefaultModel
	}
	return &Enricher{client: client, model: model}
}

// Enrich populates company and location fields for a batch of records.
func (e *Enricher) Enrich(ctx context.Context, records []*feedex.Record) error {
	if len(records) == 0 {
		return nil
	}

	prompt := feedex.BuildEnrichmentPrompt(records)

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return feedex.Errorf(feedex.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return feedex.Errorf(feedex.EINTERNAL, "gemini returned nil result")
	}

	_, err = feedex.ApplyEnrichmentResponse([]byte(result.Text()), records)
	return err
}

// BuildConfig returns the GenerateContentConfig for enrichment calls.
// JSON output is requested explicitly so responses parse without
// markdown fence stripping.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: feedex.EnrichmentSystemPrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
