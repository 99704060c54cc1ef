// Package openai provides record enrichment using the OpenAI chat
// completion API.
package openai

import (
	"context"

	"github.com/peekay/feedex"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4o

// Ensure Enricher implements feedex.Enricher at compile time.
var _ feedex.Enricher = (*Enricher)(nil)

// Enricher implements feedex.Enricher using OpenAI.
type Enricher struct {
	client *openai.Client
	model  string
}

// NewEnricher creates a new Enricher. An empty model selects
// DefaultModel.
func NewEnricher(client *openai.Client, model string) *Enricher {
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

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: feedex.EnrichmentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: feedex.BuildEnrichmentPrompt(records)},
		},
	})
	if err != nil {
		return feedex.Errorf(feedex.EUNAVAILABLE, "openai request failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return feedex.Errorf(feedex.EINTERNAL, "openai returned no choices")
	}

	_, err = feedex.ApplyEnrichmentResponse([]byte(resp.Choices[0].Message.Content), records)
	return err
}
