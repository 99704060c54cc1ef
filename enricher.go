package feedex

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Provider selects the enrichment backend. Selection happens once at
// configuration time, never by runtime type inspection.
type Provider string

// Supported enrichment providers.
const (
	ProviderNone   Provider = "none"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// ParseProvider validates a provider name from configuration.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderNone, "":
		return ProviderNone, nil
	case ProviderOpenAI, "chatgpt":
		return ProviderOpenAI, nil
	case ProviderGemini:
		return ProviderGemini, nil
	}
	return ProviderNone, Errorf(EINVALID, "unknown enrichment provider %q", s)
}

// Enricher augments records with company and location data via a
// remote model. Implementations mutate only the Company and Location
// fields and must never fail an entire batch because a single record's
// response could not be parsed.
type Enricher interface {
	// Enrich populates enrichment fields in place. A returned error
	// means the batch could not be enriched (provider unreachable or
	// a fully unparsable response); records are left unmodified in
	// that case and callers continue with the parsed values.
	Enrich(ctx context.Context, records []*Record) error
}

// EnrichmentPromptBudget caps the rendered record context included in
// a single enrichment prompt, matching typical model context limits.
const EnrichmentPromptBudget = 10000

// BatchRecords splits records into batches whose rendered prompt
// context stays within budget characters. Every batch contains at
// least one record, so a single oversized record still gets sent
// rather than silently dropped.
func BatchRecords(records []*Record, budget int) [][]*Record {
	var batches [][]*Record
	var batch []*Record
	size := 0

	for _, rec := range records {
		n := len(renderRecordContext(rec))
		if len(batch) > 0 && size+n > budget {
			batches = append(batches, batch)
			batch = nil
			size = 0
		}
		batch = append(batch, rec)
		size += n
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}
	return batches
}

// BuildEnrichmentPrompt renders a batch of records into the user
// prompt sent to the model. The response contract is a JSON object
// keyed by post index so individual records can be applied even when
// others are missing or malformed.
func BuildEnrichmentPrompt(records []*Record) string {
	var sb strings.Builder
	sb.WriteString("Extract the hiring company name and the role location from each LinkedIn post below. ")
	sb.WriteString("Note whether in-office presence is required as part of the location. ")
	sb.WriteString("Respond with JSON only, in the form ")
	sb.WriteString(`{"records":[{"postIndex":0,"company":"...","location":"..."}]}. `)
	sb.WriteString("Use an empty string when a value cannot be determined.\n\n<posts>\n")
	for _, rec := range records {
		sb.WriteString(renderRecordContext(rec))
	}
	sb.WriteString("</posts>")
	return sb.String()
}

// EnrichmentSystemPrompt is the system instruction shared by all
// provider adapters.
const EnrichmentSystemPrompt = "You are an expert at extracting structured data from LinkedIn posts. Return valid JSON only."

func renderRecordContext(rec *Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<post index=%q>\n", fmt.Sprint(rec.PostIndex))
	fmt.Fprintf(&sb, "<name>%s</name>\n", rec.Name)
	fmt.Fprintf(&sb, "<title>%s</title>\n", rec.Title)
	fmt.Fprintf(&sb, "<details>%s</details>\n", rec.Details)
	sb.WriteString("</post>\n")
	return sb.String()
}

// enrichmentResponse mirrors the JSON contract in BuildEnrichmentPrompt.
type enrichmentResponse struct {
	Records []json.RawMessage `json:"records"`
}

type enrichmentEntry struct {
	PostIndex int    `json:"postIndex"`
	Company   string `json:"company"`
	Location  string `json:"location"`
}

// ApplyEnrichmentResponse parses a model response and applies company
// and location values to the matching records. Entries that fail to
// parse or reference an unknown post index are skipped; the rest of
// the batch is applied normally. Returns the number of records
// updated. A top-level parse failure returns zero applied and an
// EINTERNAL error; callers log it and keep the unenriched records.
func ApplyEnrichmentResponse(data []byte, records []*Record) (int, error) {
	byIndex := make(map[int]*Record, len(records))
	for _, rec := range records {
		byIndex[rec.PostIndex] = rec
	}

	var resp enrichmentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		// Some models wrap results in a bare array instead of the
		// requested object shape.
		if arrErr := json.Unmarshal(data, &resp.Records); arrErr != nil {
			return 0, Errorf(EINTERNAL, "unparsable enrichment response: %v", err)
		}
	}

	applied := 0
	for _, raw := range resp.Records {
		var entry enrichmentEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		rec, ok := byIndex[entry.PostIndex]
		if !ok {
			continue
		}
		rec.Company = normalizeEnrichmentValue(entry.Company)
		rec.Location = normalizeEnrichmentValue(entry.Location)
		applied++
	}
	return applied, nil
}

// normalizeEnrichmentValue maps model placeholder answers to the empty
// string so unanswered fields stay consistent with extraction misses.
func normalizeEnrichmentValue(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "n/a", "na", "none", "unknown", "not specified":
		return ""
	}
	return s
}
