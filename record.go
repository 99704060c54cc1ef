package feedex

import "time"

// Record is one extracted post. Name, Title, Period and Details are
// populated during parsing; Company and Location only during the
// optional enrichment stage. Fields that could not be extracted are
// left empty rather than treated as errors.
type Record struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Period    string `json:"period"`
	Details   string `json:"details"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	PostIndex int    `json:"postIndex"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "record name required")
	}
	if r.PostIndex < 0 {
		return Errorf(EINVALID, "record post index must not be negative")
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	other := *r
	return &other
}

// Stage identifies how far a file has progressed through the pipeline.
type Stage string

// Pipeline stages. Parsing always runs first; enrichment is optional
// and its failure never reverts a result below StageParsed.
const (
	StageReceived          Stage = "received"
	StageParsed            Stage = "parsed"
	StageEnriched          Stage = "enriched"
	StageEnrichmentSkipped Stage = "enrichment_skipped"
	StageExported          Stage = "exported"
)

// ExtractionResult is the ordered record sequence produced from a
// single document. A result with zero records is a valid outcome for
// documents that contain no recognizable post fragments.
type ExtractionResult struct {
	Records    []*Record `json:"records"`
	Stage      Stage     `json:"stage"`
	SourceFile string    `json:"sourceFile"`
	ParsedAt   time.Time `json:"parsedAt"`
}

// Validate returns an error if the result's record sequence violates
// ordering guarantees: post indexes must be contiguous and ascending
// starting at zero.
func (er *ExtractionResult) Validate() error {
	for i, rec := range er.Records {
		if rec.PostIndex != i {
			return Errorf(EINVALID, "record %d has post index %d, want %d", i, rec.PostIndex, i)
		}
	}
	return nil
}
